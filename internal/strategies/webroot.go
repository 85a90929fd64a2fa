package strategies

import (
	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// ComposerWebRootStrategy derives the web root of a composer-managed
// installation from the manifest's declared web-dir override, defaulting to
// the conventional "public" directory when the manifest is absent or silent.
type ComposerWebRootStrategy struct {
	deps
}

// NewComposerWebRootStrategy creates the strategy.
func NewComposerWebRootStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *ComposerWebRootStrategy {
	return &ComposerWebRootStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *ComposerWebRootStrategy) Identifier() string { return "composer-web-root" }

func (s *ComposerWebRootStrategy) SupportedPathTypes() []installation.PathType {
	return []installation.PathType{installation.WebRoot}
}

func (s *ComposerWebRootStrategy) SupportedInstallationTypes() []installation.Type {
	return []installation.Type{installation.Composer, installation.ComposerCustomWeb, installation.AutoDetect}
}

func (s *ComposerWebRootStrategy) Priority(pt installation.PathType, it installation.Type) int {
	switch it {
	case installation.ComposerCustomWeb:
		return 90
	case installation.Composer:
		return 85
	default:
		return 70
	}
}

func (s *ComposerWebRootStrategy) CanHandle(req *resolution.Request) bool {
	switch s.effectiveType(req) {
	case installation.Composer, installation.ComposerCustomWeb:
		return true
	default:
		return false
	}
}

func (s *ComposerWebRootStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

func (s *ComposerWebRootStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	candidates, err := s.webRootCandidates(req)
	if err != nil {
		return nil, err
	}
	return resolveCandidates(s.deps, req, candidates, true, "web root")
}

// LegacyWebRootStrategy serves legacy installations, which publish directly
// from the installation root.
type LegacyWebRootStrategy struct {
	deps
}

// NewLegacyWebRootStrategy creates the strategy.
func NewLegacyWebRootStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *LegacyWebRootStrategy {
	return &LegacyWebRootStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *LegacyWebRootStrategy) Identifier() string { return "legacy-web-root" }

func (s *LegacyWebRootStrategy) SupportedPathTypes() []installation.PathType {
	return []installation.PathType{installation.WebRoot}
}

func (s *LegacyWebRootStrategy) SupportedInstallationTypes() []installation.Type {
	return []installation.Type{installation.Legacy, installation.AutoDetect}
}

func (s *LegacyWebRootStrategy) Priority(pt installation.PathType, it installation.Type) int {
	if it == installation.Legacy {
		return 85
	}
	return 60
}

func (s *LegacyWebRootStrategy) CanHandle(req *resolution.Request) bool {
	return s.effectiveType(req) == installation.Legacy
}

func (s *LegacyWebRootStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

func (s *LegacyWebRootStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	// The installation root exists by construction, so this resolves
	// unconditionally; the probe loop still records the attempt.
	return resolveCandidates(s.deps, req, []string{req.InstallationPath()}, true, "web root")
}
