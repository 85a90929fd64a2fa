package strategies

import (
	"path/filepath"

	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// CustomOverrideStrategy serves any path type for which the request's
// configuration declares an explicit override, keyed by the path type name.
// For extension requests the override names the directory holding
// extensions and the extension key is joined onto it. Highest priority: an
// explicit override always beats convention.
type CustomOverrideStrategy struct {
	deps
}

// NewCustomOverrideStrategy creates the strategy.
func NewCustomOverrideStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *CustomOverrideStrategy {
	return &CustomOverrideStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *CustomOverrideStrategy) Identifier() string { return "custom-override" }

func (s *CustomOverrideStrategy) SupportedPathTypes() []installation.PathType {
	return installation.AllPathTypes()
}

func (s *CustomOverrideStrategy) SupportedInstallationTypes() []installation.Type {
	return installation.AllTypes()
}

func (s *CustomOverrideStrategy) Priority(pt installation.PathType, it installation.Type) int {
	return 100
}

func (s *CustomOverrideStrategy) CanHandle(req *resolution.Request) bool {
	_, ok := req.Config().CustomPath(string(req.PathType()))
	return ok
}

func (s *CustomOverrideStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

func (s *CustomOverrideStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	override, _ := req.Config().CustomPath(string(req.PathType()))
	if !filepath.IsAbs(override) {
		override = filepath.Join(req.InstallationPath(), override)
	}
	if ext := req.Extension(); ext != nil && req.PathType() == installation.ExtensionDirectory {
		override = filepath.Join(override, ext.Key)
	}

	wantDir := req.PathType() != installation.DependencyLockFile &&
		req.PathType() != installation.PackageStatesFile
	return resolveCandidates(s.deps, req, []string{override}, wantDir, "configured override for "+string(req.PathType()))
}
