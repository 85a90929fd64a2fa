package strategies

import (
	"path/filepath"

	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// DependencyLockStrategy locates the dependency-lock metadata file, checking
// the vendor directory first and the conventional installation-root location
// as fallback.
type DependencyLockStrategy struct {
	deps
}

// NewDependencyLockStrategy creates the strategy.
func NewDependencyLockStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *DependencyLockStrategy {
	return &DependencyLockStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *DependencyLockStrategy) Identifier() string { return "dependency-lock" }

func (s *DependencyLockStrategy) SupportedPathTypes() []installation.PathType {
	return []installation.PathType{installation.DependencyLockFile}
}

func (s *DependencyLockStrategy) SupportedInstallationTypes() []installation.Type {
	return []installation.Type{installation.Composer, installation.ComposerCustomWeb, installation.AutoDetect}
}

func (s *DependencyLockStrategy) Priority(pt installation.PathType, it installation.Type) int {
	return 80
}

func (s *DependencyLockStrategy) CanHandle(req *resolution.Request) bool {
	return s.effectiveType(req) != installation.Legacy
}

func (s *DependencyLockStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

func (s *DependencyLockStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	root := req.InstallationPath()

	vendorDir := filepath.Join(root, installation.DefaultVendorDirName)
	if manifest, err := s.manifest(req); err != nil {
		return nil, err
	} else if manifest != nil && manifest.VendorDir != "" {
		vendorDir = filepath.Join(root, manifest.VendorDir)
	}

	candidates := []string{
		filepath.Join(vendorDir, installation.LockFileName),
		filepath.Join(root, installation.LockFileName),
	}
	return resolveCandidates(s.deps, req, candidates, false, "dependency lock file")
}
