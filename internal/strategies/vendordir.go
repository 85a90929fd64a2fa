package strategies

import (
	"path/filepath"

	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// VendorDirectoryStrategy derives the vendor directory from the manifest's
// config.vendor-dir, defaulting to the conventional "vendor" name.
type VendorDirectoryStrategy struct {
	deps
}

// NewVendorDirectoryStrategy creates the strategy.
func NewVendorDirectoryStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *VendorDirectoryStrategy {
	return &VendorDirectoryStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *VendorDirectoryStrategy) Identifier() string { return "vendor-directory" }

func (s *VendorDirectoryStrategy) SupportedPathTypes() []installation.PathType {
	return []installation.PathType{installation.VendorDirectory}
}

func (s *VendorDirectoryStrategy) SupportedInstallationTypes() []installation.Type {
	return []installation.Type{installation.Composer, installation.ComposerCustomWeb, installation.AutoDetect}
}

func (s *VendorDirectoryStrategy) Priority(pt installation.PathType, it installation.Type) int {
	return 80
}

func (s *VendorDirectoryStrategy) CanHandle(req *resolution.Request) bool {
	// Legacy installations have no vendor directory.
	return s.effectiveType(req) != installation.Legacy
}

func (s *VendorDirectoryStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

// vendorDirCandidates computes the ordered vendor directory candidates.
func (s *VendorDirectoryStrategy) vendorDirCandidates(req *resolution.Request) ([]string, error) {
	root := req.InstallationPath()
	manifest, err := s.manifest(req)
	if err != nil {
		return nil, err
	}
	if manifest != nil && manifest.VendorDir != "" {
		return []string{filepath.Join(root, manifest.VendorDir)}, nil
	}
	return []string{filepath.Join(root, installation.DefaultVendorDirName)}, nil
}

func (s *VendorDirectoryStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	candidates, err := s.vendorDirCandidates(req)
	if err != nil {
		return nil, err
	}
	return resolveCandidates(s.deps, req, candidates, true, "vendor directory")
}
