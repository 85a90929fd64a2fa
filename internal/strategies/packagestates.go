package strategies

import (
	"path/filepath"

	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// PackageStatesStrategy locates the package-activation-state file under the
// configuration directory.
type PackageStatesStrategy struct {
	deps
}

// NewPackageStatesStrategy creates the strategy.
func NewPackageStatesStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *PackageStatesStrategy {
	return &PackageStatesStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *PackageStatesStrategy) Identifier() string { return "package-states" }

func (s *PackageStatesStrategy) SupportedPathTypes() []installation.PathType {
	return []installation.PathType{installation.PackageStatesFile}
}

func (s *PackageStatesStrategy) SupportedInstallationTypes() []installation.Type {
	return installation.AllTypes()
}

func (s *PackageStatesStrategy) Priority(pt installation.PathType, it installation.Type) int {
	return 80
}

func (s *PackageStatesStrategy) CanHandle(req *resolution.Request) bool {
	return true
}

func (s *PackageStatesStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

func (s *PackageStatesStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	configDirs, err := s.configDirCandidates(req)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, dir := range configDirs {
		candidates = append(candidates, filepath.Join(dir, installation.PackageStatesName))
	}
	return resolveCandidates(s.deps, req, candidates, false, "package states file")
}
