package strategies

import (
	"path/filepath"

	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// ExtensionPathStrategy locates an extension by composing
// {config-dir}/ext/{key} and, failing that, joining the key onto each
// declared custom search directory.
type ExtensionPathStrategy struct {
	deps
}

// NewExtensionPathStrategy creates the strategy.
func NewExtensionPathStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *ExtensionPathStrategy {
	return &ExtensionPathStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *ExtensionPathStrategy) Identifier() string { return "extension-path" }

func (s *ExtensionPathStrategy) SupportedPathTypes() []installation.PathType {
	return []installation.PathType{installation.ExtensionDirectory}
}

func (s *ExtensionPathStrategy) SupportedInstallationTypes() []installation.Type {
	return installation.AllTypes()
}

func (s *ExtensionPathStrategy) Priority(pt installation.PathType, it installation.Type) int {
	return 80
}

func (s *ExtensionPathStrategy) CanHandle(req *resolution.Request) bool {
	ext := req.Extension()
	return ext != nil && ext.Key != ""
}

func (s *ExtensionPathStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

func (s *ExtensionPathStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	ext := req.Extension()

	configDirs, err := s.configDirCandidates(req)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, dir := range configDirs {
		candidates = append(candidates, filepath.Join(dir, installation.ExtensionSubdir, ext.Key))
	}
	for _, dir := range req.Config().SearchDirectories() {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(req.InstallationPath(), dir)
		}
		candidates = append(candidates, filepath.Join(dir, ext.Key))
	}

	return resolveCandidates(s.deps, req, candidates, true, "extension \""+ext.Key+"\" directory")
}
