package strategies

import (
	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// ConfigurationDirectoryStrategy locates the configuration directory as
// {web-root}/typo3conf, trying the computed location first and the legacy
// root-level location as fallback.
type ConfigurationDirectoryStrategy struct {
	deps
}

// NewConfigurationDirectoryStrategy creates the strategy.
func NewConfigurationDirectoryStrategy(probe fsprobe.Prober, manifests installation.ManifestReader) *ConfigurationDirectoryStrategy {
	return &ConfigurationDirectoryStrategy{deps{probe: probe, manifests: manifests}}
}

func (s *ConfigurationDirectoryStrategy) Identifier() string { return "configuration-directory" }

func (s *ConfigurationDirectoryStrategy) SupportedPathTypes() []installation.PathType {
	return []installation.PathType{installation.ConfigurationDirectory}
}

func (s *ConfigurationDirectoryStrategy) SupportedInstallationTypes() []installation.Type {
	return installation.AllTypes()
}

func (s *ConfigurationDirectoryStrategy) Priority(pt installation.PathType, it installation.Type) int {
	return 80
}

func (s *ConfigurationDirectoryStrategy) CanHandle(req *resolution.Request) bool {
	return true
}

func (s *ConfigurationDirectoryStrategy) ValidateEnvironment() []error {
	return s.validateEnvironment()
}

func (s *ConfigurationDirectoryStrategy) Resolve(req *resolution.Request) (*resolution.Response, error) {
	candidates, err := s.configDirCandidates(req)
	if err != nil {
		return nil, err
	}
	return resolveCandidates(s.deps, req, candidates, true, "configuration directory")
}
