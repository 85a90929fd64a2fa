package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"t3scan/internal/resolution"
)

// OverridesFileName is the per-installation path-override file, read from
// the installation root.
const OverridesFileName = "t3scan-paths.toml"

// pathOverrides mirrors the TOML override file:
//
//	[paths]
//	"web-root" = "app/web"
//	"configuration-directory" = "app/web/typo3conf"
//
//	search-directories = ["local/ext"]
//	exclusion-patterns = ["*.bak"]
//	follow-symlinks = true
//	validate-existence = true
//	max-depth = 5
type pathOverrides struct {
	Paths             map[string]string `toml:"paths"`
	SearchDirectories []string          `toml:"search-directories"`
	ExclusionPatterns []string          `toml:"exclusion-patterns"`
	FollowSymlinks    *bool             `toml:"follow-symlinks"`
	ValidateExistence *bool             `toml:"validate-existence"`
	MaxDepth          int               `toml:"max-depth"`
}

// BuildPathConfiguration produces the frozen configuration snapshot for one
// analysis run: analyzer defaults first, then the installation's override
// file on top. An absent override file is not an error.
func BuildPathConfiguration(cfg *Config, installationPath string) (resolution.PathConfiguration, error) {
	pc := resolution.NewPathConfiguration().
		WithFollowSymlinks(cfg.Resolution.FollowSymlinks).
		WithValidateExistence(cfg.Resolution.ValidateExistence).
		WithMaxDepth(cfg.Resolution.MaxDepth)

	overridesPath := filepath.Join(installationPath, OverridesFileName)
	data, err := os.ReadFile(overridesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return pc, nil
		}
		return pc, fmt.Errorf("cannot read %s: %w", overridesPath, err)
	}

	var overrides pathOverrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return pc, fmt.Errorf("cannot parse %s: %w", overridesPath, err)
	}

	for name, path := range overrides.Paths {
		pc = pc.WithCustomPath(name, path)
	}
	if len(overrides.SearchDirectories) > 0 {
		pc = pc.WithSearchDirectories(overrides.SearchDirectories...)
	}
	if len(overrides.ExclusionPatterns) > 0 {
		pc = pc.WithExclusionPatterns(overrides.ExclusionPatterns...)
	}
	if overrides.FollowSymlinks != nil {
		pc = pc.WithFollowSymlinks(*overrides.FollowSymlinks)
	}
	if overrides.ValidateExistence != nil {
		pc = pc.WithValidateExistence(*overrides.ValidateExistence)
	}
	if overrides.MaxDepth > 0 {
		pc = pc.WithMaxDepth(overrides.MaxDepth)
	}
	return pc, nil
}
