package installation

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"t3scan/internal/errors"
	"t3scan/internal/fsprobe"
)

// Manifest holds the directory overrides a composer.json can declare.
// A zero value means "no override, use convention defaults".
type Manifest struct {
	// WebDir is the declared web directory, relative to the installation
	// root (extra."typo3/cms".web-dir, with plain extra.web-dir honored as
	// a fallback spelling).
	WebDir string
	// VendorDir is the declared vendor directory (config.vendor-dir).
	VendorDir string
	// Name is the composer package name, informational only.
	Name string
}

// ManifestReader reads the package manifest of an installation.
// Implementations must report an absent manifest as (nil, false, nil), never
// as an error: strategies treat "absent" as "use defaults".
type ManifestReader interface {
	Read(installationPath string) (*Manifest, bool, error)
}

type composerManifestReader struct {
	probe fsprobe.Prober
}

// NewManifestReader returns a ManifestReader for composer.json files.
func NewManifestReader(probe fsprobe.Prober) ManifestReader {
	return &composerManifestReader{probe: probe}
}

// composerJSON mirrors the subset of composer.json the engine cares about.
type composerJSON struct {
	Name   string `json:"name"`
	Config struct {
		VendorDir string `json:"vendor-dir"`
	} `json:"config"`
	Extra map[string]json.RawMessage `json:"extra"`
}

func (r *composerManifestReader) Read(installationPath string) (*Manifest, bool, error) {
	path := filepath.Join(installationPath, ManifestName)

	data, err := r.probe.ReadFile(path)
	if err != nil {
		if fsprobe.IsNotExist(err) {
			return nil, false, nil
		}
		if fsprobe.IsPermission(err) {
			return nil, false, errors.NewResolutionError(errors.PermissionDenied,
				"cannot read package manifest at "+path, err)
		}
		return nil, false, errors.NewResolutionError(errors.ResolutionFailed,
			"cannot read package manifest at "+path, err)
	}

	var parsed composerJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, false, errors.NewResolutionError(errors.ManifestInvalid,
			"package manifest at "+path+" is not valid JSON", err)
	}

	m := &Manifest{
		Name:      parsed.Name,
		VendorDir: strings.TrimSpace(parsed.Config.VendorDir),
		WebDir:    extractWebDir(parsed.Extra),
	}
	return m, true, nil
}

// extractWebDir pulls the web-dir override out of the extra section.
// extra."typo3/cms".web-dir wins over a plain extra.web-dir.
func extractWebDir(extra map[string]json.RawMessage) string {
	if raw, ok := extra["typo3/cms"]; ok {
		var cms struct {
			WebDir string `json:"web-dir"`
		}
		if err := json.Unmarshal(raw, &cms); err == nil && cms.WebDir != "" {
			return cleanRelDir(cms.WebDir)
		}
	}
	if raw, ok := extra["web-dir"]; ok {
		var dir string
		if err := json.Unmarshal(raw, &dir); err == nil && dir != "" {
			return cleanRelDir(dir)
		}
	}
	return ""
}

// cleanRelDir normalizes a manifest-declared directory to a clean relative
// path. Manifests use forward slashes regardless of platform.
func cleanRelDir(dir string) string {
	dir = strings.TrimSpace(dir)
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return ""
	}
	return filepath.FromSlash(dir)
}
