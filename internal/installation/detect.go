package installation

import (
	"path/filepath"

	"t3scan/internal/fsprobe"
)

// Detect classifies the installation convention of a directory by probing
// its markers. Detection never fails hard: a directory with no recognizable
// markers classifies as Legacy, the oldest convention.
//
// Classification rules, in order:
//  1. composer.json with a web-dir override -> ComposerCustomWeb
//  2. composer.json (or a vendor/ directory beside typo3 sources) -> Composer
//  3. everything else -> Legacy
func Detect(installationPath string, probe fsprobe.Prober, manifests ManifestReader) Type {
	manifest, found, err := manifests.Read(installationPath)
	if err == nil && found {
		if manifest.WebDir != "" && manifest.WebDir != DefaultWebRootName {
			return ComposerCustomWeb
		}
		return Composer
	}

	// No readable manifest. A vendor directory still marks a composer-built
	// installation whose manifest was stripped during deployment.
	if isDir, _ := probe.IsDir(filepath.Join(installationPath, DefaultVendorDirName)); isDir {
		return Composer
	}

	return Legacy
}
