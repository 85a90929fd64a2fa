// Package installation models the analyzed TYPO3 installation: the logical
// path types the engine resolves, the installation conventions it knows, and
// detection of which convention a given directory follows.
package installation

import (
	"fmt"
	"path/filepath"
)

// PathType is a logical filesystem target inside an installation. Closed set.
type PathType string

const (
	ExtensionDirectory     PathType = "extension-directory"
	VendorDirectory        PathType = "vendor-directory"
	WebRoot                PathType = "web-root"
	ConfigurationDirectory PathType = "configuration-directory"
	DependencyLockFile     PathType = "dependency-lock-file"
	PackageStatesFile      PathType = "package-states-file"
)

// AllPathTypes lists every path type in stable order.
func AllPathTypes() []PathType {
	return []PathType{
		ExtensionDirectory,
		VendorDirectory,
		WebRoot,
		ConfigurationDirectory,
		DependencyLockFile,
		PackageStatesFile,
	}
}

// ParsePathType converts a CLI/config string to a PathType.
func ParsePathType(s string) (PathType, error) {
	for _, pt := range AllPathTypes() {
		if string(pt) == s {
			return pt, nil
		}
	}
	return "", fmt.Errorf("unknown path type %q", s)
}

// RequiresExtension reports whether requests for this path type must name an
// extension.
func (pt PathType) RequiresExtension() bool {
	return pt == ExtensionDirectory
}

// Type is the installation convention the analyzed directory follows.
type Type string

const (
	// Composer is the standard composer-managed layout with web root "public".
	Composer Type = "composer"
	// ComposerCustomWeb is a composer-managed layout with a web-dir override
	// declared in the manifest.
	ComposerCustomWeb Type = "composer-custom-web"
	// Legacy is the pre-composer layout serving directly from the
	// installation root.
	Legacy Type = "legacy"
	// AutoDetect asks the engine to classify the installation itself.
	AutoDetect Type = "auto-detect"
)

// AllTypes lists every installation type in stable order.
func AllTypes() []Type {
	return []Type{Composer, ComposerCustomWeb, Legacy, AutoDetect}
}

// ParseType converts a CLI/config string to an installation Type.
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown installation type %q", s)
}

// Layout constants shared by the strategies and the recovery manager.
const (
	DefaultWebRootName   = "public"
	ConfigDirName        = "typo3conf"
	ExtensionSubdir      = "ext"
	DefaultVendorDirName = "vendor"
	ManifestName         = "composer.json"
	LockFileName         = "composer.lock"
	PackageStatesName    = "PackageStates.php"
)

// Compatible reports whether a path type can be resolved for an installation
// type. Legacy installations have no composer artifacts, so the vendor
// directory and the dependency lock file cannot exist there. AutoDetect is
// compatible with everything.
func Compatible(pt PathType, t Type) bool {
	if t == AutoDetect {
		return true
	}
	switch pt {
	case VendorDirectory, DependencyLockFile:
		return t != Legacy
	case ExtensionDirectory, WebRoot, ConfigurationDirectory, PackageStatesFile:
		return true
	default:
		return false
	}
}

// CompatiblePathTypes returns every path type resolvable for the given
// installation type, in stable order.
func CompatiblePathTypes(t Type) []PathType {
	var out []PathType
	for _, pt := range AllPathTypes() {
		if Compatible(pt, t) {
			out = append(out, pt)
		}
	}
	return out
}

// DefaultFallbackLocations returns the historically common locations for a
// path type relative to the installation root, best-first. The recovery
// manager's default-path-fallback technique walks this table.
func DefaultFallbackLocations(pt PathType, root string) []string {
	switch pt {
	case WebRoot:
		return []string{
			filepath.Join(root, DefaultWebRootName),
			filepath.Join(root, "web"),
			filepath.Join(root, "htdocs"),
			root,
		}
	case ConfigurationDirectory:
		return []string{
			filepath.Join(root, DefaultWebRootName, ConfigDirName),
			filepath.Join(root, "web", ConfigDirName),
			filepath.Join(root, ConfigDirName),
		}
	case VendorDirectory:
		return []string{
			filepath.Join(root, DefaultVendorDirName),
		}
	case ExtensionDirectory:
		return []string{
			filepath.Join(root, DefaultWebRootName, ConfigDirName, ExtensionSubdir),
			filepath.Join(root, ConfigDirName, ExtensionSubdir),
		}
	case DependencyLockFile:
		return []string{
			filepath.Join(root, LockFileName),
			filepath.Join(root, DefaultVendorDirName, LockFileName),
		}
	case PackageStatesFile:
		return []string{
			filepath.Join(root, DefaultWebRootName, ConfigDirName, PackageStatesName),
			filepath.Join(root, ConfigDirName, PackageStatesName),
		}
	default:
		return nil
	}
}
