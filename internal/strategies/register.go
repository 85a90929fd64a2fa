package strategies

import (
	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// RegisterDefaults registers the closed default strategy set with a
// registry. This is the engine's single composition root; nothing else
// registers strategies at runtime.
func RegisterDefaults(registry *resolution.Registry, probe fsprobe.Prober, manifests installation.ManifestReader) error {
	all := []resolution.Strategy{
		NewCustomOverrideStrategy(probe, manifests),
		NewComposerWebRootStrategy(probe, manifests),
		NewLegacyWebRootStrategy(probe, manifests),
		NewConfigurationDirectoryStrategy(probe, manifests),
		NewVendorDirectoryStrategy(probe, manifests),
		NewExtensionPathStrategy(probe, manifests),
		NewDependencyLockStrategy(probe, manifests),
		NewPackageStatesStrategy(probe, manifests),
	}
	for _, s := range all {
		if err := registry.Register(s); err != nil {
			return err
		}
	}
	return nil
}
