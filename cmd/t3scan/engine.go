package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"t3scan/internal/cache"
	"t3scan/internal/config"
	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/logging"
	"t3scan/internal/resolution"
	"t3scan/internal/strategies"
)

var (
	engineOnce    sync.Once
	sharedEngine  *resolution.Service
	sharedConfig  *config.Config
	sharedProbe   fsprobe.Prober
	persistentDB  *cache.SQLite
	engineInitErr error
)

// getEngine returns the shared resolution service, lazily wired from the
// working-directory configuration.
func getEngine(logger *logging.Logger) (*resolution.Service, *config.Config, error) {
	engineOnce.Do(func() {
		workDir, err := os.Getwd()
		if err != nil {
			engineInitErr = err
			return
		}

		cfg, err := config.LoadConfig(workDir)
		if err != nil {
			logger.Warn("Failed to load config, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			engineInitErr = err
			return
		}

		probe := fsprobe.New(cfg.Resolution.FollowSymlinks)
		manifests := installation.NewManifestReader(probe)

		registry := resolution.NewRegistry(logger)
		if err := strategies.RegisterDefaults(registry, probe, manifests); err != nil {
			engineInitErr = fmt.Errorf("failed to register strategies: %w", err)
			return
		}

		var tier resolution.Cache
		if cfg.Cache.Enabled {
			var slow resolution.Cache
			if cfg.Cache.PersistentTier {
				db, err := cache.OpenSQLite(filepath.Join(workDir, config.StateDirName), logger)
				if err != nil {
					// Resolution still works without the persistent tier.
					logger.Warn("Persistent cache unavailable", map[string]interface{}{
						"error": err.Error(),
					})
				} else {
					db.CleanupExpired()
					persistentDB = db
					slow = db
				}
			}
			tier = cache.NewLayered(cache.NewMemory(), slow)
		}

		recovery := resolution.NewRecoveryManager(probe, manifests, registry, logger)
		validator := resolution.NewValidator(probe)

		sharedEngine = resolution.NewService(registry, validator, tier, recovery, logger)
		sharedConfig = cfg
		sharedProbe = probe
	})

	return sharedEngine, sharedConfig, engineInitErr
}

// mustGetEngine returns the shared resolution service or exits on error.
func mustGetEngine(logger *logging.Logger) (*resolution.Service, *config.Config) {
	engine, cfg, err := getEngine(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}
	return engine, cfg
}

// closeEngine releases the persistent cache handle, if one was opened.
func closeEngine() {
	if persistentDB != nil {
		_ = persistentDB.Close()
	}
}

// newLogger creates a logger with the specified output format.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	level := logging.InfoLevel
	if sharedConfig != nil {
		level = logging.ParseLevel(sharedConfig.Logging.Level)
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  level,
	})
}

// buildRequest assembles a resolution request from command-line inputs,
// merging the installation's t3scan-paths.toml overrides into the
// configuration snapshot.
func buildRequest(cfg *config.Config, pathType installation.PathType, installationPath, installationType, extensionKey, composerName string, noCache bool) (*resolution.Request, error) {
	absPath, err := filepath.Abs(installationPath)
	if err != nil {
		return nil, err
	}

	pc, err := config.BuildPathConfiguration(cfg, absPath)
	if err != nil {
		return nil, err
	}

	it := installation.AutoDetect
	if installationType != "" {
		it, err = installation.ParseType(installationType)
		if err != nil {
			return nil, err
		}
	}

	builder := resolution.NewRequestBuilder().
		WithPathType(pathType).
		WithInstallationPath(absPath).
		WithInstallationType(it).
		WithConfiguration(pc).
		// The probe must come from the merged configuration, not the
		// engine's shared one: a per-installation follow-symlinks
		// override has to reach the probes strategies perform.
		WithProber(fsprobe.New(pc.FollowSymlinks())).
		WithCacheOptions(resolution.CacheOptions{
			Enabled: cfg.Cache.Enabled && !noCache,
			TTL:     time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		})
	if extensionKey != "" {
		builder = builder.WithExtension(resolution.ExtensionIdentifier{
			Key:          extensionKey,
			ComposerName: composerName,
		})
	}
	return builder.Build()
}
