package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"t3scan/internal/config"
	t3errors "t3scan/internal/errors"
	"t3scan/internal/installation"
)

var (
	doctorPath   string
	doctorFormat string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose installation and analyzer issues",
	Long: `Diagnose an installation and the analyzer's own environment: the
installation root, the package manifest, the path-override file, the strategy
environment and the resolution cache. Exits non-zero when unhealthy.`,
	Run: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorPath, "path", ".", "Installation root directory")
	doctorCmd.Flags().StringVar(&doctorFormat, "format", "human", "Output format (json, yaml, human)")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) {
	logger := newLogger(doctorFormat)
	engine, cfg := mustGetEngine(logger)
	defer closeEngine()

	response := &DoctorResponseCLI{Healthy: true}
	addCheck := func(check DoctorCheckCLI) {
		if !check.OK {
			response.Healthy = false
		}
		response.Checks = append(response.Checks, check)
	}

	absPath, err := filepath.Abs(doctorPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Installation root.
	rootOK := false
	isDir, err := sharedProbe.IsDir(absPath)
	switch {
	case err != nil:
		addCheck(DoctorCheckCLI{
			Name:   "installation root",
			Detail: fmt.Sprintf("%s is not accessible: %v", absPath, err),
		})
	case !isDir:
		addCheck(DoctorCheckCLI{
			Name:   "installation root",
			Detail: fmt.Sprintf("%s does not exist or is not a directory", absPath),
		})
	default:
		rootOK = true
		addCheck(DoctorCheckCLI{Name: "installation root", OK: true, Detail: absPath})
	}

	// Package manifest. Absent is fine; unparseable is not.
	manifests := installation.NewManifestReader(sharedProbe)
	manifest, found, err := manifests.Read(absPath)
	switch {
	case err != nil:
		addCheck(DoctorCheckCLI{
			Name:           "package manifest",
			Detail:         err.Error(),
			SuggestedFixes: fixDescriptions(t3errors.ManifestInvalid),
		})
	case !found:
		addCheck(DoctorCheckCLI{
			Name:   "package manifest",
			OK:     true,
			Detail: "absent (legacy layout or defaults apply)",
		})
	default:
		detail := "composer.json"
		if manifest.WebDir != "" {
			detail += fmt.Sprintf(", web-dir %q", manifest.WebDir)
		}
		if manifest.VendorDir != "" {
			detail += fmt.Sprintf(", vendor-dir %q", manifest.VendorDir)
		}
		addCheck(DoctorCheckCLI{Name: "package manifest", OK: true, Detail: detail})
	}

	// Detected type, using only healthy inputs.
	if rootOK {
		detected := installation.Detect(absPath, sharedProbe, manifests)
		addCheck(DoctorCheckCLI{
			Name:   "installation type",
			OK:     true,
			Detail: string(detected),
		})
	}

	// Path-override file.
	if _, err := config.BuildPathConfiguration(cfg, absPath); err != nil {
		addCheck(DoctorCheckCLI{
			Name:           "path overrides",
			Detail:         err.Error(),
			SuggestedFixes: fixDescriptions(t3errors.PathNotFound),
		})
	} else {
		addCheck(DoctorCheckCLI{Name: "path overrides", OK: true})
	}

	// Strategy environments, one check per registered strategy.
	for _, s := range engine.Capabilities().Strategies {
		check := DoctorCheckCLI{Name: "strategy " + s.Identifier, OK: true}
		if len(s.EnvironmentErrors) > 0 {
			check.OK = false
			check.Detail = s.EnvironmentErrors[0]
		}
		addCheck(check)
	}

	// Persistent cache tier.
	if cfg.Cache.Enabled && cfg.Cache.PersistentTier {
		if persistentDB == nil {
			addCheck(DoctorCheckCLI{
				Name:           "persistent cache",
				Detail:         "configured but unavailable; resolution falls back to the in-memory tier",
				SuggestedFixes: fixDescriptions(t3errors.CacheUnavailable),
			})
		} else {
			addCheck(DoctorCheckCLI{Name: "persistent cache", OK: true})
		}
	}

	output, err := FormatResponse(response, OutputFormat(doctorFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)

	if !response.Healthy {
		os.Exit(1)
	}
}

// fixDescriptions flattens the suggested fixes table for an error code into
// display strings.
func fixDescriptions(code t3errors.ErrorCode) []string {
	var out []string
	for _, fix := range t3errors.GetSuggestedFixes(code) {
		s := fix.Description
		if fix.Command != "" {
			s += " (" + fix.Command + ")"
		}
		out = append(out, s)
	}
	return out
}
