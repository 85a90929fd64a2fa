package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

var (
	pathsPath      string
	pathsType      string
	pathsExtension string
	pathsFormat    string
	pathsNoCache   bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Resolve every path type of an installation in one batch",
	Long: `Resolve every resolvable path type of a TYPO3 installation in one batch.
The installation type is auto-detected unless --type is given; path types the
detected type cannot have (a vendor directory on a legacy installation) are
skipped.

With --extension the extension's directory is resolved as well.`,
	Run: runPaths,
}

func init() {
	pathsCmd.Flags().StringVar(&pathsPath, "path", ".", "Installation root directory")
	pathsCmd.Flags().StringVar(&pathsType, "type", "", "Installation type (composer, composer-custom-web, legacy; default auto-detect)")
	pathsCmd.Flags().StringVar(&pathsExtension, "extension", "", "Additionally resolve this extension's directory")
	pathsCmd.Flags().StringVar(&pathsFormat, "format", "human", "Output format (json, yaml, human)")
	pathsCmd.Flags().BoolVar(&pathsNoCache, "no-cache", false, "Bypass the resolution cache")
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) {
	logger := newLogger(pathsFormat)
	engine, cfg := mustGetEngine(logger)
	defer closeEngine()

	absPath, err := filepath.Abs(pathsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	it := installation.AutoDetect
	if pathsType != "" {
		it, err = installation.ParseType(pathsType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	effective := it
	if effective == installation.AutoDetect {
		effective = installation.Detect(absPath, sharedProbe, installation.NewManifestReader(sharedProbe))
	}

	var reqs []*resolution.Request
	var pathTypes []installation.PathType
	for _, pt := range engine.AvailablePathTypes(effective) {
		extension := ""
		if pt.RequiresExtension() {
			if pathsExtension == "" {
				continue
			}
			extension = pathsExtension
		}
		req, err := buildRequest(cfg, pt, pathsPath, string(effective), extension, "", pathsNoCache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reqs = append(reqs, req)
		pathTypes = append(pathTypes, pt)
	}

	responses := engine.ResolveMultiplePaths(reqs)

	result := &PathsResponseCLI{
		InstallationPath: absPath,
		InstallationType: string(effective),
	}
	for i, resp := range responses {
		result.Paths = append(result.Paths, convertResolveResponse(pathTypes[i], resp))
	}

	output, err := FormatResponse(result, OutputFormat(pathsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
