package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

var (
	resolvePath         string
	resolveType         string
	resolveExtension    string
	resolveComposerName string
	resolveFormat       string
	resolveNoCache      bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path-type>",
	Short: "Resolve one logical path type to a concrete filesystem path",
	Long: `Resolve a logical path type of a TYPO3 installation to its concrete
filesystem location.

Path types: web-root, configuration-directory, vendor-directory,
extension-directory, dependency-lock-file, package-states-file.

Examples:
  t3scan resolve web-root --path /var/www/site
  t3scan resolve extension-directory --path /var/www/site --extension news
  t3scan resolve vendor-directory --path /var/www/site --type composer`,
	Args: cobra.ExactArgs(1),
	Run:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolvePath, "path", ".", "Installation root directory")
	resolveCmd.Flags().StringVar(&resolveType, "type", "", "Installation type (composer, composer-custom-web, legacy; default auto-detect)")
	resolveCmd.Flags().StringVar(&resolveExtension, "extension", "", "Extension key for extension-directory requests")
	resolveCmd.Flags().StringVar(&resolveComposerName, "composer-name", "", "Extension composer package name, used by recovery")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "human", "Output format (json, yaml, human)")
	resolveCmd.Flags().BoolVar(&resolveNoCache, "no-cache", false, "Bypass the resolution cache")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) {
	logger := newLogger(resolveFormat)
	engine, cfg := mustGetEngine(logger)
	defer closeEngine()

	pathType, err := installation.ParsePathType(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	req, err := buildRequest(cfg, pathType, resolvePath, resolveType, resolveExtension, resolveComposerName, resolveNoCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp := engine.ResolvePath(req)

	output, err := FormatResponse(convertResolveResponse(pathType, resp), OutputFormat(resolveFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)

	if resp.Status == resolution.StatusError {
		os.Exit(1)
	}
}
