package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var capabilitiesFormat string

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Show registered strategies and resolvable path types",
	Long: `Show which strategies are registered and which path types each
installation type supports, without performing any resolution.`,
	Run: runCapabilities,
}

func init() {
	capabilitiesCmd.Flags().StringVar(&capabilitiesFormat, "format", "human", "Output format (json, yaml, human)")
	rootCmd.AddCommand(capabilitiesCmd)
}

func runCapabilities(cmd *cobra.Command, args []string) {
	logger := newLogger(capabilitiesFormat)
	engine, _ := mustGetEngine(logger)
	defer closeEngine()

	output, err := FormatResponse(convertCapabilities(engine.Capabilities()), OutputFormat(capabilitiesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}
