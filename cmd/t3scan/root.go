package main

import (
	"t3scan/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "t3scan",
	Short: "t3scan - TYPO3 upgrade readiness path scanner",
	Long: `t3scan analyzes TYPO3 installations for upgrade readiness. It resolves the
concrete filesystem locations of an installation's web root, configuration
directory, vendor directory, extensions and dependency metadata across
composer-managed and legacy layouts, so the analyzer modules always inspect
the right files.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("t3scan version {{.Version}}\n")
}
