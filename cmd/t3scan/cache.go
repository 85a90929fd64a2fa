package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cacheFormat string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the resolution cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show resolution cache counters",
	Run:   runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached resolution",
	Run:   runCacheClear,
}

func init() {
	cacheStatsCmd.Flags().StringVar(&cacheFormat, "format", "human", "Output format (json, yaml, human)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) {
	logger := newLogger(cacheFormat)
	engine, _ := mustGetEngine(logger)
	defer closeEngine()

	stats := engine.CacheStats()
	output, err := FormatResponse(&CacheStatsResponseCLI{
		Hits:     stats.Hits,
		Misses:   stats.Misses,
		Entries:  stats.Entries,
		HitRatio: stats.HitRatio(),
	}, OutputFormat(cacheFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

func runCacheClear(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	engine, _ := mustGetEngine(logger)
	defer closeEngine()

	engine.ClearCache()
	fmt.Println("Resolution cache cleared.")
}
