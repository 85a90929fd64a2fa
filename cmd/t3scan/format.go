package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"t3scan/internal/resolution"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s (expected json, yaml or human)", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ResolveResponseCLI:
		return formatResolveHuman(v), nil
	case *PathsResponseCLI:
		return formatPathsHuman(v), nil
	case *CapabilitiesResponseCLI:
		return formatCapabilitiesHuman(v), nil
	case *DoctorResponseCLI:
		return formatDoctorHuman(v), nil
	case *CacheStatsResponseCLI:
		return formatCacheStatsHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatResolveHuman(resp *ResolveResponseCLI) string {
	var b strings.Builder

	icon := statusIcon(resp.Status)
	b.WriteString(fmt.Sprintf("%s %s: %s\n", icon, resp.PathType, strings.ToUpper(string(resp.Status))))
	if resp.ResolvedPath != "" {
		b.WriteString(fmt.Sprintf("  Path:     %s\n", resp.ResolvedPath))
	}
	if resp.Strategy != "" {
		b.WriteString(fmt.Sprintf("  Strategy: %s", resp.Strategy))
		if resp.FromCache {
			b.WriteString(" (cached)")
		}
		b.WriteString("\n")
	}
	for _, alt := range resp.AlternativePaths {
		b.WriteString(fmt.Sprintf("  Alternative: %s\n", alt))
	}
	for _, w := range resp.Warnings {
		b.WriteString(fmt.Sprintf("  ! %s\n", w))
	}
	for _, e := range resp.Errors {
		b.WriteString(fmt.Sprintf("  ✗ %s\n", e))
	}
	b.WriteString(fmt.Sprintf("  (%dms)\n", resp.DurationMs))
	return b.String()
}

func formatPathsHuman(resp *PathsResponseCLI) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Installation: %s (%s)\n", resp.InstallationPath, resp.InstallationType))
	b.WriteString(strings.Repeat("=", 60) + "\n")
	for _, entry := range resp.Paths {
		icon := statusIcon(entry.Status)
		if entry.ResolvedPath != "" {
			b.WriteString(fmt.Sprintf("%s %-26s %s\n", icon, entry.PathType, entry.ResolvedPath))
		} else {
			b.WriteString(fmt.Sprintf("%s %-26s (%s)\n", icon, entry.PathType, entry.Status))
		}
		for _, alt := range entry.AlternativePaths {
			b.WriteString(fmt.Sprintf("    candidate: %s\n", alt))
		}
	}
	return b.String()
}

func formatCapabilitiesHuman(resp *CapabilitiesResponseCLI) string {
	var b strings.Builder

	b.WriteString("Registered strategies:\n")
	for _, s := range resp.Strategies {
		b.WriteString(fmt.Sprintf("  %-26s path types: %s\n", s.Identifier, strings.Join(s.PathTypes, ", ")))
		for _, envErr := range s.EnvironmentErrors {
			b.WriteString(fmt.Sprintf("    ✗ %s\n", envErr))
		}
	}
	b.WriteString("\nResolvable path types per installation type:\n")
	for _, entry := range resp.PathTypes {
		b.WriteString(fmt.Sprintf("  %-22s %s\n", entry.InstallationType, strings.Join(entry.PathTypes, ", ")))
	}
	return b.String()
}

func formatDoctorHuman(resp *DoctorResponseCLI) string {
	var b strings.Builder

	healthIcon := "✓"
	healthText := "Healthy"
	if !resp.Healthy {
		healthIcon = "✗"
		healthText = "Unhealthy"
	}
	b.WriteString(fmt.Sprintf("%s t3scan diagnostics: %s\n\n", healthIcon, healthText))

	for _, check := range resp.Checks {
		icon := "✓"
		if !check.OK {
			icon = "✗"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", icon, check.Name))
		if check.Detail != "" {
			b.WriteString(fmt.Sprintf("    %s\n", check.Detail))
		}
		for _, fix := range check.SuggestedFixes {
			b.WriteString(fmt.Sprintf("    → %s\n", fix))
		}
	}
	return b.String()
}

func formatCacheStatsHuman(resp *CacheStatsResponseCLI) string {
	var b strings.Builder

	b.WriteString("Resolution cache:\n")
	b.WriteString(fmt.Sprintf("  Entries:   %d\n", resp.Entries))
	b.WriteString(fmt.Sprintf("  Hits:      %d\n", resp.Hits))
	b.WriteString(fmt.Sprintf("  Misses:    %d\n", resp.Misses))
	b.WriteString(fmt.Sprintf("  Hit ratio: %.1f%%\n", resp.HitRatio*100))
	return b.String()
}

func statusIcon(status resolution.Status) string {
	switch status {
	case resolution.StatusSuccess:
		return "✓"
	case resolution.StatusNotFound:
		return "?"
	default:
		return "✗"
	}
}
