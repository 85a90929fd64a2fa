package main

import (
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// ResolveResponseCLI is the CLI projection of one resolution response.
type ResolveResponseCLI struct {
	PathType         string            `json:"pathType" yaml:"pathType"`
	Status           resolution.Status `json:"status" yaml:"status"`
	ResolvedPath     string            `json:"resolvedPath,omitempty" yaml:"resolvedPath,omitempty"`
	AlternativePaths []string          `json:"alternativePaths,omitempty" yaml:"alternativePaths,omitempty"`
	Warnings         []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors           []string          `json:"errors,omitempty" yaml:"errors,omitempty"`
	Strategy         string            `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	AttemptedPaths   []string          `json:"attemptedPaths,omitempty" yaml:"attemptedPaths,omitempty"`
	FromCache        bool              `json:"fromCache" yaml:"fromCache"`
	DurationMs       int64             `json:"durationMs" yaml:"durationMs"`
	ResolutionID     string            `json:"resolutionId,omitempty" yaml:"resolutionId,omitempty"`
}

func convertResolveResponse(pathType installation.PathType, resp *resolution.Response) *ResolveResponseCLI {
	return &ResolveResponseCLI{
		PathType:         string(pathType),
		Status:           resp.Status,
		ResolvedPath:     resp.ResolvedPath,
		AlternativePaths: resp.AlternativePaths,
		Warnings:         resp.Warnings,
		Errors:           resp.Errors,
		Strategy:         resp.Metadata.Strategy,
		AttemptedPaths:   resp.Metadata.AttemptedPaths,
		FromCache:        resp.Metadata.FromCache,
		DurationMs:       resp.Metadata.Duration.Milliseconds(),
		ResolutionID:     resp.Metadata.ResolutionID,
	}
}

// PathsResponseCLI is the CLI projection of a whole-installation scan.
type PathsResponseCLI struct {
	InstallationPath string                `json:"installationPath" yaml:"installationPath"`
	InstallationType string                `json:"installationType" yaml:"installationType"`
	Paths            []*ResolveResponseCLI `json:"paths" yaml:"paths"`
}

// CapabilityStrategyCLI describes one registered strategy.
type CapabilityStrategyCLI struct {
	Identifier        string   `json:"identifier" yaml:"identifier"`
	PathTypes         []string `json:"pathTypes" yaml:"pathTypes"`
	InstallationTypes []string `json:"installationTypes" yaml:"installationTypes"`
	EnvironmentErrors []string `json:"environmentErrors,omitempty" yaml:"environmentErrors,omitempty"`
}

// CapabilityPathTypesCLI lists the resolvable path types for one
// installation type.
type CapabilityPathTypesCLI struct {
	InstallationType string   `json:"installationType" yaml:"installationType"`
	PathTypes        []string `json:"pathTypes" yaml:"pathTypes"`
}

// CapabilitiesResponseCLI is the CLI projection of the engine's
// introspection snapshot.
type CapabilitiesResponseCLI struct {
	Strategies []CapabilityStrategyCLI  `json:"strategies" yaml:"strategies"`
	PathTypes  []CapabilityPathTypesCLI `json:"pathTypes" yaml:"pathTypes"`
}

func convertCapabilities(caps resolution.Capabilities) *CapabilitiesResponseCLI {
	out := &CapabilitiesResponseCLI{}
	for _, s := range caps.Strategies {
		entry := CapabilityStrategyCLI{
			Identifier:        s.Identifier,
			EnvironmentErrors: s.EnvironmentErrors,
		}
		for _, pt := range s.PathTypes {
			entry.PathTypes = append(entry.PathTypes, string(pt))
		}
		for _, it := range s.InstallationTypes {
			entry.InstallationTypes = append(entry.InstallationTypes, string(it))
		}
		out.Strategies = append(out.Strategies, entry)
	}
	for _, it := range installation.AllTypes() {
		entry := CapabilityPathTypesCLI{InstallationType: string(it)}
		for _, pt := range caps.PathTypes[it] {
			entry.PathTypes = append(entry.PathTypes, string(pt))
		}
		out.PathTypes = append(out.PathTypes, entry)
	}
	return out
}

// DoctorCheckCLI is one diagnostic check result.
type DoctorCheckCLI struct {
	Name           string   `json:"name" yaml:"name"`
	OK             bool     `json:"ok" yaml:"ok"`
	Detail         string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	SuggestedFixes []string `json:"suggestedFixes,omitempty" yaml:"suggestedFixes,omitempty"`
}

// DoctorResponseCLI is the CLI projection of the diagnostics run.
type DoctorResponseCLI struct {
	Healthy bool             `json:"healthy" yaml:"healthy"`
	Checks  []DoctorCheckCLI `json:"checks" yaml:"checks"`
}

// CacheStatsResponseCLI is the CLI projection of the cache counters.
type CacheStatsResponseCLI struct {
	Hits     int64   `json:"hits" yaml:"hits"`
	Misses   int64   `json:"misses" yaml:"misses"`
	Entries  int64   `json:"entries" yaml:"entries"`
	HitRatio float64 `json:"hitRatio" yaml:"hitRatio"`
}
