// Package errors defines the stable error codes and typed errors of the
// path resolution engine. Construction and registration errors are returned
// to the caller immediately; every per-request runtime failure is converted
// into a typed response by the resolution service before it reaches a caller.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConstructionFailed indicates a malformed or incompatible request was
	// rejected at build time, before any I/O
	ConstructionFailed ErrorCode = "CONSTRUCTION_FAILED"
	// ValidationFailed indicates a pre-flight check rejected the request
	ValidationFailed ErrorCode = "VALIDATION_FAILED"
	// StrategyConflict indicates a duplicate strategy registration
	StrategyConflict ErrorCode = "STRATEGY_CONFLICT"
	// NoCompatibleStrategy indicates no registered strategy can serve the request
	NoCompatibleStrategy ErrorCode = "NO_COMPATIBLE_STRATEGY"
	// PathNotFound indicates a strategy ran but found nothing on disk
	PathNotFound ErrorCode = "PATH_NOT_FOUND"
	// ResolutionFailed indicates a generic strategy failure
	ResolutionFailed ErrorCode = "RESOLUTION_FAILED"
	// PermissionDenied indicates the filesystem refused a probe
	PermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ManifestInvalid indicates the package manifest exists but cannot be parsed
	ManifestInvalid ErrorCode = "MANIFEST_INVALID"
	// CacheUnavailable indicates the persistent cache tier failed to open
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// RecoveryStrategy names one recovery technique the recovery manager can run
// for a failed resolution, with optional technique parameters.
type RecoveryStrategy struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Recovery technique names understood by the recovery manager.
const (
	RecoveryAlternativePathSearch  = "alternative-path-search"
	RecoveryDefaultPathFallback    = "default-path-fallback"
	RecoveryCustomPathSearch       = "custom-path-search"
	RecoveryConfigUpdateSuggestion = "configuration-update-suggestion"
	RecoveryTypeRedetection        = "installation-type-redetection"
)

// ResolutionError is the runtime failure type raised by strategies and
// consumed by the error recovery manager. Retryable=false means the failure
// is terminal and recovery must not be attempted.
type ResolutionError struct {
	Code               ErrorCode          `json:"code"`
	Message            string             `json:"message"`
	AttemptedPaths     []string           `json:"attemptedPaths,omitempty"`
	Retryable          bool               `json:"retryable"`
	RecoveryStrategies []RecoveryStrategy `json:"recoveryStrategies,omitempty"`
	cause              error
}

// NewResolutionError creates a ResolutionError with the given code and message.
func NewResolutionError(code ErrorCode, message string, cause error) *ResolutionError {
	return &ResolutionError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// NewPathNotFound creates the retryable not-found error raised when a
// strategy exhausted its candidates. The attempted paths travel with the
// error so recovery and diagnostics can report them.
func NewPathNotFound(message string, attempted []string) *ResolutionError {
	return &ResolutionError{
		Code:           PathNotFound,
		Message:        message,
		AttemptedPaths: attempted,
		Retryable:      true,
		RecoveryStrategies: []RecoveryStrategy{
			{Name: RecoveryAlternativePathSearch},
			{Name: RecoveryDefaultPathFallback},
			{Name: RecoveryCustomPathSearch},
			{Name: RecoveryConfigUpdateSuggestion},
			{Name: RecoveryTypeRedetection},
		},
	}
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ResolutionError) Unwrap() error {
	return e.cause
}

// WithRetryable sets the retryable flag
func (e *ResolutionError) WithRetryable(retryable bool) *ResolutionError {
	e.Retryable = retryable
	return e
}

// WithRecovery sets the ordered recovery technique list
func (e *ResolutionError) WithRecovery(strategies ...RecoveryStrategy) *ResolutionError {
	e.RecoveryStrategies = strategies
	return e
}

// WithAttemptedPaths records the candidate paths probed before the failure
func (e *ResolutionError) WithAttemptedPaths(paths []string) *ResolutionError {
	e.AttemptedPaths = paths
	return e
}

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditConfig suggests editing the analyzer or override configuration
	EditConfig FixActionType = "edit-config"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	PathNotFound: {
		{
			Type:        RunCommand,
			Command:     "t3scan paths --path <installation-root>",
			Safe:        true,
			Description: "List every path the analyzer can resolve for this installation",
		},
		{
			Type:        EditConfig,
			Description: "Declare a custom path override in t3scan-paths.toml",
		},
	},
	NoCompatibleStrategy: {
		{
			Type:        RunCommand,
			Command:     "t3scan capabilities",
			Safe:        true,
			Description: "Show which path types each installation type supports",
		},
	},
	ManifestInvalid: {
		{
			Type:        RunCommand,
			Command:     "composer validate",
			Safe:        true,
			Description: "Validate the installation's composer.json",
		},
	},
	CacheUnavailable: {
		{
			Type:        RunCommand,
			Command:     "t3scan cache clear",
			Safe:        true,
			Description: "Reset the resolution cache",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
