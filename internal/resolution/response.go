package resolution

import (
	"time"
)

// Status is the closed outcome set of a resolution.
type Status string

const (
	// StatusSuccess means exactly one path resolved.
	StatusSuccess Status = "success"
	// StatusNotFound means resolution ran but found no definitive path.
	// Alternatives and warnings may still make the response actionable.
	StatusNotFound Status = "not-found"
	// StatusError means resolution failed outright.
	StatusError Status = "error"
)

// Metadata describes how a response was produced.
type Metadata struct {
	// Strategy is the identifier of the strategy that ran, or the recovery
	// technique that produced the response.
	Strategy string `json:"strategy,omitempty"`
	// Priority is the selected strategy's priority for this request.
	Priority int `json:"priority,omitempty"`
	// AttemptedPaths lists every candidate probed, in order, regardless of
	// outcome.
	AttemptedPaths []string `json:"attemptedPaths,omitempty"`
	// FromCache reports whether the response was served from the cache.
	FromCache bool `json:"fromCache"`
	// Duration is the wall-clock resolution time, stamped on every response
	// including cache hits.
	Duration time.Duration `json:"durationNs"`
	// CacheKey is the request's deterministic cache key.
	CacheKey string `json:"cacheKey,omitempty"`
	// ResolutionID is the per-run ID from the request.
	ResolutionID string `json:"resolutionId,omitempty"`
	// RecoveryAttempts counts the recovery and fallback techniques tried
	// before this response was produced.
	RecoveryAttempts int `json:"recoveryAttempts,omitempty"`
}

// Response is the immutable result of one resolution. Callers never
// construct one directly; strategies and the service use the constructors
// below.
type Response struct {
	Status           Status   `json:"status"`
	ResolvedPath     string   `json:"resolvedPath,omitempty"`
	AlternativePaths []string `json:"alternativePaths,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	Errors           []string `json:"errors,omitempty"`
	Metadata         Metadata `json:"metadata"`
}

// NewSuccess builds a SUCCESS response carrying exactly one resolved path.
func NewSuccess(path string, attempted []string) *Response {
	return &Response{
		Status:       StatusSuccess,
		ResolvedPath: path,
		Metadata:     Metadata{AttemptedPaths: attempted},
	}
}

// NewNotFound builds a NOT_FOUND response. Alternatives are ordered
// best-first.
func NewNotFound(attempted, alternatives, warnings []string) *Response {
	return &Response{
		Status:           StatusNotFound,
		AlternativePaths: alternatives,
		Warnings:         warnings,
		Metadata:         Metadata{AttemptedPaths: attempted},
	}
}

// NewError builds an ERROR response from error messages.
func NewError(errs ...string) *Response {
	return &Response{
		Status: StatusError,
		Errors: errs,
	}
}

// CacheEligible reports whether this response may be stored: SUCCESS always,
// NOT_FOUND only when it carries alternatives. Pure errors are never cached
// so transient failures can be retried.
func (r *Response) CacheEligible() bool {
	switch r.Status {
	case StatusSuccess:
		return true
	case StatusNotFound:
		return len(r.AlternativePaths) > 0
	default:
		return false
	}
}

// Clone returns a deep copy. The service clones cached responses before
// stamping per-call metadata so the stored entry stays untouched.
func (r *Response) Clone() *Response {
	out := *r
	out.AlternativePaths = append([]string(nil), r.AlternativePaths...)
	out.Warnings = append([]string(nil), r.Warnings...)
	out.Errors = append([]string(nil), r.Errors...)
	out.Metadata.AttemptedPaths = append([]string(nil), r.Metadata.AttemptedPaths...)
	return &out
}
