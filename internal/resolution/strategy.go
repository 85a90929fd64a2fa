package resolution

import (
	"t3scan/internal/installation"
)

// Strategy is one self-contained technique for resolving a logical path type
// to a concrete filesystem path. Strategies perform read-only probes only
// and record every candidate they try, regardless of outcome.
type Strategy interface {
	// Identifier returns a stable name used for deterministic tie-breaking,
	// duplicate detection and logging.
	Identifier() string

	// SupportedPathTypes returns the path types this strategy can resolve.
	SupportedPathTypes() []installation.PathType

	// SupportedInstallationTypes returns the installation conventions this
	// strategy understands.
	SupportedInstallationTypes() []installation.Type

	// Priority returns the selection ordinal for a path/installation type
	// pair. Higher wins.
	Priority(pt installation.PathType, it installation.Type) int

	// CanHandle refines type compatibility with request-specific checks.
	CanHandle(req *Request) bool

	// ValidateEnvironment reports missing environment preconditions. A
	// strategy returning errors here is never selected.
	ValidateEnvironment() []error

	// Resolve performs the resolution. Failures are returned as
	// *errors.ResolutionError values feeding the recovery manager.
	Resolve(req *Request) (*Response, error)
}
