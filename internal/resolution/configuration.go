// Package resolution implements the installation path resolution engine:
// request/response value types, the strategy contract, strategy selection,
// pre-flight validation, response caching, and error recovery.
package resolution

import (
	"fmt"
	"sort"
	"strings"
)

// PathConfiguration is the frozen bag of resolution hints a request carries.
// It is immutable: every With method returns a modified copy and no strategy
// may change it mid-resolution, so re-running an identical request against an
// unchanged filesystem is idempotent.
type PathConfiguration struct {
	customPaths       map[string]string
	searchDirectories []string
	exclusionPatterns []string
	followSymlinks    bool
	validateExistence bool
	maxDepth          int
}

// DefaultMaxDepth is the recursion bound when a configuration does not set
// its own limit. See MaxDepth.
const DefaultMaxDepth = 5

// NewPathConfiguration returns the default configuration: follow symlinks,
// validate existence, no overrides.
func NewPathConfiguration() PathConfiguration {
	return PathConfiguration{
		followSymlinks:    true,
		validateExistence: true,
		maxDepth:          DefaultMaxDepth,
	}
}

func (c PathConfiguration) clone() PathConfiguration {
	out := c
	if c.customPaths != nil {
		out.customPaths = make(map[string]string, len(c.customPaths))
		for k, v := range c.customPaths {
			out.customPaths[k] = v
		}
	}
	out.searchDirectories = append([]string(nil), c.searchDirectories...)
	out.exclusionPatterns = append([]string(nil), c.exclusionPatterns...)
	return out
}

// WithCustomPath returns a copy with an explicit override for a named path.
func (c PathConfiguration) WithCustomPath(name, path string) PathConfiguration {
	out := c.clone()
	if out.customPaths == nil {
		out.customPaths = make(map[string]string, 1)
	}
	out.customPaths[name] = path
	return out
}

// WithSearchDirectories returns a copy with additional directories to scan
// for extensions.
func (c PathConfiguration) WithSearchDirectories(dirs ...string) PathConfiguration {
	out := c.clone()
	out.searchDirectories = append(out.searchDirectories, dirs...)
	return out
}

// WithExclusionPatterns returns a copy with glob patterns to skip while
// scanning. A pattern excludes a candidate when it matches the candidate's
// base name or its path relative to the installation root.
func (c PathConfiguration) WithExclusionPatterns(patterns ...string) PathConfiguration {
	out := c.clone()
	out.exclusionPatterns = append(out.exclusionPatterns, patterns...)
	return out
}

// WithFollowSymlinks returns a copy with the symlink-following flag set.
func (c PathConfiguration) WithFollowSymlinks(follow bool) PathConfiguration {
	out := c.clone()
	out.followSymlinks = follow
	return out
}

// WithValidateExistence returns a copy with the existence-validation flag
// set. When false, strategies return the conventional candidate without
// probing the disk.
func (c PathConfiguration) WithValidateExistence(validate bool) PathConfiguration {
	out := c.clone()
	out.validateExistence = validate
	return out
}

// WithMaxDepth returns a copy with the recursion bound set. See MaxDepth.
func (c PathConfiguration) WithMaxDepth(depth int) PathConfiguration {
	out := c.clone()
	if depth > 0 {
		out.maxDepth = depth
	}
	return out
}

// CustomPath returns the override for a named path, if declared.
func (c PathConfiguration) CustomPath(name string) (string, bool) {
	path, ok := c.customPaths[name]
	return path, ok
}

// HasCustomPaths reports whether any override is declared.
func (c PathConfiguration) HasCustomPaths() bool {
	return len(c.customPaths) > 0
}

// SearchDirectories returns the additional search directories.
func (c PathConfiguration) SearchDirectories() []string {
	return append([]string(nil), c.searchDirectories...)
}

// ExclusionPatterns returns the configured exclusion globs.
func (c PathConfiguration) ExclusionPatterns() []string {
	return append([]string(nil), c.exclusionPatterns...)
}

// FollowSymlinks reports whether probes resolve symlinks.
func (c PathConfiguration) FollowSymlinks() bool {
	return c.followSymlinks
}

// ValidateExistence reports whether strategies must confirm candidates exist.
func (c PathConfiguration) ValidateExistence() bool {
	return c.validateExistence
}

// MaxDepth returns the recursion bound for directory scans. The built-in
// strategies probe fixed candidate locations and never recurse, so today the
// bound only participates in cache keying; it is reserved for strategies that
// walk directory trees.
func (c PathConfiguration) MaxDepth() int {
	return c.maxDepth
}

// serialize renders the configuration as a canonical string for cache-key
// hashing. Map keys are sorted so equal configurations always serialize
// identically.
func (c PathConfiguration) serialize() string {
	var b strings.Builder

	keys := make([]string, 0, len(c.customPaths))
	for k := range c.customPaths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "custom:%s=%s;", k, c.customPaths[k])
	}
	for _, d := range c.searchDirectories {
		fmt.Fprintf(&b, "search:%s;", d)
	}
	for _, p := range c.exclusionPatterns {
		fmt.Fprintf(&b, "exclude:%s;", p)
	}
	fmt.Fprintf(&b, "symlinks:%t;validate:%t;depth:%d", c.followSymlinks, c.validateExistence, c.maxDepth)
	return b.String()
}

// ExtensionIdentifier names the extension a request concerns. Immutable
// value; absent for installation-level path types.
type ExtensionIdentifier struct {
	// Key is the extension key, e.g. "news".
	Key string `json:"key"`
	// Version is the declared version constraint, if known.
	Version string `json:"version,omitempty"`
	// Type distinguishes local, system and third-party extensions.
	Type string `json:"type,omitempty"`
	// ComposerName is the composer package name, e.g. "georgringer/news".
	ComposerName string `json:"composerName,omitempty"`
}
