package resolution

import (
	"fmt"
	"path/filepath"
	"sort"

	"t3scan/internal/errors"
	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/logging"
)

// commonProjectSubRoots are the conventional sub-roots the custom-path-search
// technique scans for a configuration directory marker. An extensible table,
// not a guarantee: layouts outside it stay unresolved.
var commonProjectSubRoots = []string{"", "app", "web", "htdocs", "src", "public", "dist"}

// RecoveryManager turns a failed resolution attempt into something
// actionable. It walks the exception's ordered recovery techniques, then the
// request's own fallback strategies, and only reports a terminal error once
// everything is exhausted. Recovery success means "gave the caller candidate
// paths or guidance", not "found the exact answer".
type RecoveryManager struct {
	probe     fsprobe.Prober
	manifests installation.ManifestReader
	registry  *Registry
	logger    *logging.Logger
}

// NewRecoveryManager creates a recovery manager.
func NewRecoveryManager(probe fsprobe.Prober, manifests installation.ManifestReader, registry *Registry, logger *logging.Logger) *RecoveryManager {
	return &RecoveryManager{
		probe:     probe,
		manifests: manifests,
		registry:  registry,
		logger:    logger,
	}
}

// prober returns the probe attached to the request when one is set, falling
// back to the shared one.
func (m *RecoveryManager) prober(req *Request) fsprobe.Prober {
	if p := req.Prober(); p != nil {
		return p
	}
	return m.probe
}

// Recover produces the final response for a failed resolution.
func (m *RecoveryManager) Recover(req *Request, resErr *errors.ResolutionError) *Response {
	if !resErr.Retryable {
		return m.terminal(req, resErr, 0)
	}

	attempts := 0
	for _, technique := range resErr.RecoveryStrategies {
		attempts++
		m.logger.Debug("Attempting recovery technique", map[string]any{
			"technique":     technique.Name,
			"resolution_id": req.ID(),
		})
		if resp := m.run(technique, req, resErr); resp != nil {
			resp.Metadata.Strategy = technique.Name
			resp.Metadata.RecoveryAttempts = attempts
			m.logger.Info("Recovery produced a response", map[string]any{
				"technique":     technique.Name,
				"alternatives":  len(resp.AlternativePaths),
				"resolution_id": req.ID(),
			})
			return resp
		}
	}

	// The request's own fallback strategies are the extension point past the
	// exception's techniques. Priority-sorted like regular selection.
	for _, s := range m.fallbackStrategies(req) {
		attempts++
		resp, err := s.Resolve(req)
		if err != nil || resp == nil {
			continue
		}
		resp.Metadata.Strategy = s.Identifier()
		resp.Metadata.Priority = s.Priority(req.PathType(), req.InstallationType())
		resp.Metadata.RecoveryAttempts = attempts
		return resp
	}

	return m.terminal(req, resErr, attempts)
}

func (m *RecoveryManager) run(technique errors.RecoveryStrategy, req *Request, resErr *errors.ResolutionError) *Response {
	switch technique.Name {
	case errors.RecoveryAlternativePathSearch:
		return m.alternativePathSearch(req, resErr)
	case errors.RecoveryDefaultPathFallback:
		return m.defaultPathFallback(req, resErr)
	case errors.RecoveryCustomPathSearch:
		return m.customPathSearch(req, resErr)
	case errors.RecoveryConfigUpdateSuggestion:
		return m.configUpdateSuggestion(req)
	case errors.RecoveryTypeRedetection:
		return m.typeRedetection(req)
	default:
		m.logger.Warn("Unknown recovery technique", map[string]any{"technique": technique.Name})
		return nil
	}
}

// alternativePathSearch probes historically common alternate layouts for the
// requested extension.
func (m *RecoveryManager) alternativePathSearch(req *Request, resErr *errors.ResolutionError) *Response {
	ext := req.Extension()
	if ext == nil {
		return nil
	}
	root := req.InstallationPath()

	candidates := []string{
		filepath.Join(root, installation.ConfigDirName, installation.ExtensionSubdir, ext.Key),
		filepath.Join(root, installation.DefaultWebRootName, installation.ConfigDirName, installation.ExtensionSubdir, ext.Key),
		filepath.Join(root, "web", installation.ConfigDirName, installation.ExtensionSubdir, ext.Key),
		filepath.Join(root, "htdocs", installation.ConfigDirName, installation.ExtensionSubdir, ext.Key),
	}
	if ext.ComposerName != "" {
		candidates = append(candidates,
			filepath.Join(root, installation.DefaultVendorDirName, filepath.FromSlash(ext.ComposerName)))
	}

	return m.probeCandidates(req, resErr, candidates,
		fmt.Sprintf("extension %q was not at its expected location; similar layouts were found", ext.Key))
}

// defaultPathFallback constructs candidates from the path type's declared
// default fallback locations.
func (m *RecoveryManager) defaultPathFallback(req *Request, resErr *errors.ResolutionError) *Response {
	candidates := installation.DefaultFallbackLocations(req.PathType(), req.InstallationPath())
	return m.probeCandidates(req, resErr, candidates,
		fmt.Sprintf("default fallback locations exist for path type %q", req.PathType()))
}

// customPathSearch scans the installation root and common project sub-roots
// for the configuration directory marker. No recursion past the configured
// candidate list.
func (m *RecoveryManager) customPathSearch(req *Request, resErr *errors.ResolutionError) *Response {
	root := req.InstallationPath()
	var candidates []string
	for _, sub := range commonProjectSubRoots {
		candidates = append(candidates, filepath.Join(root, sub, installation.ConfigDirName))
	}
	return m.probeCandidates(req, resErr, candidates,
		"a configuration directory marker was found outside the declared layout")
}

// configUpdateSuggestion emits actionable guidance when the caller supplied
// no custom-path overrides. No filesystem probing.
func (m *RecoveryManager) configUpdateSuggestion(req *Request) *Response {
	if req.Config().HasCustomPaths() {
		return nil
	}
	warnings := []string{
		fmt.Sprintf("no custom path overrides are configured; if %q lives at a non-standard location, declare it in %s at the installation root",
			req.PathType(), "t3scan-paths.toml"),
	}
	return NewNotFound(nil, nil, warnings)
}

// typeRedetection re-classifies the installation and suggests auto-detect
// when the declared type disagrees with the on-disk layout.
func (m *RecoveryManager) typeRedetection(req *Request) *Response {
	if req.InstallationType() == installation.AutoDetect {
		return nil
	}
	detected := installation.Detect(req.InstallationPath(), m.prober(req), m.manifests)
	if detected == req.InstallationType() {
		return nil
	}
	warnings := []string{
		fmt.Sprintf("request declared installation type %q but the layout looks like %q; retry with installation type %q",
			req.InstallationType(), detected, installation.AutoDetect),
	}
	return NewNotFound(nil, nil, warnings)
}

// probeCandidates checks each candidate and, when at least one exists,
// builds a NOT_FOUND response carrying them as alternatives (best-first, the
// candidate order).
func (m *RecoveryManager) probeCandidates(req *Request, resErr *errors.ResolutionError, candidates []string, warning string) *Response {
	probe := m.prober(req)
	attempted := append([]string(nil), resErr.AttemptedPaths...)
	var alternatives []string
	seen := make(map[string]bool)

	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		attempted = append(attempted, candidate)
		exists, err := probe.Exists(candidate)
		if err != nil || !exists {
			continue
		}
		alternatives = append(alternatives, candidate)
	}
	if len(alternatives) == 0 {
		return nil
	}
	return NewNotFound(attempted, alternatives, []string{warning})
}

// fallbackStrategies resolves the request's named fallback identifiers to
// usable strategies, priority-sorted.
func (m *RecoveryManager) fallbackStrategies(req *Request) []Strategy {
	var out []Strategy
	for _, id := range req.FallbackStrategies() {
		s, ok := m.registry.ByIdentifier(id)
		if !ok {
			m.logger.Warn("Fallback strategy not registered", map[string]any{"strategy": id})
			continue
		}
		if !s.CanHandle(req) || len(s.ValidateEnvironment()) > 0 {
			continue
		}
		out = append(out, s)
	}
	pt, it := req.PathType(), req.InstallationType()
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority(pt, it), out[j].Priority(pt, it)
		if pi != pj {
			return pi > pj
		}
		return out[i].Identifier() < out[j].Identifier()
	})
	return out
}

// terminal builds the ERROR response returned when recovery is exhausted or
// impossible.
func (m *RecoveryManager) terminal(req *Request, resErr *errors.ResolutionError, attempts int) *Response {
	msgs := []string{resErr.Error()}
	if attempts > 0 {
		msgs = append(msgs,
			fmt.Sprintf("%d recovery and fallback techniques were attempted without success", attempts))
	}
	resp := NewError(msgs...)
	resp.Metadata.AttemptedPaths = append([]string(nil), resErr.AttemptedPaths...)
	resp.Metadata.RecoveryAttempts = attempts
	return resp
}
