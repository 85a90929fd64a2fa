package resolution

import (
	"fmt"
	"sort"

	"t3scan/internal/errors"
	"t3scan/internal/installation"
	"t3scan/internal/logging"
)

// Registry indexes strategies by path type and selects the best candidate
// for a request. Registration happens once at startup through the
// composition root; selection is pure filtering and sorting.
type Registry struct {
	byPathType map[installation.PathType][]Strategy
	byID       map[string]Strategy
	logger     *logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logging.Logger) *Registry {
	return &Registry{
		byPathType: make(map[installation.PathType][]Strategy),
		byID:       make(map[string]Strategy),
		logger:     logger,
	}
}

// Register adds a strategy. A duplicate identifier is a configuration error,
// fatal to startup; there is no silent overwrite.
func (r *Registry) Register(s Strategy) error {
	id := s.Identifier()
	if _, exists := r.byID[id]; exists {
		return errors.NewResolutionError(errors.StrategyConflict,
			fmt.Sprintf("strategy %q is already registered", id), nil)
	}
	r.byID[id] = s
	for _, pt := range s.SupportedPathTypes() {
		r.byPathType[pt] = append(r.byPathType[pt], s)
	}
	r.logger.Debug("Registered strategy", map[string]any{
		"strategy":   id,
		"path_types": len(s.SupportedPathTypes()),
	})
	return nil
}

// ByIdentifier returns a registered strategy by its identifier.
func (r *Registry) ByIdentifier(id string) (Strategy, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Strategies returns every registered strategy, ordered by identifier.
func (r *Registry) Strategies() []Strategy {
	out := make([]Strategy, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Identifier() < out[j].Identifier()
	})
	return out
}

// SupportsPathType reports whether any strategy is registered for the path
// type.
func (r *Registry) SupportsPathType(pt installation.PathType) bool {
	return len(r.byPathType[pt]) > 0
}

// SelectStrategy runs the three-stage filter: path-type index, then
// installation-type + request capability + environment readiness, then
// priority ordering. Ties break on ascending identifier so selection is
// reproducible.
func (r *Registry) SelectStrategy(req *Request) (Strategy, error) {
	candidates := r.byPathType[req.PathType()]
	if len(candidates) == 0 {
		return nil, errors.NewResolutionError(errors.NoCompatibleStrategy,
			fmt.Sprintf("no strategy registered for path type %q", req.PathType()), nil)
	}

	var eligible []Strategy
	for _, s := range candidates {
		if !supportsInstallationType(s, req.InstallationType()) {
			continue
		}
		if !s.CanHandle(req) {
			continue
		}
		if envErrs := s.ValidateEnvironment(); len(envErrs) > 0 {
			r.logger.Debug("Strategy failed environment validation", map[string]any{
				"strategy": s.Identifier(),
				"errors":   len(envErrs),
			})
			continue
		}
		eligible = append(eligible, s)
	}
	if len(eligible) == 0 {
		return nil, errors.NewResolutionError(errors.NoCompatibleStrategy,
			fmt.Sprintf("no compatible strategy for path type %q and installation type %q",
				req.PathType(), req.InstallationType()), nil)
	}

	pt, it := req.PathType(), req.InstallationType()
	sort.SliceStable(eligible, func(i, j int) bool {
		pi, pj := eligible[i].Priority(pt, it), eligible[j].Priority(pt, it)
		if pi != pj {
			return pi > pj
		}
		return eligible[i].Identifier() < eligible[j].Identifier()
	})

	selected := eligible[0]
	r.logger.Debug("Selected strategy", map[string]any{
		"strategy":  selected.Identifier(),
		"path_type": string(pt),
		"priority":  selected.Priority(pt, it),
	})
	return selected, nil
}

func supportsInstallationType(s Strategy, it installation.Type) bool {
	for _, supported := range s.SupportedInstallationTypes() {
		if supported == it {
			return true
		}
	}
	return false
}
