package resolution

import (
	"fmt"
	"time"

	"t3scan/internal/errors"
	"t3scan/internal/installation"
	"t3scan/internal/logging"
)

// Service orchestrates one resolution: validate, cache lookup, strategy
// selection and execution, cache store, error recovery. No resolution
// failure ever escapes as an error; every outcome is a Response.
type Service struct {
	registry  *Registry
	validator *Validator
	cache     Cache
	recovery  *RecoveryManager
	logger    *logging.Logger
}

// NewService wires the engine together. A nil cache disables caching; a nil
// logger disables observability.
func NewService(registry *Registry, validator *Validator, cache Cache, recovery *RecoveryManager, logger *logging.Logger) *Service {
	if cache == nil {
		cache = NopCache()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		registry:  registry,
		validator: validator,
		cache:     cache,
		recovery:  recovery,
		logger:    logger,
	}
}

// ResolvePath resolves a single request. Every returned response is stamped
// with the request's cache key, resolution ID and a wall-clock duration,
// cache hits included, so callers can tell cached from fresh resolutions by
// the timing delta and not the FromCache flag alone.
func (s *Service) ResolvePath(req *Request) (resp *Response) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Resolution panicked", map[string]any{
				"resolution_id": req.ID(),
				"panic":         fmt.Sprint(r),
			})
			resp = NewError(fmt.Sprintf("internal error: %v", r))
			s.stamp(resp, req, start)
		}
	}()

	result := s.validator.Validate(req)
	if !result.OK() {
		s.logger.Warn("Request failed validation", map[string]any{
			"resolution_id": req.ID(),
			"errors":        len(result.Errors),
		})
		resp = NewError(result.Errors...)
		resp.Warnings = result.Warnings
		s.stamp(resp, req, start)
		return resp
	}

	if req.CacheOptions().Enabled {
		if cached, ok := s.cache.Get(req); ok {
			s.logger.Debug("Cache hit", map[string]any{
				"resolution_id": req.ID(),
				"cache_key":     req.CacheKey(),
			})
			// Cached responses come back unchanged apart from the
			// provenance stamps, so warnings from this call's
			// validation pass are not re-attached here.
			resp = cached.Clone()
			resp.Metadata.FromCache = true
			s.stamp(resp, req, start)
			return resp
		}
		s.logger.Debug("Cache miss", map[string]any{
			"resolution_id": req.ID(),
			"cache_key":     req.CacheKey(),
		})
	}

	resp = s.execute(req, result.Warnings)
	s.stamp(resp, req, start)

	if req.CacheOptions().Enabled && resp.CacheEligible() {
		s.cache.Put(req, resp)
	}
	return resp
}

func (s *Service) execute(req *Request, warnings []string) *Response {
	strategy, err := s.registry.SelectStrategy(req)
	if err != nil {
		return s.recoverFrom(req, err, warnings)
	}

	resp, err := strategy.Resolve(req)
	if err != nil {
		return s.recoverFrom(req, err, warnings)
	}

	resp.Warnings = append(append([]string(nil), warnings...), resp.Warnings...)
	resp.Metadata.Strategy = strategy.Identifier()
	resp.Metadata.Priority = strategy.Priority(req.PathType(), req.InstallationType())
	s.logger.Info("Resolved path", map[string]any{
		"resolution_id": req.ID(),
		"path_type":     string(req.PathType()),
		"status":        string(resp.Status),
		"strategy":      strategy.Identifier(),
	})
	return resp
}

// recoverFrom hands a failed resolution to the recovery manager. Validation
// warnings gathered before the strategy ran are prepended to the recovered
// response so advisory findings survive the fallback path.
func (s *Service) recoverFrom(req *Request, err error, warnings []string) *Response {
	resErr, ok := err.(*errors.ResolutionError)
	if !ok {
		resErr = errors.NewResolutionError(errors.InternalError, "unexpected resolution failure", err)
	}
	s.logger.Warn("Resolution failed, starting recovery", map[string]any{
		"resolution_id": req.ID(),
		"code":          string(resErr.Code),
		"retryable":     resErr.Retryable,
	})
	resp := s.recovery.Recover(req, resErr)
	resp.Warnings = append(append([]string(nil), warnings...), resp.Warnings...)
	return resp
}

// stamp writes the per-call metadata every response carries.
func (s *Service) stamp(resp *Response, req *Request, start time.Time) {
	resp.Metadata.Duration = time.Since(start)
	resp.Metadata.CacheKey = req.CacheKey()
	resp.Metadata.ResolutionID = req.ID()
}

// ResolveMultiplePaths resolves a batch. Requests are grouped by
// installation path so the cache warms across requests probing the same
// manifest and metadata files, resolved sequentially within each group, and
// the output restores the input order slot for slot. A panic inside one
// request becomes that slot's ERROR response instead of aborting the batch.
func (s *Service) ResolveMultiplePaths(reqs []*Request) []*Response {
	if len(reqs) == 0 {
		return []*Response{}
	}

	// Group indices by installation path, preserving first-appearance order.
	groupOrder := make([]string, 0)
	groups := make(map[string][]int)
	for i, req := range reqs {
		key := req.InstallationPath()
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], i)
	}

	responses := make([]*Response, len(reqs))
	var successes, failures, cacheHits int
	for _, path := range groupOrder {
		for _, i := range groups[path] {
			resp := s.ResolvePath(reqs[i])
			responses[i] = resp
			switch resp.Status {
			case StatusSuccess:
				successes++
			default:
				failures++
			}
			if resp.Metadata.FromCache {
				cacheHits++
			}
		}
	}

	s.logger.Info("Batch resolution finished", map[string]any{
		"requests":   len(reqs),
		"groups":     len(groupOrder),
		"successes":  successes,
		"failures":   failures,
		"cache_hits": cacheHits,
	})
	return responses
}

// SupportsPathType reports whether any registered strategy serves the path
// type.
func (s *Service) SupportsPathType(pt installation.PathType) bool {
	return s.registry.SupportsPathType(pt)
}

// AvailablePathTypes returns the path types resolvable for an installation
// type with the current strategy set, in stable order.
func (s *Service) AvailablePathTypes(it installation.Type) []installation.PathType {
	var out []installation.PathType
	for _, pt := range installation.CompatiblePathTypes(it) {
		if s.registry.SupportsPathType(pt) {
			out = append(out, pt)
		}
	}
	return out
}

// StrategyCapability describes one registered strategy for introspection.
type StrategyCapability struct {
	Identifier        string                  `json:"identifier"`
	PathTypes         []installation.PathType `json:"pathTypes"`
	InstallationTypes []installation.Type     `json:"installationTypes"`
	EnvironmentErrors []string                `json:"environmentErrors,omitempty"`
}

// Capabilities describes the configured engine without performing any
// resolution. Callers and tests assert on this.
type Capabilities struct {
	Strategies []StrategyCapability                          `json:"strategies"`
	PathTypes  map[installation.Type][]installation.PathType `json:"pathTypes"`
	CacheStats CacheStats                                    `json:"cacheStats"`
}

// Capabilities returns the engine's introspection snapshot.
func (s *Service) Capabilities() Capabilities {
	caps := Capabilities{
		PathTypes: make(map[installation.Type][]installation.PathType),
	}
	for _, strategy := range s.registry.Strategies() {
		sc := StrategyCapability{
			Identifier:        strategy.Identifier(),
			PathTypes:         strategy.SupportedPathTypes(),
			InstallationTypes: strategy.SupportedInstallationTypes(),
		}
		for _, err := range strategy.ValidateEnvironment() {
			sc.EnvironmentErrors = append(sc.EnvironmentErrors, err.Error())
		}
		caps.Strategies = append(caps.Strategies, sc)
	}
	for _, it := range installation.AllTypes() {
		caps.PathTypes[it] = s.AvailablePathTypes(it)
	}
	caps.CacheStats = s.cache.Stats()
	return caps
}

// CacheStats exposes the cache counters.
func (s *Service) CacheStats() CacheStats {
	return s.cache.Stats()
}

// ClearCache drops every cached response.
func (s *Service) ClearCache() {
	s.cache.Clear()
}
