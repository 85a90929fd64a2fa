package resolution

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"t3scan/internal/errors"
	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
)

// CacheOptions controls whether and how long a request's response may be
// cached.
type CacheOptions struct {
	Enabled bool
	TTL     time.Duration
}

// DefaultCacheTTL applies when caching is enabled without an explicit TTL.
const DefaultCacheTTL = 15 * time.Minute

// Request is the unit of work handed to the engine. Requests are built
// through RequestBuilder, live for one resolution, and are never persisted.
type Request struct {
	id                 string
	pathType           installation.PathType
	installationPath   string
	installationType   installation.Type
	config             PathConfiguration
	extension          *ExtensionIdentifier
	validationRules    []ValidationRule
	fallbackStrategies []string
	cacheOptions       CacheOptions
	cacheKey           string
	probe              fsprobe.Prober
}

// ID returns the unique resolution ID assigned at build time. It identifies
// one resolution run in logs and response metadata and never participates in
// cache keying.
func (r *Request) ID() string { return r.id }

// PathType returns the logical target of the request.
func (r *Request) PathType() installation.PathType { return r.pathType }

// InstallationPath returns the installation root.
func (r *Request) InstallationPath() string { return r.installationPath }

// InstallationType returns the declared installation convention.
func (r *Request) InstallationType() installation.Type { return r.installationType }

// Config returns the frozen configuration snapshot.
func (r *Request) Config() PathConfiguration { return r.config }

// Extension returns the extension identifier, or nil for installation-level
// path types.
func (r *Request) Extension() *ExtensionIdentifier {
	if r.extension == nil {
		return nil
	}
	ext := *r.extension
	return &ext
}

// ValidationRules returns the caller-supplied pre-flight rules in order.
func (r *Request) ValidationRules() []ValidationRule {
	return append([]ValidationRule(nil), r.validationRules...)
}

// FallbackStrategies returns the ordered strategy identifiers to try when
// recovery techniques are exhausted.
func (r *Request) FallbackStrategies() []string {
	return append([]string(nil), r.fallbackStrategies...)
}

// CacheOptions returns the request's cache settings.
func (r *Request) CacheOptions() CacheOptions { return r.cacheOptions }

// Prober returns the probe explicitly attached to this request, or nil when
// the engine's shared probe applies.
func (r *Request) Prober() fsprobe.Prober { return r.probe }

// CacheKey returns the deterministic digest identifying this request for
// caching: path type, installation type, canonical installation path, the
// serialized configuration, and the full extension identity. Two requests
// asking the same question always share a key.
func (r *Request) CacheKey() string { return r.cacheKey }

func computeCacheKey(r *Request) string {
	// The whole identifier participates: the composer name steers recovery
	// alternatives, so requests differing only there must not share an entry.
	extKey := ""
	if r.extension != nil {
		extKey = fmt.Sprintf("%s|%s|%s|%s",
			r.extension.Key, r.extension.ComposerName, r.extension.Version, r.extension.Type)
	}
	payload := fmt.Sprintf("%s|%s|%s|%s|%s",
		r.pathType,
		r.installationType,
		fsprobe.Canonical(r.installationPath),
		r.config.serialize(),
		extKey,
	)
	sum := blake2b.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// RequestBuilder assembles and validates a Request. Build rejects missing
// required fields and path/installation-type incompatibility before a
// request can exist.
type RequestBuilder struct {
	pathType           installation.PathType
	installationPath   string
	installationType   installation.Type
	config             PathConfiguration
	hasConfig          bool
	extension          *ExtensionIdentifier
	validationRules    []ValidationRule
	fallbackStrategies []string
	cacheOptions       CacheOptions
	probe              fsprobe.Prober
}

// NewRequestBuilder starts a builder with caching enabled at the default TTL.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		installationType: installation.AutoDetect,
		cacheOptions:     CacheOptions{Enabled: true, TTL: DefaultCacheTTL},
	}
}

// WithPathType sets the logical target. Required.
func (b *RequestBuilder) WithPathType(pt installation.PathType) *RequestBuilder {
	b.pathType = pt
	return b
}

// WithInstallationPath sets the installation root. Required; must exist.
func (b *RequestBuilder) WithInstallationPath(path string) *RequestBuilder {
	b.installationPath = path
	return b
}

// WithInstallationType sets the declared convention. Defaults to auto-detect.
func (b *RequestBuilder) WithInstallationType(t installation.Type) *RequestBuilder {
	b.installationType = t
	return b
}

// WithConfiguration sets the configuration snapshot.
func (b *RequestBuilder) WithConfiguration(cfg PathConfiguration) *RequestBuilder {
	b.config = cfg
	b.hasConfig = true
	return b
}

// WithExtension names the extension the request concerns.
func (b *RequestBuilder) WithExtension(ext ExtensionIdentifier) *RequestBuilder {
	b.extension = &ext
	return b
}

// WithValidationRules appends caller-supplied pre-flight rules.
func (b *RequestBuilder) WithValidationRules(rules ...ValidationRule) *RequestBuilder {
	b.validationRules = append(b.validationRules, rules...)
	return b
}

// WithFallbackStrategies sets the ordered strategy identifiers tried when
// recovery is exhausted.
func (b *RequestBuilder) WithFallbackStrategies(identifiers ...string) *RequestBuilder {
	b.fallbackStrategies = append(b.fallbackStrategies, identifiers...)
	return b
}

// WithCacheOptions overrides the default cache settings.
func (b *RequestBuilder) WithCacheOptions(opts CacheOptions) *RequestBuilder {
	if opts.Enabled && opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	b.cacheOptions = opts
	return b
}

// WithProber attaches an explicit filesystem probe to the request. It serves
// the construction-time existence check and is honored by strategies and
// recovery in place of the engine's shared probe, so a per-request
// follow-symlinks setting reaches the probes actually performed.
func (b *RequestBuilder) WithProber(probe fsprobe.Prober) *RequestBuilder {
	b.probe = probe
	return b
}

// Build validates the builder state and produces an immutable Request.
func (b *RequestBuilder) Build() (*Request, error) {
	if b.pathType == "" {
		return nil, errors.NewResolutionError(errors.ConstructionFailed,
			"path type is required", nil)
	}
	if _, err := installation.ParsePathType(string(b.pathType)); err != nil {
		return nil, errors.NewResolutionError(errors.ConstructionFailed,
			err.Error(), nil)
	}
	if b.installationPath == "" {
		return nil, errors.NewResolutionError(errors.ConstructionFailed,
			"installation path is required", nil)
	}
	if !installation.Compatible(b.pathType, b.installationType) {
		return nil, errors.NewResolutionError(errors.ConstructionFailed,
			fmt.Sprintf("path type %q cannot be resolved for installation type %q",
				b.pathType, b.installationType), nil)
	}
	if b.pathType.RequiresExtension() && (b.extension == nil || b.extension.Key == "") {
		return nil, errors.NewResolutionError(errors.ConstructionFailed,
			"extension-directory requests must name an extension key", nil)
	}

	config := b.config
	if !b.hasConfig {
		config = NewPathConfiguration()
	}

	probe := b.probe
	if probe == nil {
		probe = fsprobe.New(config.FollowSymlinks())
	}
	isDir, err := probe.IsDir(b.installationPath)
	if err != nil {
		return nil, errors.NewResolutionError(errors.ConstructionFailed,
			fmt.Sprintf("cannot access installation path %q", b.installationPath), err)
	}
	if !isDir {
		return nil, errors.NewResolutionError(errors.ConstructionFailed,
			fmt.Sprintf("installation path %q does not exist or is not a directory",
				b.installationPath), nil)
	}

	req := &Request{
		id:                 uuid.NewString(),
		pathType:           b.pathType,
		installationPath:   b.installationPath,
		installationType:   b.installationType,
		config:             config.clone(),
		extension:          b.extension,
		validationRules:    append([]ValidationRule(nil), b.validationRules...),
		fallbackStrategies: append([]string(nil), b.fallbackStrategies...),
		cacheOptions:       b.cacheOptions,
		probe:              b.probe,
	}
	req.cacheKey = computeCacheKey(req)
	return req, nil
}
