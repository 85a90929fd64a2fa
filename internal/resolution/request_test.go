package resolution

import (
	"strings"
	"testing"

	t3errors "t3scan/internal/errors"
	"t3scan/internal/installation"
)

func validBuilder(t *testing.T) *RequestBuilder {
	t.Helper()
	return NewRequestBuilder().
		WithPathType(installation.WebRoot).
		WithInstallationPath(t.TempDir()).
		WithInstallationType(installation.Composer)
}

func TestBuildValidRequest(t *testing.T) {
	req, err := validBuilder(t).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if req.PathType() != installation.WebRoot {
		t.Errorf("PathType() = %q", req.PathType())
	}
	if req.InstallationType() != installation.Composer {
		t.Errorf("InstallationType() = %q", req.InstallationType())
	}
	if req.ID() == "" {
		t.Error("request should carry a resolution ID")
	}
	if req.CacheKey() == "" {
		t.Error("request should carry a cache key")
	}
	if !req.CacheOptions().Enabled {
		t.Error("caching should be enabled by default")
	}
	if req.CacheOptions().TTL != DefaultCacheTTL {
		t.Errorf("TTL = %v, want %v", req.CacheOptions().TTL, DefaultCacheTTL)
	}
}

func TestBuildRejectsMissingPathType(t *testing.T) {
	_, err := NewRequestBuilder().
		WithInstallationPath(t.TempDir()).
		Build()
	assertConstructionError(t, err, "path type")
}

func TestBuildRejectsMissingInstallationPath(t *testing.T) {
	_, err := NewRequestBuilder().
		WithPathType(installation.WebRoot).
		Build()
	assertConstructionError(t, err, "installation path")
}

func TestBuildRejectsNonexistentInstallationPath(t *testing.T) {
	_, err := NewRequestBuilder().
		WithPathType(installation.WebRoot).
		WithInstallationPath("/nonexistent/installation/root").
		Build()
	assertConstructionError(t, err, "does not exist")
}

func TestBuildRejectsIncompatibleTypes(t *testing.T) {
	_, err := NewRequestBuilder().
		WithPathType(installation.VendorDirectory).
		WithInstallationPath(t.TempDir()).
		WithInstallationType(installation.Legacy).
		Build()
	assertConstructionError(t, err, "cannot be resolved")
}

func TestBuildRejectsExtensionRequestWithoutExtension(t *testing.T) {
	_, err := NewRequestBuilder().
		WithPathType(installation.ExtensionDirectory).
		WithInstallationPath(t.TempDir()).
		WithInstallationType(installation.Composer).
		Build()
	assertConstructionError(t, err, "extension key")
}

func assertConstructionError(t *testing.T, err error, wantSubstring string) {
	t.Helper()
	if err == nil {
		t.Fatal("Build() should have failed")
	}
	resErr, ok := err.(*t3errors.ResolutionError)
	if !ok {
		t.Fatalf("error type = %T, want *errors.ResolutionError", err)
	}
	if resErr.Code != t3errors.ConstructionFailed {
		t.Errorf("Code = %v, want %v", resErr.Code, t3errors.ConstructionFailed)
	}
	if !strings.Contains(err.Error(), wantSubstring) {
		t.Errorf("Error() = %q, want to contain %q", err.Error(), wantSubstring)
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	dir := t.TempDir()
	build := func() *Request {
		req, err := NewRequestBuilder().
			WithPathType(installation.ExtensionDirectory).
			WithInstallationPath(dir).
			WithInstallationType(installation.Composer).
			WithExtension(ExtensionIdentifier{Key: "news"}).
			WithConfiguration(NewPathConfiguration().WithCustomPath("web-root", "web")).
			Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		return req
	}

	a, b := build(), build()
	if a.CacheKey() != b.CacheKey() {
		t.Error("identical requests must share a cache key")
	}
	if a.ID() == b.ID() {
		t.Error("distinct resolutions must not share a resolution ID")
	}
}

func TestCacheKeyDistinguishesRequests(t *testing.T) {
	dir := t.TempDir()
	base := func() *RequestBuilder {
		return NewRequestBuilder().
			WithPathType(installation.WebRoot).
			WithInstallationPath(dir).
			WithInstallationType(installation.Composer)
	}

	reqA, err := base().Build()
	if err != nil {
		t.Fatal(err)
	}
	reqB, err := base().WithPathType(installation.ConfigurationDirectory).Build()
	if err != nil {
		t.Fatal(err)
	}
	reqC, err := base().WithInstallationType(installation.AutoDetect).Build()
	if err != nil {
		t.Fatal(err)
	}
	reqD, err := base().WithConfiguration(NewPathConfiguration().WithMaxDepth(2)).Build()
	if err != nil {
		t.Fatal(err)
	}

	keys := map[string]string{
		"base":          reqA.CacheKey(),
		"path type":     reqB.CacheKey(),
		"install type":  reqC.CacheKey(),
		"configuration": reqD.CacheKey(),
	}
	seen := make(map[string]string)
	for name, key := range keys {
		if prev, dup := seen[key]; dup {
			t.Errorf("%s and %s share a cache key", name, prev)
		}
		seen[key] = name
	}
}

func TestCacheKeyDistinguishesExtensionIdentity(t *testing.T) {
	dir := t.TempDir()
	build := func(ext ExtensionIdentifier) *Request {
		req, err := NewRequestBuilder().
			WithPathType(installation.ExtensionDirectory).
			WithInstallationPath(dir).
			WithInstallationType(installation.Composer).
			WithExtension(ext).
			Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		return req
	}

	base := build(ExtensionIdentifier{Key: "news"})
	variants := map[string]*Request{
		"composer name": build(ExtensionIdentifier{Key: "news", ComposerName: "georgringer/news"}),
		"version":       build(ExtensionIdentifier{Key: "news", Version: "11.0.0"}),
		"type":          build(ExtensionIdentifier{Key: "news", Type: "local"}),
	}
	for name, req := range variants {
		if req.CacheKey() == base.CacheKey() {
			t.Errorf("%s must participate in the cache key; a stale entry would serve the wrong alternatives", name)
		}
	}
}

func TestExtensionAccessorReturnsCopy(t *testing.T) {
	req, err := NewRequestBuilder().
		WithPathType(installation.ExtensionDirectory).
		WithInstallationPath(t.TempDir()).
		WithInstallationType(installation.Composer).
		WithExtension(ExtensionIdentifier{Key: "news", Version: "11.0.0"}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	ext := req.Extension()
	ext.Key = "mutated"
	if req.Extension().Key != "news" {
		t.Error("Extension() must return a copy, not the internal value")
	}
}

func TestWithCacheOptionsDefaultsTTL(t *testing.T) {
	req, err := validBuilder(t).
		WithCacheOptions(CacheOptions{Enabled: true}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if req.CacheOptions().TTL != DefaultCacheTTL {
		t.Errorf("TTL = %v, want default %v", req.CacheOptions().TTL, DefaultCacheTTL)
	}
}
