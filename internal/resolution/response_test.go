package resolution

import (
	"testing"
)

func TestCacheEligible(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want bool
	}{
		{"success", NewSuccess("/var/www/public", nil), true},
		{"not found with alternatives", NewNotFound(nil, []string{"/var/www/typo3conf"}, nil), true},
		{"not found without alternatives", NewNotFound(nil, nil, []string{"hint"}), false},
		{"error", NewError("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.CacheEligible(); got != tt.want {
				t.Errorf("CacheEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSuccessShape(t *testing.T) {
	attempted := []string{"/a", "/b"}
	resp := NewSuccess("/b", attempted)

	if resp.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", resp.Status, StatusSuccess)
	}
	if resp.ResolvedPath != "/b" {
		t.Errorf("ResolvedPath = %q, want %q", resp.ResolvedPath, "/b")
	}
	if len(resp.Metadata.AttemptedPaths) != 2 {
		t.Errorf("len(AttemptedPaths) = %d, want 2", len(resp.Metadata.AttemptedPaths))
	}
}

func TestNewNotFoundCarriesNoResolvedPath(t *testing.T) {
	resp := NewNotFound([]string{"/a"}, []string{"/alt"}, []string{"w"})

	if resp.Status != StatusNotFound {
		t.Errorf("Status = %q, want %q", resp.Status, StatusNotFound)
	}
	if resp.ResolvedPath != "" {
		t.Errorf("ResolvedPath = %q, want empty", resp.ResolvedPath)
	}
}

func TestClone(t *testing.T) {
	resp := NewNotFound([]string{"/a"}, []string{"/alt1", "/alt2"}, []string{"w"})
	resp.Metadata.Strategy = "extension-path"

	clone := resp.Clone()
	clone.AlternativePaths[0] = "/mutated"
	clone.Metadata.AttemptedPaths[0] = "/mutated"
	clone.Warnings[0] = "mutated"
	clone.Metadata.FromCache = true

	if resp.AlternativePaths[0] != "/alt1" {
		t.Error("Clone() shares AlternativePaths with the original")
	}
	if resp.Metadata.AttemptedPaths[0] != "/a" {
		t.Error("Clone() shares AttemptedPaths with the original")
	}
	if resp.Warnings[0] != "w" {
		t.Error("Clone() shares Warnings with the original")
	}
	if resp.Metadata.FromCache {
		t.Error("Clone() shares Metadata with the original")
	}
}
