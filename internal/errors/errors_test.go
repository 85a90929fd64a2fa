package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNewResolutionError(t *testing.T) {
	cause := errors.New("underlying error")

	err := NewResolutionError(ResolutionFailed, "strategy blew up", cause)

	if err.Code != ResolutionFailed {
		t.Errorf("Code = %v, want %v", err.Code, ResolutionFailed)
	}
	if err.Message != "strategy blew up" {
		t.Errorf("Message = %q, want %q", err.Message, "strategy blew up")
	}
	if err.Retryable {
		t.Error("Retryable should default to false")
	}
}

func TestResolutionError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      ResolutionFailed,
			message:   "cannot read manifest",
			cause:     errors.New("permission denied"),
			wantParts: []string{"RESOLUTION_FAILED", "cannot read manifest", "permission denied"},
		},
		{
			name:      "without cause",
			code:      PathNotFound,
			message:   "extension 'news' not found",
			cause:     nil,
			wantParts: []string{"PATH_NOT_FOUND", "extension 'news' not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewResolutionError(tt.code, tt.message, tt.cause)
			got := err.Error()

			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestResolutionError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewResolutionError(InternalError, "wrapper", cause)

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestNewPathNotFound(t *testing.T) {
	attempted := []string{"/var/www/public/typo3conf/ext/news", "/var/www/typo3conf/ext/news"}
	err := NewPathNotFound("extension directory not found", attempted)

	if err.Code != PathNotFound {
		t.Errorf("Code = %v, want %v", err.Code, PathNotFound)
	}
	if !err.Retryable {
		t.Error("path-not-found errors must be retryable")
	}
	if len(err.AttemptedPaths) != 2 {
		t.Errorf("len(AttemptedPaths) = %d, want 2", len(err.AttemptedPaths))
	}
	if len(err.RecoveryStrategies) == 0 {
		t.Fatal("path-not-found errors must carry recovery strategies")
	}
	if err.RecoveryStrategies[0].Name != RecoveryAlternativePathSearch {
		t.Errorf("first recovery strategy = %q, want %q",
			err.RecoveryStrategies[0].Name, RecoveryAlternativePathSearch)
	}
}

func TestWithBuilders(t *testing.T) {
	err := NewResolutionError(ResolutionFailed, "failed", nil).
		WithRetryable(true).
		WithAttemptedPaths([]string{"/a", "/b"}).
		WithRecovery(RecoveryStrategy{Name: RecoveryDefaultPathFallback})

	if !err.Retryable {
		t.Error("WithRetryable(true) should set the flag")
	}
	if len(err.AttemptedPaths) != 2 {
		t.Errorf("len(AttemptedPaths) = %d, want 2", len(err.AttemptedPaths))
	}
	if len(err.RecoveryStrategies) != 1 {
		t.Errorf("len(RecoveryStrategies) = %d, want 1", len(err.RecoveryStrategies))
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	fixes := GetSuggestedFixes(PathNotFound)
	if len(fixes) == 0 {
		t.Fatal("PathNotFound should have suggested fixes")
	}
	if fixes[0].Type != RunCommand {
		t.Errorf("first fix type = %v, want %v", fixes[0].Type, RunCommand)
	}

	if fixes := GetSuggestedFixes(InternalError); fixes != nil {
		t.Errorf("InternalError fixes = %v, want nil", fixes)
	}
}

func TestErrorCodesAreStable(t *testing.T) {
	// These strings are part of the diagnostic contract; renaming one breaks
	// downstream report tooling.
	codes := map[ErrorCode]string{
		ConstructionFailed:   "CONSTRUCTION_FAILED",
		ValidationFailed:     "VALIDATION_FAILED",
		StrategyConflict:     "STRATEGY_CONFLICT",
		NoCompatibleStrategy: "NO_COMPATIBLE_STRATEGY",
		PathNotFound:         "PATH_NOT_FOUND",
		ResolutionFailed:     "RESOLUTION_FAILED",
		PermissionDenied:     "PERMISSION_DENIED",
		ManifestInvalid:      "MANIFEST_INVALID",
		CacheUnavailable:     "CACHE_UNAVAILABLE",
		InternalError:        "INTERNAL_ERROR",
	}

	for code, want := range codes {
		if string(code) != want {
			t.Errorf("code %v = %q, want %q", code, string(code), want)
		}
	}
}
