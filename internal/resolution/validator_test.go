package resolution

import (
	"os"
	"strings"
	"testing"

	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
)

type stubRule struct {
	name     string
	errs     []string
	warnings []string
}

func (r stubRule) Name() string { return r.name }

func (r stubRule) Validate(*Request) ([]string, []string) { return r.errs, r.warnings }

func TestValidateAcceptsHealthyRequest(t *testing.T) {
	validator := NewValidator(fsprobe.New(true))

	result := validator.Validate(webRootRequest(t))
	if !result.OK() {
		t.Errorf("Validate() errors = %v, want none", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Validate() warnings = %v, want none", result.Warnings)
	}
}

func TestValidateRejectsMissingInstallationPath(t *testing.T) {
	// The builder checks existence, so simulate a path that vanished between
	// construction and validation.
	root := t.TempDir()
	req, err := NewRequestBuilder().
		WithPathType(installation.WebRoot).
		WithInstallationPath(root).
		WithInstallationType(installation.Composer).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(root); err != nil {
		t.Fatal(err)
	}

	result := NewValidator(fsprobe.New(true)).Validate(req)
	if result.OK() {
		t.Fatal("missing installation path should fail validation")
	}
	if !strings.Contains(result.Errors[0], "does not exist") {
		t.Errorf("error = %q, want mention of missing path", result.Errors[0])
	}
}

func TestValidateRunsCallerRules(t *testing.T) {
	req, err := NewRequestBuilder().
		WithPathType(installation.WebRoot).
		WithInstallationPath(t.TempDir()).
		WithInstallationType(installation.Composer).
		WithValidationRules(
			stubRule{name: "disk-space", warnings: []string{"installation volume is 92% full"}},
			stubRule{name: "ownership", errs: []string{"root-owned installation"}},
		).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	result := NewValidator(fsprobe.New(true)).Validate(req)
	if result.OK() {
		t.Fatal("rule error should block resolution")
	}
	if want := "ownership: root-owned installation"; result.Errors[0] != want {
		t.Errorf("Errors[0] = %q, want %q", result.Errors[0], want)
	}
	if want := "disk-space: installation volume is 92% full"; result.Warnings[0] != want {
		t.Errorf("Warnings[0] = %q, want %q", result.Warnings[0], want)
	}
}

func TestValidateWarningsAloneDoNotBlock(t *testing.T) {
	req, err := NewRequestBuilder().
		WithPathType(installation.WebRoot).
		WithInstallationPath(t.TempDir()).
		WithInstallationType(installation.Composer).
		WithValidationRules(stubRule{name: "advisory", warnings: []string{"symlinked docroot"}}).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	result := NewValidator(fsprobe.New(true)).Validate(req)
	if !result.OK() {
		t.Errorf("warnings should not block: errors = %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one", result.Warnings)
	}
}
