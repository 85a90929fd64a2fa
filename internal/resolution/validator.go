package resolution

import (
	"fmt"

	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
)

// ValidationRule is a caller-supplied pre-flight check. Errors block
// resolution; warnings travel to the eventual response without blocking it.
type ValidationRule interface {
	Name() string
	Validate(req *Request) (errs []string, warnings []string)
}

// ValidationResult carries the outcome of pre-flight validation.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// OK reports whether resolution may proceed.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validator rejects structurally invalid requests before any strategy does
// filesystem work.
type Validator struct {
	probe fsprobe.Prober
}

// NewValidator creates a validator backed by the given probe.
func NewValidator(probe fsprobe.Prober) *Validator {
	return &Validator{probe: probe}
}

// Validate runs the built-in checks, then every caller-supplied rule in
// order.
func (v *Validator) Validate(req *Request) ValidationResult {
	var result ValidationResult

	probe := v.probe
	if p := req.Prober(); p != nil {
		probe = p
	}
	isDir, err := probe.IsDir(req.InstallationPath())
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("installation path %q is not accessible: %v", req.InstallationPath(), err))
	} else if !isDir {
		result.Errors = append(result.Errors,
			fmt.Sprintf("installation path %q does not exist", req.InstallationPath()))
	}

	// Same compatibility predicate the builder uses; a request carrying an
	// incompatible pair here was constructed outside the builder.
	if !installation.Compatible(req.PathType(), req.InstallationType()) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("path type %q cannot be resolved for installation type %q",
				req.PathType(), req.InstallationType()))
	}

	for _, rule := range req.ValidationRules() {
		errs, warnings := rule.Validate(req)
		for _, e := range errs {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", rule.Name(), e))
		}
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", rule.Name(), w))
		}
	}

	return result
}
