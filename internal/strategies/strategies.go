// Package strategies holds the concrete resolution techniques the engine
// selects between, one per filesystem convention, plus the composition root
// that registers the default set.
package strategies

import (
	"fmt"
	"path/filepath"

	"t3scan/internal/errors"
	"t3scan/internal/fsprobe"
	"t3scan/internal/installation"
	"t3scan/internal/resolution"
)

// deps are the collaborators every strategy shares.
type deps struct {
	probe     fsprobe.Prober
	manifests installation.ManifestReader
}

func (d deps) validateEnvironment() []error {
	var errs []error
	if d.probe == nil {
		errs = append(errs, fmt.Errorf("filesystem probe is not configured"))
	}
	if d.manifests == nil {
		errs = append(errs, fmt.Errorf("manifest reader is not configured"))
	}
	return errs
}

// prober returns the probe attached to the request when one is set, falling
// back to the shared one.
func (d deps) prober(req *resolution.Request) fsprobe.Prober {
	if p := req.Prober(); p != nil {
		return p
	}
	return d.probe
}

// effectiveType resolves auto-detect to a concrete installation type by
// probing the installation.
func (d deps) effectiveType(req *resolution.Request) installation.Type {
	if req.InstallationType() != installation.AutoDetect {
		return req.InstallationType()
	}
	return installation.Detect(req.InstallationPath(), d.prober(req), d.manifests)
}

// manifest reads the installation manifest, mapping "absent" to nil.
func (d deps) manifest(req *resolution.Request) (*installation.Manifest, error) {
	m, found, err := d.manifests.Read(req.InstallationPath())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return m, nil
}

// webRootCandidates computes the ordered web root candidates for an
// installation: manifest override first, then the convention default. Legacy
// installations serve from the root itself.
func (d deps) webRootCandidates(req *resolution.Request) ([]string, error) {
	root := req.InstallationPath()
	if d.effectiveType(req) == installation.Legacy {
		return []string{root}, nil
	}

	manifest, err := d.manifest(req)
	if err != nil {
		return nil, err
	}
	if manifest != nil && manifest.WebDir != "" {
		return []string{filepath.Join(root, manifest.WebDir)}, nil
	}
	return []string{filepath.Join(root, installation.DefaultWebRootName)}, nil
}

// configDirCandidates computes the ordered configuration directory
// candidates: under each web root candidate first, then the legacy
// root-level location.
func (d deps) configDirCandidates(req *resolution.Request) ([]string, error) {
	root := req.InstallationPath()
	webRoots, err := d.webRootCandidates(req)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, wr := range webRoots {
		candidates = append(candidates, filepath.Join(wr, installation.ConfigDirName))
	}
	legacy := filepath.Join(root, installation.ConfigDirName)
	if !contains(candidates, legacy) {
		candidates = append(candidates, legacy)
	}
	return candidates, nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// excluded reports whether a candidate matches one of the request's
// exclusion patterns. Patterns match the candidate's base name or its path
// relative to the installation root.
func excluded(req *resolution.Request, candidate string) bool {
	patterns := req.Config().ExclusionPatterns()
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(req.InstallationPath(), candidate)
	if err != nil {
		rel = candidate
	}
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, filepath.Base(candidate)); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}

// resolveCandidates runs the shared probe loop: excluded candidates are
// dropped before probing, every remaining candidate is recorded as attempted
// whether or not it matches. With existence validation off the first
// candidate wins unprobed. A permission refusal on every candidate surfaces
// as a permission error, not a not-found.
func resolveCandidates(d deps, req *resolution.Request, candidates []string, wantDir bool, what string) (*resolution.Response, error) {
	kept := candidates[:0:0]
	for _, candidate := range candidates {
		if !excluded(req, candidate) {
			kept = append(kept, candidate)
		}
	}
	candidates = kept
	if len(candidates) == 0 {
		return nil, errors.NewPathNotFound(what+" has no candidate locations", nil)
	}

	if !req.Config().ValidateExistence() {
		return resolution.NewSuccess(candidates[0], candidates[:1]), nil
	}

	probe := d.prober(req)
	attempted := make([]string, 0, len(candidates))
	var permissionErr error
	for _, candidate := range candidates {
		attempted = append(attempted, candidate)

		var ok bool
		var err error
		if wantDir {
			ok, err = probe.IsDir(candidate)
		} else {
			ok, err = probe.Exists(candidate)
		}
		if err != nil {
			if fsprobe.IsPermission(err) {
				permissionErr = err
			}
			continue
		}
		if ok {
			return resolution.NewSuccess(candidate, attempted), nil
		}
	}

	if permissionErr != nil {
		return nil, errors.NewResolutionError(errors.PermissionDenied,
			"permission denied while probing for "+what, permissionErr).
			WithRetryable(false).
			WithAttemptedPaths(attempted)
	}
	return nil, errors.NewPathNotFound(what+" not found", attempted)
}
