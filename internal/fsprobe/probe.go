// Package fsprobe wraps the read-only filesystem probes the resolution
// strategies perform. Probes never write. Callers need to distinguish
// "not there" from "not allowed to look", so the probe reports both outcomes
// explicitly instead of collapsing them into one error.
package fsprobe

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Prober is the filesystem interface handed to strategies. Tests substitute
// fakes; production code uses OS.
type Prober interface {
	// Exists reports whether the path exists at all.
	Exists(path string) (bool, error)
	// IsDir reports whether the path exists and is a directory.
	IsDir(path string) (bool, error)
	// ReadFile returns the file contents.
	ReadFile(path string) ([]byte, error)
	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// osProber implements Prober against the real filesystem.
type osProber struct {
	followSymlinks bool
}

// New returns a Prober backed by the OS filesystem.
func New(followSymlinks bool) Prober {
	return &osProber{followSymlinks: followSymlinks}
}

func (p *osProber) stat(path string) (os.FileInfo, error) {
	if p.followSymlinks {
		return os.Stat(path)
	}
	return os.Lstat(path)
}

func (p *osProber) Exists(path string) (bool, error) {
	_, err := p.stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (p *osProber) IsDir(path string) (bool, error) {
	info, err := p.stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (p *osProber) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *osProber) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// IsPermission reports whether a probe error was a permission refusal rather
// than a missing path.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// IsNotExist reports whether a probe error was a missing path.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Canonical resolves symlinks and cleans the path. If the path does not
// exist yet the cleaned input is returned unchanged, matching how the rest
// of the engine treats unborn candidate paths.
func Canonical(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(resolved)
}
