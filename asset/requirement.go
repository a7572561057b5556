// Package asset describes the external game assets the mall scene expects
// to find under public/assets/ and resolves user selections against them.
package asset

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// Kind distinguishes plain file requirements from asset pack directories.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

// String returns the lower-case kind name used in listings and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Requirement is a single named filesystem expectation relative to the
// project root.
type Requirement struct {
	Kind    Kind
	// Path is slash-separated and relative to the project root.
	Path    string
	Label   string
	// Members lists the files expected inside a directory requirement.
	Members []string
}

// IsDirectory reports whether the requirement is an asset pack.
func (r Requirement) IsDirectory() bool {
	return r.Kind == KindDirectory
}

// ValidationError reports a requirement that breaks a table invariant.
type ValidationError struct {
	Label  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("invalid requirement: %s", e.Reason)
	}
	return fmt.Sprintf("invalid requirement %q: %s", e.Label, e.Reason)
}

// Validate checks the invariants of a requirement table: non-empty relative
// paths that stay inside the root, case-insensitively unique labels, and
// member lists only on directories.
func Validate(reqs []Requirement) error {
	seen := make(map[string]bool, len(reqs))

	for _, req := range reqs {
		if strings.TrimSpace(req.Label) == "" {
			return &ValidationError{Reason: fmt.Sprintf("empty label for path %q", req.Path)}
		}
		key := strings.ToLower(req.Label)
		if seen[key] {
			return &ValidationError{Label: req.Label, Reason: "duplicate label"}
		}
		seen[key] = true

		if err := validatePath(req.Path); err != nil {
			return &ValidationError{Label: req.Label, Reason: err.Error()}
		}

		switch req.Kind {
		case KindFile:
			if len(req.Members) > 0 {
				return &ValidationError{Label: req.Label, Reason: "file requirement cannot have members"}
			}
		case KindDirectory:
			for _, m := range req.Members {
				if m == "" || m == "." || m == ".." || strings.ContainsAny(m, `/\`) {
					return &ValidationError{Label: req.Label, Reason: fmt.Sprintf("invalid member name %q", m)}
				}
			}
		default:
			return &ValidationError{Label: req.Label, Reason: fmt.Sprintf("unsupported kind %s", req.Kind)}
		}
	}

	return nil
}

func validatePath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	if path.IsAbs(p) || strings.Contains(p, `\`) {
		return fmt.Errorf("path %q must be relative and slash-separated", p)
	}
	if slices.Contains(strings.Split(p, "/"), "..") {
		return fmt.Errorf("path %q escapes the project root", p)
	}
	return nil
}
