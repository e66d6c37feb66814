// Package filesystem provides path resolution, directory tree listing and
// file storage under a single configured root directory.
package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"marknote/internal/domain"
)

// Resolver maps user-supplied relative paths to absolute paths under the
// root, rejecting anything that would escape it.
type Resolver struct {
	root string
}

// NewResolver canonicalizes root once; every Resolve call is checked against
// that canonical form.
func NewResolver(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	return &Resolver{root: abs}, nil
}

// Root returns the canonical root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve joins rel onto the root and verifies containment by re-relativizing
// the canonical result, not by naive string comparison. A path that escapes
// the root fails with domain.ErrInvalidPath.
func (r *Resolver) Resolve(rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	rel = strings.TrimPrefix(rel, "/")

	abs, err := filepath.Abs(filepath.Join(r.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", rel, err)
	}

	back, err := filepath.Rel(r.root, abs)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the root directory: %w", rel, domain.ErrInvalidPath)
	}

	return abs, nil
}
