package filesystem

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"

	"marknote/internal/domain"
	"marknote/internal/domain/models"
)

// TreeBuilder lists one directory level at a time. Children of folders are
// returned as empty placeholders; a caller descends by listing the child's
// own path, so a huge directory tree is never walked eagerly.
type TreeBuilder struct {
	resolver *Resolver
	ignore   map[string]struct{}
	logger   *slog.Logger
}

// NewTreeBuilder creates a tree builder that skips the given entry names
// (OS metadata files like .DS_Store).
func NewTreeBuilder(resolver *Resolver, ignoreNames []string, logger *slog.Logger) *TreeBuilder {
	ignore := make(map[string]struct{}, len(ignoreNames))
	for _, name := range ignoreNames {
		ignore[name] = struct{}{}
	}
	return &TreeBuilder{
		resolver: resolver,
		ignore:   ignore,
		logger:   logger,
	}
}

// ListChildren returns the direct entries of the directory at rel, classified
// as file or folder, in the order the OS returns them. A missing or non-
// directory path fails with domain.ErrNotFound.
func (b *TreeBuilder) ListChildren(rel string) ([]models.TreeNode, error) {
	rel = strings.Trim(strings.TrimSpace(rel), `"`)

	dir, err := b.resolver.Resolve(rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("no such directory %q: %w", rel, domain.ErrNotFound)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list directory %q: %w", rel, err)
	}

	nodes := make([]models.TreeNode, 0, len(entries))
	for _, entry := range entries {
		if _, skip := b.ignore[entry.Name()]; skip {
			continue
		}

		node := models.TreeNode{
			Name: entry.Name(),
			Path: path.Join(rel, entry.Name()),
			Kind: models.NodeFile,
		}
		if entry.IsDir() {
			node.Kind = models.NodeFolder
			node.Children = &[]models.TreeNode{}
		}
		nodes = append(nodes, node)
	}

	b.logger.Debug("directory listed", "path", rel, "entries", len(nodes), "skipped", len(entries)-len(nodes))
	return nodes, nil
}
