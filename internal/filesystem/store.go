package filesystem

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"marknote/internal/domain"
)

// ErrNotRegular marks the soft read failure: the requested path is missing or
// not a regular file. Handlers surface it as a flagged empty-content response
// rather than an error status.
var ErrNotRegular = errors.New("file does not exist or is not a regular file")

// Store performs file and folder mutations under the resolver's root.
type Store struct {
	resolver *Resolver
	logger   *slog.Logger
}

func NewStore(resolver *Resolver, logger *slog.Logger) *Store {
	return &Store{resolver: resolver, logger: logger}
}

// CreateFile creates an empty file at rel, truncating any existing content.
// Parent directories must already exist; a missing parent surfaces as an I/O
// failure, unlike CreateFolder which creates intermediates.
func (s *Store) CreateFile(rel string) error {
	abs, err := s.resolver.Resolve(rel)
	if err != nil {
		return err
	}

	if err := os.WriteFile(abs, []byte{}, 0o644); err != nil {
		return fmt.Errorf("%w: create file: %v", domain.ErrIO, err)
	}

	s.logger.Debug("file created", "path", rel)
	return nil
}

// CreateFolder creates the folder at rel and any missing intermediate
// directories. Succeeds silently when the folder already exists.
func (s *Store) CreateFolder(rel string) error {
	abs, err := s.resolver.Resolve(rel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("%w: create folder: %v", domain.ErrIO, err)
	}

	s.logger.Debug("folder created", "path", rel)
	return nil
}

// ReadFile returns the content of the regular file at rel. A missing path or
// a non-file returns ErrNotRegular; a failure while reading an existing file
// is a hard I/O error.
func (s *Store) ReadFile(rel string) (string, error) {
	abs, err := s.resolver.Resolve(rel)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotRegular
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("%w: read file: %v", domain.ErrIO, err)
	}

	return string(data), nil
}

// WriteFile creates or fully overwrites the file at rel with content.
func (s *Store) WriteFile(rel, content string) error {
	abs, err := s.resolver.Resolve(rel)
	if err != nil {
		return err
	}

	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: save file: %v", domain.ErrIO, err)
	}

	s.logger.Debug("file saved", "path", rel, "bytes", len(content))
	return nil
}

// Delete removes the file at rel, or the directory and all its contents when
// rel is a directory. Removal is best-effort: a failure partway through a
// recursive delete leaves already-removed entries removed.
func (s *Store) Delete(rel string) error {
	abs, err := s.resolver.Resolve(rel)
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("%w: delete: %v", domain.ErrIO, err)
	}

	if info.IsDir() {
		err = os.RemoveAll(abs)
	} else {
		err = os.Remove(abs)
	}
	if err != nil {
		return fmt.Errorf("%w: delete: %v", domain.ErrIO, err)
	}

	s.logger.Debug("deleted", "path", rel, "dir", info.IsDir())
	return nil
}
