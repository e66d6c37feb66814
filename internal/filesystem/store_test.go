package filesystem

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"marknote/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	resolver, err := NewResolver(root)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return NewStore(resolver, slog.Default()), root
}

func TestWriteReadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	const content = "# Title\n\nsome markdown body\n"
	if err := store.WriteFile("note.md", content); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := store.ReadFile("note.md")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != content {
		t.Errorf("ReadFile = %q, want %q", got, content)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.WriteFile("note.md", "old"); err != nil {
		t.Fatal(err)
	}
	if err := store.WriteFile("note.md", "new"); err != nil {
		t.Fatal(err)
	}

	got, err := store.ReadFile("note.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "new" {
		t.Errorf("content = %q, want fully overwritten %q", got, "new")
	}
}

func TestReadFileSoftFailure(t *testing.T) {
	store, root := newTestStore(t)

	if err := os.Mkdir(filepath.Join(root, "dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		rel  string
	}{
		{name: "missing file", rel: "missing.md"},
		{name: "directory instead of file", rel: "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := store.ReadFile(tt.rel)
			if !errors.Is(err, ErrNotRegular) {
				t.Fatalf("err = %v, want ErrNotRegular", err)
			}
			if content != "" {
				t.Errorf("content = %q, want empty", content)
			}
		})
	}
}

func TestCreateFileRequiresParent(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.CreateFile("missing-parent/a.md")
	if !errors.Is(err, domain.ErrIO) {
		t.Errorf("err = %v, want ErrIO (no implicit parent creation for files)", err)
	}
}

func TestCreateFileEmptyAndTruncating(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.WriteFile("a.md", "existing"); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateFile("a.md"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	got, err := store.ReadFile("a.md")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("content = %q, want empty after create", got)
	}
}

func TestCreateFolderCreatesParentsAndIsIdempotent(t *testing.T) {
	store, root := newTestStore(t)

	if err := store.CreateFolder("a/b/c"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	info, err := os.Stat(filepath.Join(root, "a", "b", "c"))
	if err != nil || !info.IsDir() {
		t.Fatalf("folder not created: %v", err)
	}

	if err := store.CreateFolder("a/b/c"); err != nil {
		t.Errorf("second CreateFolder = %v, want silent success", err)
	}
}

func TestDeleteFileAndDirectory(t *testing.T) {
	store, root := newTestStore(t)

	if err := store.CreateFolder("notes/sub"); err != nil {
		t.Fatal(err)
	}
	if err := store.WriteFile("notes/sub/a.md", "x"); err != nil {
		t.Fatal(err)
	}
	if err := store.WriteFile("top.md", "x"); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete("top.md"); err != nil {
		t.Fatalf("Delete file: %v", err)
	}
	if err := store.Delete("notes"); err != nil {
		t.Fatalf("Delete directory: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "notes")); !os.IsNotExist(err) {
		t.Errorf("directory still present after recursive delete")
	}
}

func TestDeleteMissingPathIsIOError(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.Delete("ghost.md"); !errors.Is(err, domain.ErrIO) {
		t.Errorf("err = %v, want ErrIO", err)
	}
}

func TestStoreRejectsTraversal(t *testing.T) {
	store, _ := newTestStore(t)

	if err := store.WriteFile("../escape.md", "x"); !errors.Is(err, domain.ErrInvalidPath) {
		t.Errorf("WriteFile err = %v, want ErrInvalidPath", err)
	}
	if err := store.Delete("../escape"); !errors.Is(err, domain.ErrInvalidPath) {
		t.Errorf("Delete err = %v, want ErrInvalidPath", err)
	}
	if _, err := store.ReadFile("../../etc/passwd"); !errors.Is(err, domain.ErrInvalidPath) {
		t.Errorf("ReadFile err = %v, want ErrInvalidPath", err)
	}
}
