package handler

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marknote/internal/domain/models"
	"marknote/internal/filesystem"
)

func newFileMux(t *testing.T) (*http.ServeMux, string) {
	t.Helper()
	root := t.TempDir()

	resolver, err := filesystem.NewResolver(root)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewFileHandler(
		filesystem.NewTreeBuilder(resolver, []string{".DS_Store"}, logger),
		filesystem.NewStore(resolver, logger),
		logger,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /folder-items", h.GetFolderItems)
	mux.HandleFunc("POST /file", h.CreateFile)
	mux.HandleFunc("POST /folder", h.CreateFolder)
	mux.HandleFunc("POST /get-file-content/{$}", h.GetFileContent)
	mux.HandleFunc("POST /save-file", h.SaveFile)
	mux.HandleFunc("DELETE /delete/{$}", h.DeleteItem)
	return mux, root
}

func TestFolderItemsEndpoint(t *testing.T) {
	mux, root := newFileMux(t)

	if err := os.Mkdir(filepath.Join(root, "notes"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"readme.md", ".DS_Store"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rec := doJSON(t, mux, http.MethodGet, "/folder-items?path=", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	nodes := decodeBody[[]models.TreeNode](t, rec)
	if len(nodes) != 2 {
		t.Fatalf("nodes = %d, want 2 (metadata file skipped): %s", len(nodes), rec.Body)
	}
	byName := make(map[string]models.TreeNode, len(nodes))
	for _, n := range nodes {
		byName[n.Name] = n
	}

	folder, ok := byName["notes"]
	if !ok || folder.Kind != models.NodeFolder {
		t.Fatalf("notes = %+v, want a folder node", folder)
	}
	if folder.Children == nil || len(*folder.Children) != 0 {
		t.Errorf("folder children = %v, want empty placeholder", folder.Children)
	}

	file, ok := byName["readme.md"]
	if !ok || file.Kind != models.NodeFile {
		t.Fatalf("readme.md = %+v, want a file node", file)
	}
	if file.Children != nil {
		t.Errorf("file children = %v, want absent", file.Children)
	}
	if !strings.Contains(rec.Body.String(), `"children":[]`) {
		t.Errorf("body = %s, want literal empty children array for folders", rec.Body)
	}
}

func TestFolderItemsMissingDirectory(t *testing.T) {
	mux, _ := newFileMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/folder-items?path=nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
}

func TestFolderItemsRejectsTraversal(t *testing.T) {
	mux, _ := newFileMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/folder-items?path=../outside", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
}

func TestCreateFileEndpoint(t *testing.T) {
	mux, root := newFileMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/file", `{"path":"","name":"a.md"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `"ok"` {
		t.Errorf("body = %s, want \"ok\"", got)
	}
	if _, err := os.Stat(filepath.Join(root, "a.md")); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestCreateFileMissingName(t *testing.T) {
	mux, _ := newFileMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/file", `{"path":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
}

func TestCreateFileMissingParent(t *testing.T) {
	mux, _ := newFileMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/file", `{"path":"nope","name":"a.md"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500: %s", rec.Code, rec.Body)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["detail"] == "" {
		t.Errorf("body = %s, want a detail message", rec.Body)
	}
}

func TestCreateFolderEndpoint(t *testing.T) {
	mux, root := newFileMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/folder", `{"path":"a/b","name":"c"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	info, err := os.Stat(filepath.Join(root, "a", "b", "c"))
	if err != nil || !info.IsDir() {
		t.Errorf("folder not created with parents: %v", err)
	}
}

func TestSaveThenGetFileContent(t *testing.T) {
	mux, _ := newFileMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/save-file", `{"path":"a.md","content":"# saved"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body)
	}
	saved := decodeBody[map[string]string](t, rec)
	if saved["message"] != "File saved successfully." {
		t.Errorf("message = %q", saved["message"])
	}

	rec = doJSON(t, mux, http.MethodPost, "/get-file-content/", `{"path":"a.md"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", rec.Code, rec.Body)
	}
	got := decodeBody[map[string]string](t, rec)
	if got["content"] != "# saved" {
		t.Errorf("content = %q, want %q", got["content"], "# saved")
	}
	if _, hasErr := got["error"]; hasErr {
		t.Errorf("unexpected error field: %s", rec.Body)
	}
}

func TestGetFileContentSoftFailure(t *testing.T) {
	mux, _ := newFileMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/get-file-content/", `{"path":"missing.md"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 soft failure: %s", rec.Code, rec.Body)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["content"] != "" {
		t.Errorf("content = %q, want empty", body["content"])
	}
	if body["error"] == "" {
		t.Errorf("body = %s, want an error flag", rec.Body)
	}
}

func TestDeleteItemEndpoint(t *testing.T) {
	mux, root := newFileMux(t)

	if err := os.MkdirAll(filepath.Join(root, "notes", "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes", "sub", "a.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, mux, http.MethodDelete, "/delete/?path=notes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["detail"] != "Item deleted successfully" {
		t.Errorf("detail = %q", body["detail"])
	}
	if _, err := os.Stat(filepath.Join(root, "notes")); !os.IsNotExist(err) {
		t.Error("directory still present after delete")
	}
}

func TestDeleteItemMissingPath(t *testing.T) {
	mux, _ := newFileMux(t)

	rec := doJSON(t, mux, http.MethodDelete, "/delete/?path=ghost", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500: %s", rec.Code, rec.Body)
	}
}
