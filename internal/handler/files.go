package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"path"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"marknote/internal/filesystem"
	"marknote/internal/httputil"
)

// FileHandler handles the filesystem endpoints: tree listing plus file and
// folder mutations under the configured root.
type FileHandler struct {
	tree   *filesystem.TreeBuilder
	store  *filesystem.Store
	logger *slog.Logger
}

func NewFileHandler(tree *filesystem.TreeBuilder, store *filesystem.Store, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		tree:   tree,
		store:  store,
		logger: logger,
	}
}

// nodeRequest names a new entry inside an existing directory.
type nodeRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func (req nodeRequest) validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
	)
}

type fileRequest struct {
	Path string `json:"path"`
}

type fileContentRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type fileContentResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// GetFolderItems lists one directory level of the project tree.
// GET /folder-items?path=
func (h *FileHandler) GetFolderItems(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Query().Get("path")

	nodes, err := h.tree.ListChildren(rel)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, nodes)
}

// CreateFile creates an empty file inside an existing directory.
// POST /file
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateFile(path.Join(req.Path, req.Name)); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "ok")
}

// CreateFolder creates a folder, including missing intermediate directories.
// POST /folder
func (h *FileHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateFolder(path.Join(req.Path, req.Name)); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, "ok")
}

// GetFileContent reads a file's content. A missing or non-regular path is a
// soft failure: a 200 with empty content and an error flag, not an error
// status.
// POST /get-file-content/
func (h *FileHandler) GetFileContent(w http.ResponseWriter, r *http.Request) {
	var req fileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	content, err := h.store.ReadFile(req.Path)
	if err != nil {
		if errors.Is(err, filesystem.ErrNotRegular) {
			httputil.RespondJSON(w, http.StatusOK, fileContentResponse{Error: err.Error()})
			return
		}
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, fileContentResponse{Content: content})
}

// SaveFile creates or fully overwrites a file's content.
// POST /save-file
func (h *FileHandler) SaveFile(w http.ResponseWriter, r *http.Request) {
	var req fileContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.WriteFile(req.Path, req.Content); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "File saved successfully."})
}

// DeleteItem removes a file or, recursively, a directory.
// DELETE /delete/?path=
func (h *FileHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Query().Get("path")

	if err := h.store.Delete(rel); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"detail": "Item deleted successfully"})
}
