package handler

import (
	"log/slog"
	"net/http"

	"marknote/internal/domain/models"
	"marknote/internal/httputil"
	"marknote/internal/service"
)

// NoteHandler handles note HTTP requests.
type NoteHandler struct {
	notes  *service.NoteService
	logger *slog.Logger
}

func NewNoteHandler(notes *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		notes:  notes,
		logger: logger,
	}
}

// CreateNote inserts a new markdown record.
// POST /markdowns/
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var note models.Note
	if err := httputil.ParseJSON(w, r, &note); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.notes.Create(r.Context(), &note)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// ListNotes lists all markdown records, capped at 1000.
// GET /markdowns/
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	collection, err := h.notes.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, collection)
}

// GetNote returns a single markdown record by id.
// GET /markdowns/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	note, err := h.notes.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// UpdateNote merges the provided fields into an existing record. Missing or
// null fields are left untouched.
// PUT /markdowns/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var upd models.NoteUpdate
	if err := httputil.ParseJSON(w, r, &upd); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := h.notes.Update(r.Context(), id, &upd)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote removes a markdown record.
// DELETE /markdowns/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.notes.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
