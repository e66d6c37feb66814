package repositories

import (
	"context"

	"marknote/internal/domain/models"
)

// NoteRepository is the storage contract for markdown notes. Implementations
// assign the opaque id on Create and return domain.ErrNotFound (wrapped) for
// unknown ids. A malformed id is treated as NotFound, not as a distinct
// error, so both backends behave identically at the API boundary.
type NoteRepository interface {
	// Create inserts the note and fills in its store-assigned ID.
	Create(ctx context.Context, note *models.Note) error

	// List returns up to limit notes in store-native order.
	List(ctx context.Context, limit int64) ([]models.Note, error)

	// Get returns the note with the given id.
	Get(ctx context.Context, id string) (*models.Note, error)

	// Update merges the present fields of upd into the stored record as a
	// single atomic store operation, sets date_modified to modified, and
	// returns the record as stored after the update.
	Update(ctx context.Context, id string, upd *models.NoteUpdate, modified models.Timestamp) (*models.Note, error)

	// Delete removes the note permanently.
	Delete(ctx context.Context, id string) error
}
