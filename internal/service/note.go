package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"marknote/internal/domain"
	"marknote/internal/domain/models"
	"marknote/internal/domain/repositories"
)

// listLimit caps unpaginated listings.
const listLimit = 1000

// NoteService owns note business logic: validation, creator default and
// timestamp stamping. Handlers never touch the repository directly.
type NoteService struct {
	repo   repositories.NoteRepository
	logger *slog.Logger
}

func NewNoteService(repo repositories.NoteRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and inserts a new note. Any client-supplied id is
// discarded; the store assigns one. Missing timestamps default to now, with
// date_added == date_modified at creation.
func (s *NoteService) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if err := validateNote(note); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := models.Now()
	note.ID = ""
	if note.Creator == "" {
		note.Creator = models.DefaultCreator
	}
	if note.DateAdded.IsZero() {
		note.DateAdded = now
	}
	if note.DateModified.IsZero() {
		note.DateModified = note.DateAdded
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created", "id", note.ID, "file_name", note.FileName)
	return note, nil
}

// List returns all notes, capped at 1000, in store-native order.
func (s *NoteService) List(ctx context.Context) (*models.NoteCollection, error) {
	notes, err := s.repo.List(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return &models.NoteCollection{Markdowns: notes}, nil
}

// Get returns a single note by id.
func (s *NoteService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.repo.Get(ctx, id)
}

// Update merges the present fields of upd into the stored note and refreshes
// date_modified, even when no other field is given.
func (s *NoteService) Update(ctx context.Context, id string, upd *models.NoteUpdate) (*models.Note, error) {
	note, err := s.repo.Update(ctx, id, upd, models.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("note updated", "id", id, "empty_update", upd.IsEmpty())
	return note, nil
}

// Delete hard-deletes a note.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", id)
	return nil
}

func validateNote(note *models.Note) error {
	return validation.ValidateStruct(note,
		validation.Field(&note.FileName,
			validation.Required,
			validation.Length(1, 255),
		),
		validation.Field(&note.Creator,
			validation.Length(0, 255),
		),
	)
}
