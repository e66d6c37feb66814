package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"marknote/internal/domain"
	"marknote/internal/domain/models"
	"marknote/internal/domain/repositories"
)

// TableName returns the prefixed notes table name for an environment prefix
// such as "dev_".
func TableName(prefix string) string {
	return fmt.Sprintf("%smarkdowns", prefix)
}

// NoteRepository is the PostgreSQL implementation of
// repositories.NoteRepository. Ids are UUIDs generated on insert; a string
// that does not parse as a UUID is treated as NotFound for parity with the
// document-store backend.
type NoteRepository struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

func NewNoteRepository(pool *pgxpool.Pool, table string, logger *slog.Logger) repositories.NoteRepository {
	return &NoteRepository{
		pool:   pool,
		table:  table,
		logger: logger,
	}
}

// Create inserts the note with a freshly generated UUID.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, content, file_name, creator, date_added, date_modified)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.table)

	id := uuid.New().String()
	_, err := r.pool.Exec(ctx, query,
		id,
		note.Content,
		note.FileName,
		note.Creator,
		note.DateAdded.Time,
		note.DateModified.Time,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	note.ID = id
	return nil
}

// List returns up to limit notes, in whatever order the table yields them.
func (r *NoteRepository) List(ctx context.Context, limit int64) ([]models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, content, file_name, creator, date_added, date_modified
		FROM %s
		LIMIT $1
	`, r.table)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		err := rows.Scan(
			&n.ID,
			&n.Content,
			&n.FileName,
			&n.Creator,
			&n.DateAdded.Time,
			&n.DateModified.Time,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

// Get returns the note with the given UUID.
func (r *NoteRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, content, file_name, creator, date_added, date_modified
		FROM %s
		WHERE id = $1
	`, r.table)

	var n models.Note
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.Content,
		&n.FileName,
		&n.Creator,
		&n.DateAdded.Time,
		&n.DateModified.Time,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return &n, nil
}

// Update applies the present fields of upd plus the new date_modified in a
// single UPDATE, returning the post-update row.
func (r *NoteRepository) Update(ctx context.Context, id string, upd *models.NoteUpdate, modified models.Timestamp) (*models.Note, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}

	sets := []string{"date_modified = $1"}
	args := []interface{}{modified.Time}

	if upd.FileName.IsSet() {
		args = append(args, *upd.FileName.Value)
		sets = append(sets, fmt.Sprintf("file_name = $%d", len(args)))
	}
	if upd.Creator.IsSet() {
		args = append(args, *upd.Creator.Value)
		sets = append(sets, fmt.Sprintf("creator = $%d", len(args)))
	}
	if upd.DateAdded.IsSet() {
		args = append(args, *upd.DateAdded.Value)
		sets = append(sets, fmt.Sprintf("date_added = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE id = $%d
		RETURNING id, content, file_name, creator, date_added, date_modified
	`, r.table, strings.Join(sets, ", "), len(args))

	var n models.Note
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&n.ID,
		&n.Content,
		&n.FileName,
		&n.Creator,
		&n.DateAdded.Time,
		&n.DateModified.Time,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	return &n, nil
}

// Delete removes the note permanently.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
