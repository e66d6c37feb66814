package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"marknote/internal/domain"
	"marknote/internal/domain/models"
	"marknote/internal/domain/repositories"
)

const noteCollection = "markdown"

// NoteRepository is the MongoDB implementation of repositories.NoteRepository.
// Ids are ObjectIDs rendered as hex strings; a string that does not parse as
// an ObjectID cannot name a stored note, so lookups treat it as NotFound.
type NoteRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

func NewNoteRepository(db *mongo.Database, logger *slog.Logger) repositories.NoteRepository {
	return &NoteRepository{
		coll:   db.Collection(noteCollection),
		logger: logger,
	}
}

// noteDoc is the BSON shape of a note. Timestamps are kept as plain
// time.Time so the driver stores native BSON datetimes; the JSON wire format
// lives on models.Timestamp.
type noteDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Content      string        `bson:"content"`
	FileName     string        `bson:"file_name"`
	Creator      string        `bson:"creator"`
	DateAdded    time.Time     `bson:"date_added"`
	DateModified time.Time     `bson:"date_modified"`
}

func (d *noteDoc) toModel() *models.Note {
	return &models.Note{
		ID:           d.ID.Hex(),
		Content:      d.Content,
		FileName:     d.FileName,
		Creator:      d.Creator,
		DateAdded:    models.Timestamp{Time: d.DateAdded},
		DateModified: models.Timestamp{Time: d.DateModified},
	}
}

// Create inserts the note and fills in the assigned ObjectID.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	doc := noteDoc{
		Content:      note.Content,
		FileName:     note.FileName,
		Creator:      note.Creator,
		DateAdded:    note.DateAdded.Time,
		DateModified: note.DateModified.Time,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	note.ID = res.InsertedID.(bson.ObjectID).Hex()
	return nil
}

// List returns up to limit notes in the collection's native order.
func (r *NoteRepository) List(ctx context.Context, limit int64) ([]models.Note, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []noteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]models.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, *docs[i].toModel())
	}
	return notes, nil
}

// Get returns the note with the given hex id.
func (r *NoteRepository) Get(ctx context.Context, id string) (*models.Note, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc noteDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return doc.toModel(), nil
}

// Update applies the present fields of upd plus the new date_modified in one
// $set, returning the post-update document.
func (r *NoteRepository) Update(ctx context.Context, id string, upd *models.NoteUpdate, modified models.Timestamp) (*models.Note, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"date_modified": modified.Time}
	if upd.FileName.IsSet() {
		set["file_name"] = *upd.FileName.Value
	}
	if upd.Creator.IsSet() {
		set["creator"] = *upd.Creator.Value
	}
	if upd.DateAdded.IsSet() {
		set["date_added"] = *upd.DateAdded.Value
	}

	var doc noteDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	return doc.toModel(), nil
}

// Delete removes the note permanently.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("markdown %s: %w", id, domain.ErrNotFound)
	}
	return oid, nil
}
