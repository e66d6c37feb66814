package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultCreator is recorded on notes created without an explicit creator.
const DefaultCreator = "admin"

// TimeLayout is the wire format for all note timestamps. Fixed format, no
// timezone offset.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp wraps time.Time to serialize as "YYYY-MM-DD HH:MM:SS" in JSON.
// Stores keep the underlying time.Time in their native datetime types.
type Timestamp struct {
	time.Time
}

// Now returns the current UTC time truncated to whole seconds, matching the
// precision of the wire format.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Second)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %v", s, err)
	}
	t.Time = parsed
	return nil
}

// Note is a single markdown record in the document collection. The ID is
// assigned by the store on creation and is opaque to clients; handlers never
// construct one.
type Note struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	FileName     string    `json:"file_name"`
	Creator      string    `json:"creator"`
	DateAdded    Timestamp `json:"date_added"`
	DateModified Timestamp `json:"date_modified"`
}

// NoteCollection wraps the list response. The original API wraps the array
// because a top-level JSON array is a known hijacking vector.
type NoteCollection struct {
	Markdowns []Note `json:"markdowns"`
}

// NoteUpdate is a sparse field-level merge: absent and JSON-null fields leave
// the stored field untouched. date_modified is always refreshed by the store,
// so an update with no recognized fields is still a valid (timestamp-only)
// mutation.
type NoteUpdate struct {
	FileName  OptionalString `json:"file_name"`
	Creator   OptionalString `json:"creator"`
	DateAdded OptionalTime   `json:"date_added"`
}

// IsEmpty reports whether the update carries no applicable field.
func (u *NoteUpdate) IsEmpty() bool {
	return !u.FileName.IsSet() && !u.Creator.IsSet() && !u.DateAdded.IsSet()
}
