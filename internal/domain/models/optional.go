package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// OptionalString tracks presence and value for merge-update semantics.
// Go's *string alone cannot distinguish "field absent" from "field null";
// both must leave the stored value untouched, so IsSet() is only true for a
// present, non-null value.
type OptionalString struct {
	Present bool
	Value   *string
}

// IsSet reports whether the field was present with a non-null value.
func (o OptionalString) IsSet() bool {
	return o.Present && o.Value != nil
}

// UnmarshalJSON implements json.Unmarshaler. Being called at all means the
// field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// OptionalTime is OptionalString's counterpart for timestamp fields, parsed
// with the fixed TimeLayout wire format.
type OptionalTime struct {
	Present bool
	Value   *time.Time
}

func (o OptionalTime) IsSet() bool {
	return o.Present && o.Value != nil
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(TimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %v", s, err)
	}
	o.Value = &parsed
	return nil
}
