package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
)

// Data holds the named properties of an annotated example (classification
// label, entity spans, arbitrary enrichments). Stored as JSONB in PostgreSQL.
type Data map[string]any

// Set is a collection of unique strings, used for output property names and
// as a mergeable value kind inside Data.
type Set map[string]struct{}

// NewSet creates a Set from the given items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts an item into the set.
func (s Set) Add(item string) {
	s[item] = struct{}{}
}

// Contains reports whether the item is in the set.
func (s Set) Contains(item string) bool {
	_, ok := s[item]
	return ok
}

// Items returns the set members in sorted order.
func (s Set) Items() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// MarshalJSON encodes the set as a sorted array for deterministic output.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *Set) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}

// Value implements the driver.Valuer interface for database storage
func (d Data) Value() (driver.Value, error) {
	return d.Marshal()
}

// Scan implements the sql.Scanner interface for database retrieval
func (d *Data) Scan(value any) error {
	return d.Unmarshal(value)
}

// Marshal converts Data to JSON bytes
func (d Data) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal converts JSON bytes or Data to Data
func (d *Data) Unmarshal(value any) error {
	if value == nil {
		*d = Data{}
		return nil
	}

	if s, ok := value.(Data); ok {
		*d = Data(s)
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, d)
}

// valueKind is the closed set of value variants a Data entry can hold.
type valueKind int

const (
	kindScalar valueKind = iota
	kindSequence
	kindMapping
	kindSet
)

func kindOf(value any) valueKind {
	switch value.(type) {
	case []any:
		return kindSequence
	case map[string]any, Data:
		return kindMapping
	case Set:
		return kindSet
	default:
		return kindScalar
	}
}

func asMapping(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case Data:
		return v
	default:
		return nil
	}
}

// merge combines a new value into an existing one of the same kind, in place
// where the container allows it. Scalars never merge. The bool reports
// whether the merge applied; on false the existing value is untouched.
func merge(existing, value any) (any, bool) {
	kind := kindOf(existing)
	if kind != kindOf(value) {
		return existing, false
	}

	switch kind {
	case kindSequence:
		return append(existing.([]any), value.([]any)...), true
	case kindMapping:
		target := asMapping(existing)
		for key, val := range asMapping(value) {
			target[key] = val
		}
		return existing, true
	case kindSet:
		target := existing.(Set)
		for item := range value.(Set) {
			target[item] = struct{}{}
		}
		return existing, true
	default:
		return existing, false
	}
}
