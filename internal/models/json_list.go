package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList is an ordered collection persisted as JSON array text in a single
// column (pictures, personnel, madrasas).
//
// A column that was never written (NULL or empty text) reads back as an empty,
// non-nil list, and a nil list is written as "[]", so the column always holds
// valid array text.
type JSONList[T any] []T

// Scan implements sql.Scanner for reading the JSON text column.
// Malformed JSON is returned as an error; there is no partial recovery.
func (l *JSONList[T]) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = JSONList[T]{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("failed to scan JSONList: expected text, got %T", value)
	}

	if len(raw) == 0 {
		*l = JSONList[T]{}
		return nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("failed to unmarshal JSON list: %w", err)
	}
	if items == nil {
		// "null" text
		items = []T{}
	}

	*l = items
	return nil
}

// Value implements driver.Valuer for writing the list as JSON text.
func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}

	data, err := json.Marshal([]T(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON list: %w", err)
	}
	return string(data), nil
}

// MarshalJSON keeps API responses as arrays even for a nil list.
func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}
