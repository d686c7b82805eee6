package models

import (
	"database/sql/driver"
	"fmt"
)

// Flag is a boolean stored as INTEGER 0/1. Record structs keep plain bool
// fields; repositories convert through Flag when binding and scanning so raw
// integers never reach callers.
type Flag bool

// Scan implements sql.Scanner. NULL reads as false; any non-zero integer as true.
func (f *Flag) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*f = false
	case int64:
		*f = v != 0
	case bool:
		*f = Flag(v)
	case float64:
		*f = v != 0
	case []byte:
		return f.Scan(string(v))
	case string:
		switch v {
		case "", "0", "false":
			*f = false
		case "1", "true":
			*f = true
		default:
			return fmt.Errorf("failed to scan Flag: unexpected text %q", v)
		}
	default:
		return fmt.Errorf("failed to scan Flag: unsupported type %T", value)
	}
	return nil
}

// Value implements driver.Valuer, writing 1 for true and 0 for false.
func (f Flag) Value() (driver.Value, error) {
	if f {
		return int64(1), nil
	}
	return int64(0), nil
}
