// Package patch validates a sparse set of client-supplied fields against a
// table's compiled allow-list of updatable columns.
//
// The validated assignments are handed to gorm's Updates, which binds every
// value as a parameter.
package patch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNoFields means the caller supplied nothing to update.
	ErrNoFields = errors.New("patch: no fields supplied")
	// ErrUnknownField means a supplied key is not an updatable column.
	ErrUnknownField = errors.New("patch: field is not updatable")
	// ErrNullNotAllowed means null was supplied for a column that cannot be cleared.
	ErrNullNotAllowed = errors.New("patch: field cannot be null")
	// ErrNotObject means the request body is not a JSON object.
	ErrNotObject = errors.New("patch: body must be a JSON object")
)

// Fields holds only the keys a client explicitly supplied. A nil value means
// an explicit null.
type Fields map[string]any

// Keys returns the supplied keys in lexical order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the key was supplied.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// FromJSON collects every top-level key of a JSON object body. Values stay
// raw until a typed request replaces them with Set; any key left raw is
// treated as unknown by Build.
func FromJSON(body []byte) (Fields, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Fields{}, nil
	}
	if body[0] != '{' {
		return nil, ErrNotObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("patch: decode body: %w", err)
	}

	f := make(Fields, len(raw))
	for k, v := range raw {
		f[k] = v
	}
	return f, nil
}

// Set replaces a supplied key with its typed value. A nil pointer records an
// explicit null. Keys that were not supplied are left absent.
func Set[T any](f Fields, name string, v *T) {
	if !f.Has(name) {
		return
	}
	if v == nil {
		f[name] = nil
		return
	}
	f[name] = *v
}

// Column is one updatable column of a Table.
type Column struct {
	Name     string
	Nullable bool
}

// Table is the immutable allow-list of updatable columns for one entity.
type Table struct {
	name    string
	key     string
	columns map[string]Column
}

// NewTable declares a table's updatable columns. It panics when the key
// column is listed as updatable or a column is declared twice, since both
// are programming errors.
func NewTable(name, key string, columns ...Column) Table {
	cols := make(map[string]Column, len(columns))
	for _, c := range columns {
		if c.Name == key {
			panic(fmt.Sprintf("patch: key column %s.%s cannot be updatable", name, key))
		}
		if _, dup := cols[c.Name]; dup {
			panic(fmt.Sprintf("patch: column %s.%s declared twice", name, c.Name))
		}
		cols[c.Name] = c
	}
	return Table{name: name, key: key, columns: cols}
}

func (t Table) Name() string { return t.name }

func (t Table) Key() string { return t.key }

// Allows reports whether name is an updatable column.
func (t Table) Allows(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Columns returns the updatable column names in lexical order.
func (t Table) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for name := range t.columns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Assignments checks fields against the allow-list and returns the column
// values to write. It returns ErrNoFields when fields is empty.
func (t Table) Assignments(fields Fields) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	values := make(map[string]any, len(fields))
	for _, name := range fields.Keys() {
		col, ok := t.columns[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}

		value := fields[name]
		if _, untyped := value.(json.RawMessage); untyped {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		if value == nil && !col.Nullable {
			return nil, fmt.Errorf("%w: %q", ErrNullNotAllowed, name)
		}
		values[col.Name] = value
	}
	return values, nil
}
