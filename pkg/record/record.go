// Package record provides an opaque JSON object type for server-owned resources.
//
// Only the "id" member is interpreted. Every other member is kept as raw JSON
// and passed through unchanged, so the console never has to track the shape
// of records it does not own.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"strconv"
)

// IDKey is the member name holding the server-assigned identifier.
const IDKey = "id"

// Errors.
var (
	ErrNotObject = errors.New("record: value is not a JSON object")
	ErrNoField   = errors.New("record: field not found")
)

// Record is a JSON object with an optional identifier.
// The zero value is an empty record.
type Record struct {
	fields map[string]json.RawMessage
}

// New builds a record from arbitrary field values.
func New(fields map[string]any) (Record, error) {
	r := Record{fields: make(map[string]json.RawMessage, len(fields))}
	for k, v := range fields {
		if err := r.setRaw(k, v); err != nil {
			return Record{}, err
		}
	}
	return r, nil
}

// MustNew is like New but panics on encoding errors. Intended for tests and literals.
func MustNew(fields map[string]any) Record {
	r, err := New(fields)
	if err != nil {
		panic(err)
	}
	return r
}

// ID returns the identifier in textual form.
// String ids are returned unquoted, numeric ids as written by the server.
// Returns an empty string if the record has no usable id.
func (r Record) ID() string {
	raw, ok := r.fields[IDKey]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return string(raw)
	default:
		return ""
	}
}

// HasID reports whether the record carries an identifier.
func (r Record) HasID() bool {
	return r.ID() != ""
}

// Keys returns member names in sorted order.
func (r Record) Keys() []string {
	return slices.Sorted(maps.Keys(r.fields))
}

// Len returns the number of members.
func (r Record) Len() int {
	return len(r.fields)
}

// Raw returns the raw JSON of a member.
func (r Record) Raw(key string) (json.RawMessage, bool) {
	raw, ok := r.fields[key]
	return raw, ok
}

// Decode unmarshals a member into dst.
// Returns ErrNoField if the member does not exist.
func (r Record) Decode(key string, dst any) error {
	raw, ok := r.fields[key]
	if !ok {
		return ErrNoField
	}
	return json.Unmarshal(raw, dst)
}

// String returns a member as a string.
// Non-string members are returned as their JSON text; missing members as "".
func (r Record) String(key string) string {
	raw, ok := r.fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// With returns a copy of the record with key set to v.
func (r Record) With(key string, v any) (Record, error) {
	out := r.clone()
	if err := out.setRaw(key, v); err != nil {
		return Record{}, err
	}
	return out, nil
}

// Without returns a copy of the record without key.
func (r Record) Without(key string) Record {
	out := r.clone()
	delete(out.fields, key)
	return out
}

// WithID returns a copy of the record carrying id as a JSON string.
func (r Record) WithID(id string) Record {
	out := r.clone()
	out.fields[IDKey] = json.RawMessage(strconv.Quote(id))
	return out
}

// Map decodes every member into a generic map.
func (r Record) Map() (map[string]any, error) {
	out := make(map[string]any, len(r.fields))
	for k, raw := range r.fields {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// MarshalJSON encodes the record as a JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.fields)
}

// UnmarshalJSON decodes a JSON object into the record.
// Returns ErrNotObject for arrays, scalars and null.
func (r *Record) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return ErrNotObject
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return errors.Join(ErrNotObject, err)
	}
	r.fields = fields
	return nil
}

func (r Record) clone() Record {
	fields := make(map[string]json.RawMessage, len(r.fields)+1)
	maps.Copy(fields, r.fields)
	return Record{fields: fields}
}

func (r *Record) setRaw(key string, v any) error {
	if r.fields == nil {
		r.fields = make(map[string]json.RawMessage)
	}
	if raw, ok := v.(json.RawMessage); ok {
		r.fields[key] = raw
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.fields[key] = data
	return nil
}
