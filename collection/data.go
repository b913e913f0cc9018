package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type presence uint8

const (
	hasValue presence = 1 << iota
	hasArray
	hasObject
)

// Data is a named field of an item, query or template. Its payload is a
// scalar value, an array or an object. A field carrying none of the three
// has no value at all, which is different from an explicit null value.
type Data struct {
	Name   string
	Prompt string

	value    any
	array    []any
	object   map[string]any
	presence presence
}

// Value returns a field with a scalar value.
func Value(name string, v any) Data {
	return Data{Name: name, value: v, presence: hasValue}
}

// Array returns a field with an array value.
func Array(name string, vs ...any) Data {
	if vs == nil {
		vs = []any{}
	}

	return Data{Name: name, array: vs, presence: hasArray}
}

// ObjectValue returns a field with an object value.
func ObjectValue(name string, m map[string]any) Data {
	return Data{Name: name, object: m, presence: hasObject}
}

// Empty returns a field without a value, as found in templates.
func Empty(name, prompt string) Data {
	return Data{Name: name, Prompt: prompt}
}

// Value returns the scalar value and whether it is present.
func (d Data) Value() (any, bool) {
	return d.value, d.presence&hasValue != 0
}

// Array returns the array value and whether it is present.
func (d Data) Array() ([]any, bool) {
	return d.array, d.presence&hasArray != 0
}

// Object returns the object value and whether it is present.
func (d Data) Object() (map[string]any, bool) {
	return d.object, d.presence&hasObject != 0
}

// Resolve returns the effective payload of the field: the value when
// present, else the array, else the object. ok is false when the field
// has none of them.
func (d Data) Resolve() (v any, ok bool) {
	switch {
	case d.presence&hasValue != 0:
		return d.value, true
	case d.presence&hasArray != 0:
		return d.array, true
	case d.presence&hasObject != 0:
		return d.object, true
	default:
		return nil, false
	}
}

type dataJSON struct {
	Name   string          `json:"name"`
	Prompt string          `json:"prompt,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
	Array  json.RawMessage `json:"array,omitempty"`
	Object json.RawMessage `json:"object,omitempty"`
}

// MarshalJSON writes only the payload members that are present.
func (d Data) MarshalJSON() ([]byte, error) {
	out := dataJSON{Name: d.Name, Prompt: d.Prompt}

	var err error
	if d.presence&hasValue != 0 {
		if out.Value, err = json.Marshal(d.value); err != nil {
			return nil, err
		}
	}

	if d.presence&hasArray != 0 {
		if out.Array, err = json.Marshal(d.array); err != nil {
			return nil, err
		}
	}

	if d.presence&hasObject != 0 {
		if out.Object, err = json.Marshal(d.object); err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON records which payload members are present. Numbers are
// decoded as json.Number.
func (d *Data) UnmarshalJSON(b []byte) error {
	var in dataJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	*d = Data{Name: in.Name, Prompt: in.Prompt}

	if in.Value != nil {
		if err := decodeNumbers(in.Value, &d.value); err != nil {
			return fmt.Errorf("collection: data %q value: %w", in.Name, err)
		}
		d.presence |= hasValue
	}

	// A null array or object is absent; only value distinguishes null.
	if in.Array != nil && !isNull(in.Array) {
		if err := decodeNumbers(in.Array, &d.array); err != nil {
			return fmt.Errorf("collection: data %q array: %w", in.Name, err)
		}
		d.presence |= hasArray
	}

	if in.Object != nil && !isNull(in.Object) {
		if err := decodeNumbers(in.Object, &d.object); err != nil {
			return fmt.Errorf("collection: data %q object: %w", in.Name, err)
		}
		d.presence |= hasObject
	}

	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeNumbers(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	return dec.Decode(v)
}
