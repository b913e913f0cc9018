package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Parse decodes and validates a Collection+JSON body.
//
// Returns an error matching ErrMalformedJSON when body is not a single JSON
// value, and a *SchemaViolation when it is JSON of the wrong shape.
func Parse(body []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedJSON)
	}

	if err := Validate(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &SchemaViolation{Path: "collection", Expected: "Collection+JSON document", Actual: err.Error()}
	}

	return &doc, nil
}

// Validate checks a decoded JSON value against the Collection+JSON shape:
// collection.href and collection.version are required strings; links,
// items and queries are optional arrays; template and error are optional
// objects. Unknown members are allowed. null optional members count as
// absent.
//
// The first violation found is returned as a *SchemaViolation.
func Validate(v any) error {
	root, err := asObject(v, "$")
	if err != nil {
		return err
	}

	c, err := requireObject(root, "collection", "collection")
	if err != nil {
		return err
	}

	if err := requireString(c, "href", "collection.href"); err != nil {
		return err
	}

	if err := requireString(c, "version", "collection.version"); err != nil {
		return err
	}

	if err := eachElement(c, "links", "collection.links", validateLink); err != nil {
		return err
	}

	if err := eachElement(c, "items", "collection.items", validateItem); err != nil {
		return err
	}

	if err := eachElement(c, "queries", "collection.queries", validateQuery); err != nil {
		return err
	}

	if tmpl, ok, err := optionalObject(c, "template", "collection.template"); err != nil {
		return err
	} else if ok {
		if err := eachElement(tmpl, "data", "collection.template.data", validateData); err != nil {
			return err
		}
	}

	if e, ok, err := optionalObject(c, "error", "collection.error"); err != nil {
		return err
	} else if ok {
		return validateError(e, "collection.error")
	}

	return nil
}

func validateItem(v any, path string) error {
	item, err := asObject(v, path)
	if err != nil {
		return err
	}

	if err := requireString(item, "href", path+".href"); err != nil {
		return err
	}

	if err := eachElement(item, "data", path+".data", validateData); err != nil {
		return err
	}

	return eachElement(item, "links", path+".links", validateLink)
}

func validateLink(v any, path string) error {
	link, err := asObject(v, path)
	if err != nil {
		return err
	}

	return optionalStrings(link, path, "href", "rel", "name", "render", "prompt")
}

func validateQuery(v any, path string) error {
	q, err := asObject(v, path)
	if err != nil {
		return err
	}

	if err := optionalStrings(q, path, "href", "rel", "name", "prompt"); err != nil {
		return err
	}

	return eachElement(q, "data", path+".data", validateData)
}

func validateData(v any, path string) error {
	d, err := asObject(v, path)
	if err != nil {
		return err
	}

	if err := requireString(d, "name", path+".name"); err != nil {
		return err
	}

	if err := optionalStrings(d, path, "prompt"); err != nil {
		return err
	}

	if a, ok := d["array"]; ok && a != nil {
		if _, isArray := a.([]any); !isArray {
			return &SchemaViolation{Path: path + ".array", Expected: "array", Actual: kindOf(a)}
		}
	}

	if o, ok := d["object"]; ok && o != nil {
		if _, isObject := o.(map[string]any); !isObject {
			return &SchemaViolation{Path: path + ".object", Expected: "object", Actual: kindOf(o)}
		}
	}

	return nil
}

func validateError(e map[string]any, path string) error {
	if err := optionalStrings(e, path, "title", "message"); err != nil {
		return err
	}

	code, ok := e["code"]
	if !ok || code == nil {
		return nil
	}

	switch code.(type) {
	case string, json.Number:
		return nil
	default:
		return &SchemaViolation{Path: path + ".code", Expected: "string or number", Actual: kindOf(code)}
	}
}

func asObject(v any, path string) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaViolation{Path: path, Expected: "object", Actual: kindOf(v)}
	}

	return m, nil
}

func requireObject(m map[string]any, key, path string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, &SchemaViolation{Path: path, Expected: "object", Actual: "missing"}
	}

	return asObject(v, path)
}

func optionalObject(m map[string]any, key, path string) (map[string]any, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false, nil
	}

	obj, err := asObject(v, path)

	return obj, err == nil, err
}

func requireString(m map[string]any, key, path string) error {
	v, ok := m[key]
	if !ok {
		return &SchemaViolation{Path: path, Expected: "string", Actual: "missing"}
	}

	if _, ok := v.(string); !ok {
		return &SchemaViolation{Path: path, Expected: "string", Actual: kindOf(v)}
	}

	return nil
}

func optionalStrings(m map[string]any, path string, keys ...string) error {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}

		if _, ok := v.(string); !ok {
			return &SchemaViolation{Path: path + "." + key, Expected: "string", Actual: kindOf(v)}
		}
	}

	return nil
}

// eachElement validates every element of the optional array m[key].
func eachElement(m map[string]any, key, path string, fn func(v any, path string) error) error {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}

	arr, ok := v.([]any)
	if !ok {
		return &SchemaViolation{Path: path, Expected: "array", Actual: kindOf(v)}
	}

	for i, el := range arr {
		if err := fn(el, path+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}

	return nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
