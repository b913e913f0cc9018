package collection

import "fmt"

// Object is a flattened item: its href, its links when present, and one
// key per data field.
type Object map[string]any

// Href returns the item href.
func (o Object) Href() string {
	s, _ := o["href"].(string)
	return s
}

// String formats the value of key, or returns "" when it is absent.
func (o Object) String(key string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return ""
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// FlattenItem turns an item into an Object. Each data field becomes a key
// holding the field's resolved payload; fields with no payload are left
// out. Values are copied, so the result shares no memory with item.
func FlattenItem(item Item) Object {
	obj := Object{"href": item.Href}

	if item.Links != nil {
		links := make([]Link, len(item.Links))
		copy(links, item.Links)
		obj["links"] = links
	}

	for _, d := range item.Data {
		if v, ok := d.Resolve(); ok {
			obj[d.Name] = deepCopy(v)
		}
	}

	return obj
}

// First returns the first item flattened.
// Returns ErrEmptyCollection when the collection has no items.
func (d *Document) First() (Object, error) {
	if len(d.Collection.Items) == 0 {
		return nil, ErrEmptyCollection
	}

	return FlattenItem(d.Collection.Items[0]), nil
}

// Objects returns every item flattened, in document order.
func (d *Document) Objects() []Object {
	out := make([]Object, 0, len(d.Collection.Items))
	for _, item := range d.Collection.Items {
		out = append(out, FlattenItem(item))
	}

	return out
}

// Template returns a copy of the write template, unflattened, so it can be
// edited and submitted back. Returns nil when the document has none.
func (d *Document) Template() *Template {
	return d.Collection.Template.Clone()
}

// Failure returns the error object of the document, or nil.
func (d *Document) Failure() *Error {
	if d.Collection.Error == nil {
		return nil
	}

	e := *d.Collection.Error

	return &e
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}

		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}

		return out
	case []any:
		if t == nil {
			return t
		}

		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}

		return out
	default:
		return v
	}
}
