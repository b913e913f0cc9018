package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaViolation is matched by every *SchemaViolation.
	ErrSchemaViolation = errors.New("collection: schema violation")

	// ErrEmptyCollection is returned by Document.First when the collection
	// has no items.
	ErrEmptyCollection = errors.New("collection: no items")

	// ErrMalformedJSON is returned by Parse when the body is not JSON.
	ErrMalformedJSON = errors.New("collection: malformed json")
)

// SchemaViolation describes where a document departs from the
// Collection+JSON shape.
type SchemaViolation struct {
	// Path locates the offending value, e.g. "collection.items[0].href".
	Path string

	// Expected names the expected shape, e.g. "string".
	Expected string

	// Actual names the shape found, e.g. "number" or "missing".
	Actual string
}

// Error returns the violation with its path.
func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("collection: schema violation at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is reports whether target is ErrSchemaViolation.
func (e *SchemaViolation) Is(target error) bool {
	return target == ErrSchemaViolation
}
