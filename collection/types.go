package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MediaType is the Collection+JSON media type.
const MediaType = "application/vnd.collection+json"

// Document is the top-level Collection+JSON envelope.
type Document struct {
	Collection Collection `json:"collection"`
}

// Collection is the body of a Collection+JSON document.
//
// See: http://amundsen.com/media-types/collection/format/
type Collection struct {
	Version  string    `json:"version"`
	Href     string    `json:"href"`
	Links    []Link    `json:"links,omitempty"`
	Items    []Item    `json:"items,omitempty"`
	Queries  []Query   `json:"queries,omitempty"`
	Template *Template `json:"template,omitempty"`
	Error    *Error    `json:"error,omitempty"`
}

// Link returns the first link with the given rel.
func (c *Collection) Link(rel string) (Link, bool) {
	for _, l := range c.Links {
		if l.Rel == rel {
			return l, true
		}
	}

	return Link{}, false
}

// Query returns the first query template with the given rel.
func (c *Collection) Query(rel string) (Query, bool) {
	for _, q := range c.Queries {
		if q.Rel == rel {
			return q, true
		}
	}

	return Query{}, false
}

// Item is one element of a collection.
type Item struct {
	Href  string `json:"href"`
	Data  []Data `json:"data,omitempty"`
	Links []Link `json:"links,omitempty"`
}

// Link is a hypermedia link.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Name   string `json:"name,omitempty"`
	Render string `json:"render,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// Query describes a query the server accepts.
type Query struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Name   string `json:"name,omitempty"`
	Prompt string `json:"prompt,omitempty"`
	Data   []Data `json:"data,omitempty"`
}

// Error is the error object a server returns with a failed request.
type Error struct {
	Title   string    `json:"title,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// ErrorCode holds the JSON literal of an error code. Servers send it
// either as a number or as a string, so codes are compared as opaque
// values: NumericCode(404) and StringCode("404") are different codes.
type ErrorCode string

// NumericCode returns the code for a numeric JSON literal.
func NumericCode(code int) ErrorCode {
	return ErrorCode(strconv.Itoa(code))
}

// StringCode returns the code for a JSON string literal.
func StringCode(code string) ErrorCode {
	b, _ := json.Marshal(code)
	return ErrorCode(b)
}

// String returns the code without JSON quoting.
func (c ErrorCode) String() string {
	var s string
	if err := json.Unmarshal([]byte(c), &s); err == nil {
		return s
	}

	return string(c)
}

// Int returns the code as an integer when it is one, numeric or quoted.
func (c ErrorCode) Int() (int, bool) {
	n, err := strconv.Atoi(c.String())
	return n, err == nil
}

// MarshalJSON writes the code literal unchanged.
func (c ErrorCode) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}

	return []byte(c), nil
}

// UnmarshalJSON accepts a JSON number or string.
func (c *ErrorCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*c = ""
	case len(b) > 0 && (b[0] == '"' || b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		*c = ErrorCode(b)
	default:
		return fmt.Errorf("collection: error code must be a number or string, got %s", b)
	}

	return nil
}
