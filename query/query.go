// Package query encodes search parameters into URL query strings.
//
// Scalars are written as key=value and arrays as one key[]=value pair
// per element:
//
//	q := query.New().Set("q", "foster care").Add("issues", "A", "B")
//	q.Encode() // q=foster%20care&issues[]=A&issues[]=B
//
// Keys keep the order in which they were first set, so encoding is
// deterministic.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrMalformedQuery is returned by Parse for undecodable input.
var ErrMalformedQuery = errors.New("query: malformed query")

// arraySuffix marks array keys on the wire.
const arraySuffix = "[]"

// Param is the value of one key: a scalar or an array of scalars.
type Param struct {
	Values []string
	Array  bool
}

// Values is an insertion-ordered mapping of keys to parameters.
// The zero value is ready to use.
type Values struct {
	keys   []string
	params map[string]Param
}

// New returns an empty Values.
func New() *Values {
	return &Values{}
}

// Set sets key to a scalar value. Strings are used as is; other values are
// formatted with Format.
func (v *Values) Set(key string, value any) *Values {
	v.put(key, Param{Values: []string{Format(value)}})
	return v
}

// Add sets key to an array of values, appending to an existing array.
func (v *Values) Add(key string, values ...any) *Values {
	p, ok := v.params[key]
	if !ok || !p.Array {
		p = Param{Array: true}
	}

	for _, val := range values {
		p.Values = append(p.Values, Format(val))
	}

	if p.Values == nil {
		p.Values = []string{}
	}

	v.put(key, p)

	return v
}

// Get returns the parameter for key.
func (v *Values) Get(key string) (Param, bool) {
	p, ok := v.params[key]
	return p, ok
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)

	return out
}

// Len returns the number of keys. A nil Values has none.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}

	return len(v.keys)
}

func (v *Values) put(key string, p Param) {
	if v.params == nil {
		v.params = make(map[string]Param)
	}

	if _, ok := v.params[key]; !ok {
		v.keys = append(v.keys, key)
	}

	v.params[key] = p
}

// Encode returns the query string without a leading "?". Keys and values
// are percent-encoded; everything outside A-Z a-z 0-9 - _ . ~ is escaped,
// including "/", space (as %20) and non-ASCII text. An empty Values
// encodes to "".
//
// The key[]=value grammar cannot express an empty array, so an array key
// with no values emits no pairs and does not survive Parse.
func (v *Values) Encode() string {
	if v == nil {
		return ""
	}

	pairs := make([]string, 0, len(v.keys))

	for _, key := range v.keys {
		p := v.params[key]

		name := Escape(key)
		if p.Array {
			name += arraySuffix
		}

		for _, val := range p.Values {
			pairs = append(pairs, name+"="+Escape(val))
		}
	}

	return strings.Join(pairs, "&")
}

// Parse decodes a query string produced by Encode. A leading "?" is
// ignored.
func Parse(s string) (*Values, error) {
	v := New()

	s = strings.TrimPrefix(s, "?")
	if s == "" {
		return v, nil
	}

	for pair := range strings.SplitSeq(s, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawVal, _ := strings.Cut(pair, "=")

		array := strings.HasSuffix(rawKey, arraySuffix)
		rawKey = strings.TrimSuffix(rawKey, arraySuffix)

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedQuery, err)
		}

		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedQuery, err)
		}

		if array {
			v.Add(key, val)
		} else {
			v.Set(key, val)
		}
	}

	return v, nil
}

// Escape percent-encodes s for use as a query key or value. Spaces are
// written as %20, never as "+".
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Format renders a scalar the way it is sent on the wire.
func Format(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
