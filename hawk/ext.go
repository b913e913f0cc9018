package hawk

import (
	"fmt"
	"strings"
)

// ExtField is one name/value pair of an extension string.
type ExtField struct {
	Name  string
	Value any
}

// Ext is an ordered list of fields rendered into the Hawk ext attribute
// of write requests.
//
// The encoding is one level deep: {name: 'value', other: 'value'}. Values
// are formatted with %v and are not escaped or walked, so nested values and
// values containing a single quote produce ambiguous output. The server
// verifies the string as sent, so the shape must stay exactly this.
type Ext []ExtField

// Add appends a field and returns the extended list.
func (e Ext) Add(name string, value any) Ext {
	return append(e, ExtField{Name: name, Value: value})
}

// String renders the extension string. An empty Ext renders as "", which
// means the ext attribute is absent.
func (e Ext) String() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteByte('{')
	for i, f := range e {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s: '%v'", f.Name, f.Value)
	}
	b.WriteByte('}')

	return b.String()
}
