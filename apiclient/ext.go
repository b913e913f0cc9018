package apiclient

import (
	"github.com/vitalvas/forthecity/collection"
	"github.com/vitalvas/forthecity/hawk"
)

// ExtFromTemplate lists the data entries of a write template as a Hawk
// ext value, in document order. Entries with no value are skipped and
// nested values are rendered with %v, not walked. A nil or empty template
// yields an empty Ext, which is sent without an ext attribute.
func ExtFromTemplate(t *collection.Template) hawk.Ext {
	if t == nil {
		return nil
	}

	var ext hawk.Ext
	for _, d := range t.Data {
		if v, ok := d.Resolve(); ok {
			ext = ext.Add(d.Name, v)
		}
	}

	return ext
}
