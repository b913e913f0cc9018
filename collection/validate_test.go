package collection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const opportunityDoc = `{
  "collection": {
    "version": "1.0",
    "href": "http://example.com/api/opportunities",
    "links": [{"rel": "self", "href": "http://example.com/api/opportunities"}],
    "items": [
      {
        "href": "http://example.com/api/opportunities/1",
        "data": [
          {"name": "id", "value": "1"},
          {"name": "title", "value": "Foster care"},
          {"name": "issues", "array": ["Education", "Children/Youth"]},
          {"name": "location", "object": {"city": "Austin"}},
          {"name": "capacity", "value": 12},
          {"name": "note", "value": null},
          {"name": "missing"}
        ],
        "links": [{"rel": "organization", "href": "http://example.com/api/organizations/2"}]
      },
      {
        "href": "http://example.com/api/opportunities/2",
        "data": [{"name": "id", "value": "2"}]
      }
    ],
    "queries": [{"rel": "search", "href": "http://example.com/api/search", "data": [{"name": "q", "value": ""}]}]
  }
}`

func TestParse(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc, err := Parse([]byte(opportunityDoc))
		require.NoError(t, err)

		assert.Equal(t, "1.0", doc.Collection.Version)
		assert.Equal(t, "http://example.com/api/opportunities", doc.Collection.Href)
		require.Len(t, doc.Collection.Items, 2)
		assert.Len(t, doc.Collection.Items[0].Data, 7)

		link, ok := doc.Collection.Link("self")
		require.True(t, ok)
		assert.Equal(t, "http://example.com/api/opportunities", link.Href)

		q, ok := doc.Collection.Query("search")
		require.True(t, ok)
		assert.Equal(t, "http://example.com/api/search", q.Href)

		_, ok = doc.Collection.Link("next")
		assert.False(t, ok)
	})

	t.Run("error document", func(t *testing.T) {
		doc, err := Parse([]byte(`{"collection":{"version":"1.0","href":"http://example.com/api/opportunities/10000",
			"error":{"title":"Not found","code":404,"message":"Opportunity not found"}}}`))
		require.NoError(t, err)

		assert.Equal(t, &Error{Title: "Not found", Code: NumericCode(404), Message: "Opportunity not found"}, doc.Failure())
	})

	t.Run("string error code", func(t *testing.T) {
		doc, err := Parse([]byte(`{"collection":{"version":"1.0","href":"h","error":{"code":"404"}}}`))
		require.NoError(t, err)

		assert.Equal(t, StringCode("404"), doc.Failure().Code)
		assert.NotEqual(t, NumericCode(404), doc.Failure().Code)
	})

	t.Run("write acknowledgement without items", func(t *testing.T) {
		doc, err := Parse([]byte(`{"collection":{"version":"1.0","href":"http://example.com/api/signups"}}`))
		require.NoError(t, err)
		assert.Empty(t, doc.Objects())
	})

	t.Run("unknown members are allowed", func(t *testing.T) {
		_, err := Parse([]byte(`{"collection":{"version":"1.0","href":"h","extra":true},"meta":1}`))
		assert.NoError(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Parse([]byte(`<html>`))
		assert.ErrorIs(t, err, ErrMalformedJSON)
		assert.NotErrorIs(t, err, ErrSchemaViolation)
	})

	t.Run("trailing data", func(t *testing.T) {
		_, err := Parse([]byte(`{"collection":{"version":"1.0","href":"h"}} {}`))
		assert.ErrorIs(t, err, ErrMalformedJSON)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		path     string
		expected string
		actual   string
	}{
		{"not an object", `[]`, "$", "object", "array"},
		{"missing collection", `{}`, "collection", "object", "missing"},
		{"collection not object", `{"collection":"x"}`, "collection", "object", "string"},
		{"missing href", `{"collection":{"version":"1.0"}}`, "collection.href", "string", "missing"},
		{"missing version", `{"collection":{"href":"h"}}`, "collection.version", "string", "missing"},
		{"numeric version", `{"collection":{"href":"h","version":1}}`, "collection.version", "string", "number"},
		{"items not array", `{"collection":{"href":"h","version":"1","items":{}}}`, "collection.items", "array", "object"},
		{"item without href", `{"collection":{"href":"h","version":"1","items":[{"data":[]}]}}`, "collection.items[0].href", "string", "missing"},
		{"item data not array", `{"collection":{"href":"h","version":"1","items":[{"href":"i","data":"x"}]}}`, "collection.items[0].data", "array", "string"},
		{"data without name", `{"collection":{"href":"h","version":"1","items":[{"href":"i","data":[{"value":1}]}]}}`, "collection.items[0].data[0].name", "string", "missing"},
		{"data array not array", `{"collection":{"href":"h","version":"1","items":[{"href":"i","data":[{"name":"n","array":1}]}]}}`, "collection.items[0].data[0].array", "array", "number"},
		{"data object not object", `{"collection":{"href":"h","version":"1","items":[{"href":"i","data":[{"name":"n","object":[]}]}]}}`, "collection.items[0].data[0].object", "object", "array"},
		{"link href not string", `{"collection":{"href":"h","version":"1","links":[{"href":1}]}}`, "collection.links[0].href", "string", "number"},
		{"template not object", `{"collection":{"href":"h","version":"1","template":[]}}`, "collection.template", "object", "array"},
		{"template data not array", `{"collection":{"href":"h","version":"1","template":{"data":true}}}`, "collection.template.data", "array", "boolean"},
		{"error not object", `{"collection":{"href":"h","version":"1","error":"boom"}}`, "collection.error", "object", "string"},
		{"error code boolean", `{"collection":{"href":"h","version":"1","error":{"code":true}}}`, "collection.error.code", "string or number", "boolean"},
		{"query data entry", `{"collection":{"href":"h","version":"1","queries":[{"rel":"s","data":[1]}]}}`, "collection.queries[0].data[0]", "object", "number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaViolation)

			var violation *SchemaViolation
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, tt.path, violation.Path)
			assert.Equal(t, tt.expected, violation.Expected)
			assert.Equal(t, tt.actual, violation.Actual)
			assert.Contains(t, violation.Error(), tt.path)
		})
	}

	t.Run("null optional members count as absent", func(t *testing.T) {
		var v any
		require.NoError(t, json.Unmarshal([]byte(`{"collection":{"href":"h","version":"1","items":null,"template":null,"error":null}}`), &v))
		assert.NoError(t, Validate(v))
	})
}
