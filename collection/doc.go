// Package collection reads and writes Collection+JSON documents.
//
// Parse validates a response body against the Collection+JSON shape and
// returns a typed Document. Items are flattened into plain objects with
// FlattenItem, Document.First and Document.Objects: every data field
// becomes a key whose value is the field's value, array or object, in
// that order of precedence.
//
//	doc, err := collection.Parse(body)
//	if err != nil {
//	    // err matches collection.ErrSchemaViolation or ErrMalformedJSON
//	}
//
//	opportunity, err := doc.First()
//	fmt.Println(opportunity["id"], opportunity.Href())
//
// # Templates
//
// Write operations submit a template. Document.Template returns the
// server's template unflattened so it can be filled in and sent back:
//
//	tmpl := doc.Template()
//	tmpl.Set(collection.Value("email", "jon@example.com"))
//	body, err := tmpl.Body() // {"template":{"data":[...]}}
//
// # Errors
//
// Failed requests carry an error object, returned as is by
// Document.Failure. Its code is kept as the JSON literal the server sent.
package collection
