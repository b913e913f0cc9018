package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/vitalvas/forthecity/collection"
	"github.com/vitalvas/forthecity/query"
)

// Resource is a path on the API with the generic read and write
// operations. Resources are immutable; Child and With return new ones.
type Resource struct {
	client *Client
	path   string
	query  *query.Values
}

// Resource returns the resource at /api/<segments...>. Segments are
// path-escaped.
func (c *Client) Resource(segments ...string) *Resource {
	return (&Resource{client: c, path: "/api"}).Child(segments...)
}

// Path returns the request path of the resource.
func (r *Resource) Path() string {
	return r.path
}

// Child returns the resource below r at the given segments.
func (r *Resource) Child(segments ...string) *Resource {
	var b strings.Builder
	b.WriteString(r.path)

	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}

	return &Resource{client: r.client, path: b.String(), query: r.query}
}

// With returns r with the query parameters q.
func (r *Resource) With(q *query.Values) *Resource {
	return &Resource{client: r.client, path: r.path, query: q}
}

func (r *Resource) fetch(ctx context.Context, method string, tmpl *collection.Template) (*collection.Document, *Response, error) {
	return r.client.fetch(ctx, Request{
		Method:   method,
		Path:     r.path,
		Query:    r.query,
		Template: tmpl,
	})
}

// Get returns the first item of the resource, flattened.
func (r *Resource) Get(ctx context.Context) (collection.Object, *Response, error) {
	doc, resp, err := r.fetch(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, resp, err
	}

	if doc == nil {
		return nil, resp, &Error{Kind: KindEmpty, Response: resp, Err: collection.ErrEmptyCollection}
	}

	obj, err := doc.First()
	if err != nil {
		return nil, resp, &Error{Kind: KindEmpty, Response: resp, Err: err}
	}

	return obj, resp, nil
}

// List returns every item of the resource, flattened, in response order.
func (r *Resource) List(ctx context.Context) ([]collection.Object, *Response, error) {
	doc, resp, err := r.fetch(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, resp, err
	}

	return objects(doc), resp, nil
}

// Template returns the write template of the resource, unflattened.
func (r *Resource) Template(ctx context.Context) (*collection.Template, *Response, error) {
	doc, resp, err := r.fetch(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, resp, err
	}

	if doc == nil || doc.Collection.Template == nil {
		return nil, resp, &Error{Kind: KindSchema, Response: resp, Err: ErrNoTemplate}
	}

	return doc.Template(), resp, nil
}

// Create POSTs tmpl to the resource and returns the items of the
// response. A write acknowledged with an empty body returns no items.
func (r *Resource) Create(ctx context.Context, tmpl *collection.Template) ([]collection.Object, *Response, error) {
	return r.write(ctx, http.MethodPost, tmpl)
}

// Update PUTs tmpl to the resource and returns the items of the response.
func (r *Resource) Update(ctx context.Context, tmpl *collection.Template) ([]collection.Object, *Response, error) {
	return r.write(ctx, http.MethodPut, tmpl)
}

func (r *Resource) write(ctx context.Context, method string, tmpl *collection.Template) ([]collection.Object, *Response, error) {
	if tmpl == nil {
		tmpl = collection.NewTemplate()
	}

	doc, resp, err := r.fetch(ctx, method, tmpl)
	if err != nil {
		return nil, resp, err
	}

	return objects(doc), resp, nil
}

// Put sends a PUT without a body, e.g. to add a relation.
func (r *Resource) Put(ctx context.Context) (*Response, error) {
	_, resp, err := r.fetch(ctx, http.MethodPut, nil)
	return resp, err
}

// Delete sends a DELETE.
func (r *Resource) Delete(ctx context.Context) (*Response, error) {
	_, resp, err := r.fetch(ctx, http.MethodDelete, nil)
	return resp, err
}

func objects(doc *collection.Document) []collection.Object {
	if doc == nil {
		return []collection.Object{}
	}

	return doc.Objects()
}
