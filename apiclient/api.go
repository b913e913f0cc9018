package apiclient

import (
	"context"

	"github.com/vitalvas/forthecity/collection"
	"github.com/vitalvas/forthecity/query"
)

// Opportunities is the volunteer opportunity resource.
type Opportunities struct {
	r *Resource
}

// Opportunities returns the /api/opportunities resource.
func (c *Client) Opportunities() *Opportunities {
	return &Opportunities{r: c.Resource("opportunities")}
}

// Get returns the opportunity with the given id.
func (o *Opportunities) Get(ctx context.Context, id string) (collection.Object, *Response, error) {
	return o.r.Child(id).Get(ctx)
}

// List returns all opportunities.
func (o *Opportunities) List(ctx context.Context) ([]collection.Object, *Response, error) {
	return o.r.List(ctx)
}

// Featured lists the opportunities featured for the calling user.
func (o *Opportunities) Featured(ctx context.Context) ([]collection.Object, *Response, error) {
	return o.r.Child("featured").List(ctx)
}

// Organizations is the organization resource.
type Organizations struct {
	r *Resource
}

// Organizations returns the /api/organizations resource.
func (c *Client) Organizations() *Organizations {
	return &Organizations{r: c.Resource("organizations")}
}

// Get returns the organization with the given id.
func (o *Organizations) Get(ctx context.Context, id string) (collection.Object, *Response, error) {
	return o.r.Child(id).Get(ctx)
}

// List returns all organizations.
func (o *Organizations) List(ctx context.Context) ([]collection.Object, *Response, error) {
	return o.r.List(ctx)
}

// Search lists the opportunities matching q. Array parameters are sent
// as key[]=value pairs.
func (c *Client) Search(ctx context.Context, q *query.Values) ([]collection.Object, *Response, error) {
	return c.Resource("search").With(q).List(ctx)
}

// Signup signs volunteers up for opportunities.
type Signup struct {
	c *Client
}

// Signup returns the signup operations.
func (c *Client) Signup() *Signup {
	return &Signup{c: c}
}

func (s *Signup) resource(opportunity string) *Resource {
	return s.c.Resource("opportunities", opportunity, "signup")
}

// Template returns the signup template of an opportunity.
func (s *Signup) Template(ctx context.Context, opportunity string) (*collection.Template, *Response, error) {
	return s.resource(opportunity).Template(ctx)
}

// Submit posts a filled signup template. Opportunities outside the
// default city are addressed by naming their city.
func (s *Signup) Submit(ctx context.Context, opportunity string, tmpl *collection.Template, city string) (*Response, error) {
	r := s.resource(opportunity)
	if city != "" {
		r = r.With(query.New().Set("city", city))
	}

	_, resp, err := r.Create(ctx, tmpl)

	return resp, err
}

// Admin groups the administrative resources.
type Admin struct {
	c *Client
}

// Admin returns the administrative resources.
func (c *Client) Admin() *Admin {
	return &Admin{c: c}
}

// Users returns the /api/admin/users resource.
func (a *Admin) Users() *Users {
	return &Users{r: a.c.Resource("admin", "users")}
}

// Users manages user accounts.
type Users struct {
	r *Resource
}

// Get returns the user with the given id.
func (u *Users) Get(ctx context.Context, id string) (collection.Object, *Response, error) {
	return u.r.Child(id).Get(ctx)
}

// List returns all users.
func (u *Users) List(ctx context.Context) ([]collection.Object, *Response, error) {
	return u.r.List(ctx)
}

// Create creates a user from tmpl and returns it.
func (u *Users) Create(ctx context.Context, tmpl *collection.Template) ([]collection.Object, *Response, error) {
	return u.r.Create(ctx, tmpl)
}

// Update replaces the fields of user id named in tmpl.
func (u *Users) Update(ctx context.Context, id string, tmpl *collection.Template) ([]collection.Object, *Response, error) {
	return u.r.Child(id).Update(ctx, tmpl)
}

// Keys returns the API keys of user.
func (u *Users) Keys(user string) *Keys {
	return &Keys{r: u.r.Child(user, "keys")}
}

// Opportunities returns the opportunities featured for user.
func (u *Users) Opportunities(user string) *FeaturedOpportunities {
	return &FeaturedOpportunities{r: u.r.Child(user, "opportunities", "featured")}
}

// Organizations returns the organization memberships of user.
func (u *Users) Organizations(user string) *Memberships {
	return &Memberships{r: u.r.Child(user, "organizations")}
}

// Signups returns the signups of user.
func (u *Users) Signups(user string) *Signups {
	return &Signups{r: u.r.Child(user, "signups")}
}

// Keys manages the API keys of a user.
type Keys struct {
	r *Resource
}

// Create creates a key from tmpl and returns it.
func (k *Keys) Create(ctx context.Context, tmpl *collection.Template) ([]collection.Object, *Response, error) {
	return k.r.Create(ctx, tmpl)
}

// Update replaces the fields of key named in tmpl.
func (k *Keys) Update(ctx context.Context, key string, tmpl *collection.Template) ([]collection.Object, *Response, error) {
	return k.r.Child(key).Update(ctx, tmpl)
}

// FeaturedOpportunities manages the opportunities featured for a user.
type FeaturedOpportunities struct {
	r *Resource
}

// List returns the featured opportunities.
func (f *FeaturedOpportunities) List(ctx context.Context) ([]collection.Object, *Response, error) {
	return f.r.List(ctx)
}

// Feature adds an opportunity to the featured list.
func (f *FeaturedOpportunities) Feature(ctx context.Context, opportunity string) (*Response, error) {
	return f.r.Child(opportunity).Put(ctx)
}

// Unfeature removes an opportunity from the featured list.
func (f *FeaturedOpportunities) Unfeature(ctx context.Context, opportunity string) (*Response, error) {
	return f.r.Child(opportunity).Delete(ctx)
}

// Memberships manages the organizations of a user.
type Memberships struct {
	r *Resource
}

// List returns the organizations the user belongs to.
func (m *Memberships) List(ctx context.Context) ([]collection.Object, *Response, error) {
	return m.r.List(ctx)
}

// Blacklist lists the organizations the user is barred from.
func (m *Memberships) Blacklist(ctx context.Context) ([]collection.Object, *Response, error) {
	return m.r.Child("blacklist").List(ctx)
}

// Add makes the user a member of organization.
func (m *Memberships) Add(ctx context.Context, organization string) (*Response, error) {
	return m.r.Child(organization).Put(ctx)
}

// Remove ends the membership of the user in organization.
func (m *Memberships) Remove(ctx context.Context, organization string) (*Response, error) {
	return m.r.Child(organization).Delete(ctx)
}

// Signups lists the signups of a user.
type Signups struct {
	r *Resource
}

// List returns the signups of the user.
func (s *Signups) List(ctx context.Context) ([]collection.Object, *Response, error) {
	return s.r.List(ctx)
}
