package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/mux"
	"github.com/vitalvas/forthecity/collection"
)

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/opportunities", s.listTable(func(st *store) *table { return st.opportunities })).Methods(http.MethodGet)
	api.HandleFunc("/opportunities/featured", s.listFeatured("1")).Methods(http.MethodGet)
	api.HandleFunc("/opportunities/{id:[0-9]+}", s.getRecord("Opportunity", func(st *store) *table { return st.opportunities })).Methods(http.MethodGet)
	api.HandleFunc("/opportunities/{id:[0-9]+}/signup", s.signupTemplate).Methods(http.MethodGet)
	api.HandleFunc("/opportunities/{id:[0-9]+}/signup", s.signupSubmit).Methods(http.MethodPost)

	api.HandleFunc("/organizations", s.listTable(func(st *store) *table { return st.organizations })).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id:[0-9]+}", s.getRecord("Organization", func(st *store) *table { return st.organizations })).Methods(http.MethodGet)

	api.HandleFunc("/search", s.search).Methods(http.MethodGet)

	users := api.PathPrefix("/admin/users").Subrouter()
	users.HandleFunc("", s.listTable(func(st *store) *table { return st.users })).Methods(http.MethodGet)
	users.HandleFunc("", s.createUser).Methods(http.MethodPost)
	users.HandleFunc("/{id:[0-9]+}", s.getRecord("User", func(st *store) *table { return st.users })).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}", s.updateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id:[0-9]+}/keys", s.createKey).Methods(http.MethodPost)
	users.HandleFunc("/{id:[0-9]+}/keys/{key:[0-9]+}", s.updateKey).Methods(http.MethodPut)
	users.HandleFunc("/{id:[0-9]+}/opportunities/featured", s.userFeatured).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}/opportunities/featured/{opportunity:[0-9]+}", s.feature).Methods(http.MethodPut, http.MethodDelete)
	users.HandleFunc("/{id:[0-9]+}/organizations", s.userOrganizations("memberships")).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}/organizations/blacklist", s.userOrganizations("blacklist")).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}/organizations/{organization:[0-9]+}", s.membership).Methods(http.MethodPut, http.MethodDelete)
	users.HandleFunc("/{id:[0-9]+}/signups", s.userSignups).Methods(http.MethodGet)
}

func (s *Server) href(r *http.Request) string {
	return s.URL + r.URL.Path
}

func (s *Server) writeItems(w http.ResponseWriter, r *http.Request, status int, base string, records []record) {
	items := make([]collection.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.item(base))
	}

	WriteDocument(w, status, collection.Document{Collection: collection.Collection{
		Href:  s.href(r),
		Items: items,
		Links: []collection.Link{{Rel: "self", Href: s.href(r)}},
	}})
}

func (s *Server) listTable(pick func(*store) *table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.mu.Lock()
		records := slices.Clone(pick(s.store).records)
		s.store.mu.Unlock()

		s.writeItems(w, r, http.StatusOK, s.href(r), records)
	}
}

func (s *Server) getRecord(kind string, pick func(*store) *table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		s.store.mu.Lock()
		rec, ok := pick(s.store).get(id)
		s.store.mu.Unlock()

		if !ok {
			WriteError(w, http.StatusNotFound, "Not found", kind+" not found")
			return
		}

		base := strings.TrimSuffix(s.href(r), "/"+id)
		s.writeItems(w, r, http.StatusOK, base, []record{rec})
	}
}

func (s *Server) records(t *table, ids []string) []record {
	out := make([]record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := t.get(id); ok {
			out = append(out, rec)
		}
	}

	return out
}

func (s *Server) listFeatured(user string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.mu.Lock()
		records := s.records(s.store.opportunities, s.store.featured[user])
		s.store.mu.Unlock()

		s.writeItems(w, r, http.StatusOK, s.URL+"/api/opportunities", records)
	}
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := make(map[string][]string)
	for key, values := range q {
		if name, ok := strings.CutSuffix(key, "[]"); ok {
			filters[name] = values
		}
	}

	s.store.mu.Lock()
	var records []record
	if len(q) > 0 {
		for _, rec := range s.store.opportunities.records {
			if rec.matches(q.Get("q"), filters) {
				records = append(records, rec)
			}
		}
	}
	s.store.mu.Unlock()

	s.writeItems(w, r, http.StatusOK, s.URL+"/api/opportunities", records)
}

var signupFields = []collection.Data{
	collection.Empty("givenName", "Given name"),
	collection.Empty("familyName", "Family name"),
	collection.Empty("telephone", "Telephone"),
	collection.Empty("email", "Email"),
	collection.Empty("comment", "Comment"),
	collection.Value("numOfItemsCommitted", 1),
	collection.Empty("lead", "How did you hear about us?"),
}

func (s *Server) signupTemplate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.opportunity(w, r); !ok {
		return
	}

	WriteDocument(w, http.StatusOK, collection.Document{Collection: collection.Collection{
		Href:     s.href(r),
		Template: collection.NewTemplate(slices.Clone(signupFields)...),
	}})
}

// signupSubmit accepts a signup. Opportunities outside Austin need the
// city to be named explicitly.
func (s *Server) signupSubmit(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.opportunity(w, r)
	if !ok {
		return
	}

	city, _ := rec.field("franchiseCity")
	if city != "Austin" && r.URL.Query().Get("city") != city {
		WriteError(w, http.StatusNotFound, "Not found", "Opportunity not found")
		return
	}

	tmpl, ok := readTemplate(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	signups, exists := s.store.signups["1"]
	if !exists {
		signups = &table{}
		s.store.signups["1"] = signups
	}
	signups.insert(append([]collection.Data{collection.Value("opportunityId", rec.id)}, tmpl.Data...))
	s.store.mu.Unlock()

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) opportunity(w http.ResponseWriter, r *http.Request) (record, bool) {
	s.store.mu.Lock()
	rec, ok := s.store.opportunities.get(mux.Vars(r)["id"])
	s.store.mu.Unlock()

	if !ok {
		WriteError(w, http.StatusNotFound, "Not found", "Opportunity not found")
	}

	return rec, ok
}

func readTemplate(w http.ResponseWriter, r *http.Request) (*collection.Template, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Bad request", err.Error())
		return nil, false
	}

	var envelope struct {
		Template *collection.Template `json:"template"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Template == nil {
		WriteError(w, http.StatusBadRequest, "Bad request", "template required")
		return nil, false
	}

	return envelope.Template, true
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := readTemplate(w, r)
	if !ok {
		return
	}

	if _, ok := tmpl.Get("email"); !ok {
		WriteError(w, http.StatusBadRequest, "Bad request", "email required")
		return
	}

	s.store.mu.Lock()
	rec := s.store.users.insert(tmpl.Data)
	s.store.mu.Unlock()

	s.writeItems(w, r, http.StatusCreated, s.href(r), []record{rec})
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := readTemplate(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]

	s.store.mu.Lock()
	rec, ok := s.store.users.update(id, tmpl.Data)
	s.store.mu.Unlock()

	if !ok {
		WriteError(w, http.StatusNotFound, "Not found", "User not found")
		return
	}

	s.writeItems(w, r, http.StatusOK, strings.TrimSuffix(s.href(r), "/"+id), []record{rec})
}

func (s *Server) userKeys(id string) *table {
	t, ok := s.store.keys[id]
	if !ok {
		t = &table{}
		s.store.keys[id] = t
	}

	return t
}

func (s *Server) createKey(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := readTemplate(w, r)
	if !ok {
		return
	}

	s.store.mu.Lock()
	rec := s.userKeys(mux.Vars(r)["id"]).insert(tmpl.Data)
	s.store.mu.Unlock()

	s.writeItems(w, r, http.StatusCreated, s.href(r), []record{rec})
}

func (s *Server) updateKey(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := readTemplate(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)

	s.store.mu.Lock()
	rec, ok := s.userKeys(vars["id"]).update(vars["key"], tmpl.Data)
	s.store.mu.Unlock()

	if !ok {
		WriteError(w, http.StatusNotFound, "Not found", "Key not found")
		return
	}

	s.writeItems(w, r, http.StatusOK, strings.TrimSuffix(s.href(r), "/"+vars["key"]), []record{rec})
}

func (s *Server) userFeatured(w http.ResponseWriter, r *http.Request) {
	s.listFeatured(mux.Vars(r)["id"])(w, r)
}

func (s *Server) feature(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, opp := vars["id"], vars["opportunity"]

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.opportunities.get(opp); !ok {
		WriteError(w, http.StatusNotFound, "Not found", "Opportunity not found")
		return
	}

	featured := s.store.featured[user]
	if r.Method == http.MethodPut {
		if !slices.Contains(featured, opp) {
			featured = append(featured, opp)
		}
	} else {
		featured = slices.DeleteFunc(featured, func(id string) bool { return id == opp })
	}
	s.store.featured[user] = featured

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) userOrganizations(list string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := mux.Vars(r)["id"]

		s.store.mu.Lock()
		ids := s.store.memberships[user]
		if list == "blacklist" {
			ids = s.store.blacklist[user]
		}
		records := s.records(s.store.organizations, ids)
		s.store.mu.Unlock()

		s.writeItems(w, r, http.StatusOK, s.URL+"/api/organizations", records)
	}
}

func (s *Server) membership(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user, org := vars["id"], vars["organization"]

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.organizations.get(org); !ok {
		WriteError(w, http.StatusNotFound, "Not found", "Organization not found")
		return
	}

	members := s.store.memberships[user]
	if r.Method == http.MethodPut {
		if !slices.Contains(members, org) {
			members = append(members, org)
		}
	} else {
		members = slices.DeleteFunc(members, func(id string) bool { return id == org })
	}
	s.store.memberships[user] = members

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) userSignups(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	var records []record
	if t, ok := s.store.signups[mux.Vars(r)["id"]]; ok {
		records = slices.Clone(t.records)
	}
	s.store.mu.Unlock()

	s.writeItems(w, r, http.StatusOK, s.href(r), records)
}
