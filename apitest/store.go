package apitest

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/vitalvas/forthecity/collection"
)

// record is a stored resource: its id and ordered data fields.
type record struct {
	id   string
	data []collection.Data
}

func (r record) field(name string) (any, bool) {
	for _, d := range r.data {
		if d.Name == name {
			return d.Resolve()
		}
	}

	return nil, false
}

func (r record) item(base string) collection.Item {
	data := append([]collection.Data{collection.Value("id", r.id)}, r.data...)
	return collection.Item{Href: base + "/" + r.id, Data: data}
}

// table is an ordered set of records.
type table struct {
	records []record
	nextID  int
}

func (t *table) get(id string) (record, bool) {
	for _, r := range t.records {
		if r.id == id {
			return r, true
		}
	}

	return record{}, false
}

func (t *table) insert(data []collection.Data) record {
	t.nextID++
	r := record{id: strconv.Itoa(t.nextID), data: data}
	t.records = append(t.records, r)

	return r
}

func (t *table) update(id string, data []collection.Data) (record, bool) {
	for i, r := range t.records {
		if r.id != id {
			continue
		}

		for _, d := range data {
			r.data = setField(r.data, d)
		}
		t.records[i] = r

		return r, true
	}

	return record{}, false
}

func setField(data []collection.Data, d collection.Data) []collection.Data {
	for i := range data {
		if data[i].Name == d.Name {
			data[i] = d
			return data
		}
	}

	return append(data, d)
}

// store holds the fixtures the server serves.
type store struct {
	mu sync.Mutex

	opportunities *table
	organizations *table
	users         *table
	keys          map[string]*table
	signups       map[string]*table
	featured      map[string][]string
	memberships   map[string][]string
	blacklist     map[string][]string
}

func newStore() *store {
	s := &store{
		opportunities: &table{},
		organizations: &table{},
		users:         &table{},
		keys:          make(map[string]*table),
		signups:       make(map[string]*table),
		featured:      make(map[string][]string),
		memberships:   make(map[string][]string),
		blacklist:     make(map[string][]string),
	}

	s.opportunities.insert([]collection.Data{
		collection.Value("title", "Foster care mentoring"),
		collection.Value("organizationId", "2"),
		collection.Value("franchiseCity", "Austin"),
		collection.Array("issues", "Education", "Children/Youth"),
		collection.Array("region", "South"),
	})
	s.opportunities.insert([]collection.Data{
		collection.Value("title", "Food pantry"),
		collection.Value("organizationId", "3"),
		collection.Value("franchiseCity", "Waco"),
		collection.Array("issues", "Hunger"),
		collection.Array("region", "Central"),
	})
	s.opportunities.insert([]collection.Data{
		collection.Value("title", "Foster care supply drive"),
		collection.Value("organizationId", "2"),
		collection.Value("franchiseCity", "Austin"),
		collection.Array("issues", "Children/Youth"),
		collection.Array("region", "Central"),
	})

	// Organization 1 is not public; listings start at 2.
	s.organizations.nextID = 1
	s.organizations.insert([]collection.Data{
		collection.Value("name", "Austin Foster Families"),
		collection.ObjectValue("address", map[string]any{"addressLocality": "Austin", "addressRegion": "Texas"}),
	})
	s.organizations.insert([]collection.Data{
		collection.Value("name", "Waco Food Bank"),
		collection.ObjectValue("address", map[string]any{"addressLocality": "Waco", "addressRegion": "Texas"}),
	})

	s.users.insert([]collection.Data{
		collection.Value("email", "seeded_user@example.com"),
		collection.Value("givenName", "Seeded"),
		collection.Value("familyName", "User"),
		collection.Value("church", "Community Church"),
	})
	s.users.insert([]collection.Data{
		collection.Value("email", "second@example.com"),
		collection.Value("givenName", "Second"),
		collection.Value("familyName", "User"),
	})

	s.memberships["1"] = []string{"2"}
	s.blacklist["1"] = []string{"3"}

	return s
}

// matches reports whether an opportunity satisfies a search.
func (r record) matches(q string, filters map[string][]string) bool {
	if q != "" {
		title, _ := r.field("title")
		s, _ := title.(string)

		if !strings.Contains(strings.ToLower(s), strings.ToLower(q)) {
			return false
		}
	}

	for name, wanted := range filters {
		v, _ := r.field(name)
		have, _ := v.([]any)

		if !anyOf(have, wanted) {
			return false
		}
	}

	return true
}

func anyOf(have []any, wanted []string) bool {
	for _, h := range have {
		if s, ok := h.(string); ok && slices.Contains(wanted, s) {
			return true
		}
	}

	return false
}
