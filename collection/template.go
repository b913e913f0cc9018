package collection

import "encoding/json"

// Template lists the fields a client fills in to create or update a
// resource.
type Template struct {
	Data []Data `json:"data"`
}

// NewTemplate returns a template with the given fields.
func NewTemplate(data ...Data) *Template {
	if data == nil {
		data = []Data{}
	}

	return &Template{Data: data}
}

// Get returns the field with the given name.
func (t *Template) Get(name string) (Data, bool) {
	for _, d := range t.Data {
		if d.Name == name {
			return d, true
		}
	}

	return Data{}, false
}

// Set replaces the field with the same name, keeping its prompt when the
// new field has none, or appends it.
func (t *Template) Set(d Data) *Template {
	for i := range t.Data {
		if t.Data[i].Name == d.Name {
			if d.Prompt == "" {
				d.Prompt = t.Data[i].Prompt
			}

			t.Data[i] = d

			return t
		}
	}

	t.Data = append(t.Data, d)

	return t
}

// Clone returns a deep copy of the template.
func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}

	out := &Template{Data: make([]Data, len(t.Data))}
	for i, d := range t.Data {
		out.Data[i] = d.clone()
	}

	return out
}

// Body returns the write request body {"template": {...}}.
func (t *Template) Body() ([]byte, error) {
	tmpl := NewTemplate()
	if t != nil {
		tmpl.Data = append(tmpl.Data, t.Data...)
	}

	return json.Marshal(struct {
		Template *Template `json:"template"`
	}{tmpl})
}

func (d Data) clone() Data {
	out := d
	out.value = deepCopy(d.value)

	if d.array != nil {
		out.array, _ = deepCopy(d.array).([]any)
	}

	if d.object != nil {
		out.object, _ = deepCopy(d.object).(map[string]any)
	}

	return out
}
