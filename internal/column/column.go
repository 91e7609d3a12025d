package column

// Meta describes one displayable field of an entity.
type Meta struct {
	Field  string `json:"field"`
	Header string `json:"header"`
}

// Registry holds the canonical, ordered column list of an entity and the
// subset shown by default.
type Registry struct {
	canonical []Meta
	defaults  []Meta
	headers   map[string]string
}

// NewRegistry builds a registry. Default fields that are not part of the
// canonical list are ignored.
func NewRegistry(canonical []Meta, defaults ...string) *Registry {
	r := &Registry{
		canonical: append([]Meta(nil), canonical...),
		headers:   make(map[string]string, len(canonical)),
	}
	for _, c := range canonical {
		r.headers[c.Field] = c.Header
	}
	r.defaults = r.Select(defaults)
	return r
}

func (r *Registry) Canonical() []Meta {
	return append([]Meta(nil), r.canonical...)
}

func (r *Registry) Defaults() []Meta {
	return append([]Meta(nil), r.defaults...)
}

// Header returns the display header of field, or the field name itself when
// the registry does not know it.
func (r *Registry) Header(field string) string {
	if h, ok := r.headers[field]; ok {
		return h
	}
	return field
}

func (r *Registry) Has(field string) bool {
	_, ok := r.headers[field]
	return ok
}

// Select filters the canonical list down to the given fields. The result is
// always in canonical order; selection order, duplicates and unknown fields
// have no effect.
func (r *Registry) Select(fields []string) []Meta {
	want := make(map[string]bool, len(fields))
	for _, f := range fields {
		want[f] = true
	}
	out := make([]Meta, 0, len(fields))
	for _, c := range r.canonical {
		if want[c.Field] {
			out = append(out, c)
		}
	}
	return out
}

// Fields returns the field names of cols, in order.
func Fields(cols []Meta) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Field
	}
	return out
}
