package schema

// FieldType tags a column with its declared scalar category. Coercion dispatches
// on this tag instead of inspecting database type strings at request time.
type FieldType int

const (
	Text FieldType = iota
	Float
	Integer
	Boolean
	DateTime
)

// Column describes one scalar column of an entity.
type Column struct {
	Name     string
	Type     FieldType
	Nullable bool
}

// Descriptor describes one entity kind: the plural name used for routes, tables
// and templates, the singular name used as template context key, the scalar
// columns, and the relationship field names that must never reach a flat write.
type Descriptor struct {
	Name      string
	Singular  string
	Columns   []Column
	Relations []string
}

// Column returns the named column and whether it exists.
func (d Descriptor) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
