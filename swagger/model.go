// Package swagger defines the Swagger 1.x documentation entities produced by
// the extractors.
//
// Values are built once per extraction call and are not modified after they
// are returned. JSON field names follow the Swagger 1.x resource declaration
// and resource listing documents.
package swagger

// Property is one property of a Model.
//
// A property is either typed (Type, Description and optionally ContainerOf)
// or an enumeration (Enum). The two forms are mutually exclusive.
type Property struct {
	// Name is the property key within its model.
	Name string

	// Type is the canonical type name, e.g. "string" or "List[User]".
	Type string

	Description string

	// ContainerOf names the element type(s) of a parameterized container,
	// joined with ", ". Empty for non-containers.
	ContainerOf string

	// Enum lists enumeration constants in declaration order.
	Enum []string
}

// IsEnum reports whether p is an enumeration property.
func (p Property) IsEnum() bool { return p.Enum != nil }

// Model is a named set of properties in insertion order.
type Model struct {
	// ID is the canonical type name of the modeled type.
	ID string

	properties []Property
	index      map[string]int
}

// NewModel returns an empty model.
func NewModel(id string) *Model {
	return &Model{ID: id, index: make(map[string]int)}
}

// Add appends p. It returns false and leaves the model unchanged if a
// property with the same name already exists.
func (m *Model) Add(p Property) bool {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, dup := m.index[p.Name]; dup {
		return false
	}
	m.index[p.Name] = len(m.properties)
	m.properties = append(m.properties, p)
	return true
}

// Has reports whether a property called name exists.
func (m *Model) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Property returns the property called name.
func (m *Model) Property(name string) (Property, bool) {
	i, ok := m.index[name]
	if !ok {
		return Property{}, false
	}
	return m.properties[i], true
}

// Properties returns the properties in insertion order.
func (m *Model) Properties() []Property { return m.properties }

// Len returns the number of properties.
func (m *Model) Len() int { return len(m.properties) }

// ModelSet is an insertion-ordered set of models keyed by ID.
// The zero value is ready to use.
type ModelSet struct {
	models []*Model
	index  map[string]int
}

// Add appends m. It returns false if a model with the same ID is present.
func (s *ModelSet) Add(m *Model) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, dup := s.index[m.ID]; dup {
		return false
	}
	s.index[m.ID] = len(s.models)
	s.models = append(s.models, m)
	return true
}

// Has reports whether a model with the given ID is present.
func (s *ModelSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Get returns the model with the given ID, or nil.
func (s *ModelSet) Get(id string) *Model {
	if s == nil {
		return nil
	}
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	return s.models[i]
}

// Models returns the models in insertion order.
func (s *ModelSet) Models() []*Model {
	if s == nil {
		return nil
	}
	return s.models
}

// Len returns the number of models.
func (s *ModelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.models)
}

// Merge adds every model of other not already present, keeping other's order.
func (s *ModelSet) Merge(other *ModelSet) {
	for _, m := range other.Models() {
		s.Add(m)
	}
}

// IDs returns the model IDs in insertion order.
func (s *ModelSet) IDs() []string {
	ids := make([]string, 0, s.Len())
	for _, m := range s.Models() {
		ids = append(ids, m.ID)
	}
	return ids
}
