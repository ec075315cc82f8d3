package model

import (
	"sort"
	"sync"

	"github.com/zclconf/go-cty/cty"
)

// FieldType identifies the value type of a dataset field. Identity is the
// type id; the wire type tells downstream generators which cty type a cell
// of this field decodes to.
type FieldType struct {
	id   string
	wire cty.Type
}

// ID returns the stable identifier of the type, e.g. "text" or "int".
func (t FieldType) ID() string { return t.id }

// WireType returns the cty type a value of this field type decodes to.
func (t FieldType) WireType() cty.Type { return t.wire }

// Equal reports whether two field types share the same id.
func (t FieldType) Equal(other FieldType) bool { return t.id == other.id }

// TypeRegistry is the open catalog of field types. The dialect allows
// consumers to extend the built-in set, so types are registry values rather
// than a closed enumeration.
//
// Registration and lookup are safe for concurrent use; the usual pattern is
// to finish all Register calls before handing the registry to parsers.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]FieldType
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]FieldType)}
}

// DefaultTypes returns a registry seeded with the built-in field types.
func DefaultTypes() *TypeRegistry {
	r := NewTypeRegistry()
	r.Register("none", cty.DynamicPseudoType)
	r.Register("date", cty.String)
	r.Register("email", cty.String)
	r.Register("text", cty.String)
	r.Register("textbox", cty.String)
	r.Register("url", cty.String)
	r.Register("int", cty.Number)
	r.Register("float", cty.Number)
	return r
}

// Register adds a field type under the given id and returns it. Registering
// an id twice is idempotent: the later wire type wins.
func (r *TypeRegistry) Register(id string, wire cty.Type) FieldType {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := FieldType{id: id, wire: wire}
	r.types[id] = t
	return t
}

// Lookup returns the type registered under id.
func (r *TypeRegistry) Lookup(id string) (FieldType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[id]
	return t, ok
}

// Exists reports whether a type is registered under id.
func (r *TypeRegistry) Exists(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

// All returns every registered type, sorted by id.
func (r *TypeRegistry) All() []FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]FieldType, 0, len(r.types))
	for _, t := range r.types {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}
