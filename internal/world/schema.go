package world

import "github.com/fluxcore/engine/internal/urn"

// Schema describes the immutable template for an item kind: mass, base
// cost, and other catalog facts items reference by pointer rather than
// copying.
type Schema struct {
	URN  urn.SchemaURN
	Name string
	Mass float64
	Cost map[string]int64
}

// SchemaManager is the read-only catalog of registered schemas, exposed to
// reducers through the transformer context.
type SchemaManager struct {
	schemas map[urn.SchemaURN]*Schema
}

// NewSchemaManager constructs an empty schema registry.
func NewSchemaManager() *SchemaManager {
	return &SchemaManager{schemas: make(map[urn.SchemaURN]*Schema)}
}

// Register adds or replaces a schema definition.
func (m *SchemaManager) Register(s *Schema) {
	m.schemas[s.URN] = s
}

// Get looks up a schema by URN.
func (m *SchemaManager) Get(u urn.SchemaURN) (*Schema, bool) {
	s, ok := m.schemas[u]
	return s, ok
}
