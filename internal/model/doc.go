// Package model holds the validated-by-construction entities of a metadata
// block definition: the Block itself, its Fields, and the open FieldType
// registry.
//
// Entities are built through builders that reject invalid values at the
// setter, so no partially valid entity ever escapes to downstream consumers.
// Once built, Block and Field are immutable; the only exception is the
// parent/child linking of fields, which the tsv package performs exactly
// once during hierarchy resolution.
package model
