package forecast

import (
	"agriyield/domain/core"
)

// FeatureSchema is the ordered, named list of model input columns, frozen
// the moment training completes. Inference must produce exactly this column
// set, in this order, with no extras.
type FeatureSchema struct {
	Columns []string
	Hash    core.SchemaHash
}

// NewFeatureSchema freezes an ordered column list into a schema
func NewFeatureSchema(columns []string) FeatureSchema {
	frozen := append([]string(nil), columns...)
	return FeatureSchema{
		Columns: frozen,
		Hash:    core.NewSchemaHash(frozen),
	}
}

// Len returns the number of feature columns
func (s FeatureSchema) Len() int {
	return len(s.Columns)
}

// Index returns the position of a column in the schema
func (s FeatureSchema) Index(column string) (int, bool) {
	for i, c := range s.Columns {
		if c == column {
			return i, true
		}
	}
	return -1, false
}

// Equal reports whether two schemas have identical columns in identical order
func (s FeatureSchema) Equal(other FeatureSchema) bool {
	if len(s.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range s.Columns {
		if other.Columns[i] != c {
			return false
		}
	}
	return true
}

// Verify recomputes the hash and checks it against the stored one. A
// mismatch means the schema blob was edited or paired with a foreign bundle.
func (s FeatureSchema) Verify() error {
	if core.NewSchemaHash(s.Columns) != s.Hash {
		return core.NewSchemaMismatchError("schema hash does not match column list")
	}
	return nil
}
