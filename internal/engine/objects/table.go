package objects

import (
	"fmt"

	"github.com/google/uuid"
)

// Table is (table_id, name, attributes). Ordering of Attributes
// defines column position and serialization order.
type Table struct {
	ID         uuid.UUID
	Name       string
	Attributes []Attribute
}

// NewTable validates that attribute names are unique within the table
// before returning it.
func NewTable(id uuid.UUID, name string, attrs []Attribute) (*Table, error) {
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if _, dup := seen[a.Name]; dup {
			return nil, TableError{Reason: fmt.Sprintf("duplicate attribute name %q in table %q", a.Name, name)}
		}
		seen[a.Name] = struct{}{}
	}
	return &Table{ID: id, Name: name, Attributes: attrs}, nil
}

// IndexOf returns the column position of the named attribute, or -1.
func (t *Table) IndexOf(name string) int {
	for i, a := range t.Attributes {
		if a.Name == name {
			return i
		}
	}
	return -1
}

type TableError struct {
	Reason string
}

func (e TableError) Error() string {
	return "table error: " + e.Reason
}
