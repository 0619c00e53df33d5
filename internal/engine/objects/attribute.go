// Package objects holds the schema-level types the rest of the engine
// binds against: Attribute, Table, and the parse/query tree shapes the
// analyzer and executor pass between each other.
package objects

import (
	"fmt"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/google/uuid"
)

// Attribute is one column definition. It is immutable after
// construction; rows hold a reference to their table's attribute
// slice rather than copying it.
type Attribute struct {
	ID       uuid.UUID
	Name     string
	SQLType  constants.SqlType
	Nullable constants.Nullable
}

func NewAttribute(id uuid.UUID, name string, sqlType constants.SqlType, nullable constants.Nullable) Attribute {
	return Attribute{ID: id, Name: name, SQLType: sqlType, Nullable: nullable}
}

func (a Attribute) String() string {
	return fmt.Sprintf("%s %s (%s)", a.Name, a.SQLType, a.Nullable)
}
