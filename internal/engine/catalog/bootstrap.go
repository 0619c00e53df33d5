// Package catalog hard-codes the pg_class/pg_attribute bootstrap
// tables and resolves a table name to its full definition by reading
// those tables back through the visibility layer.
package catalog

import (
	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/objects"
)

func columnsToAttributes(cols []constants.ColumnSpec) []objects.Attribute {
	attrs := make([]objects.Attribute, len(cols))
	for i, c := range cols {
		attrs[i] = objects.NewAttribute(c.ID, c.Name, c.Type, c.Nullable)
	}
	return attrs
}

// PgClassTable returns the hard-coded (table_id, name) definition of
// pg_class. It is never itself described by a row in pg_attribute.
func PgClassTable() *objects.Table {
	t, err := objects.NewTable(constants.PgClassTableID, "pg_class", columnsToAttributes(constants.PgClassColumns))
	if err != nil {
		// PgClassColumns is a fixed constant with unique names; this
		// can never fail.
		panic(err)
	}
	return t
}

// PgAttributeTable returns the hard-coded pg_attribute definition.
func PgAttributeTable() *objects.Table {
	t, err := objects.NewTable(constants.PgAttrTableID, "pg_attribute", columnsToAttributes(constants.PgAttributeColumns))
	if err != nil {
		panic(err)
	}
	return t
}
