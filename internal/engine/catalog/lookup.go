package catalog

import (
	"fmt"
	"sort"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
	"github.com/google/uuid"
)

// rowStreamer is the one method the lookup needs. Both
// VisibleRowManager (MVCC-filtered) and RowManager (every stored row,
// unfiltered) satisfy it.
type rowStreamer interface {
	Stream(table *objects.Table, fn func(ptr pageformats.ItemPointer, row *rowformats.RowData) error) error
}

// Lookup resolves table names to full definitions by reading the
// hard-coded pg_class/pg_attribute tables back through its
// rowStreamer; whether those rows are visibility-filtered depends on
// the streamer it was built with.
type Lookup struct {
	rows rowStreamer
}

func NewLookup(rows rowStreamer) *Lookup {
	return &Lookup{rows: rows}
}

type attrRow struct {
	position int32
	attr     objects.Attribute
}

// GetDefinition finds the user table named name and assembles its
// Table from the current contents of pg_class and pg_attribute, as
// seen through the lookup's rowStreamer. The names pg_class and
// pg_attribute resolve to their hard-coded definitions.
func (l *Lookup) GetDefinition(name string) (*objects.Table, error) {
	pgClass := PgClassTable()
	pgAttribute := PgAttributeTable()

	// The bootstrap tables are hard-coded, not rows in pg_class, so
	// they resolve directly.
	switch name {
	case pgClass.Name:
		return pgClass, nil
	case pgAttribute.Name:
		return pgAttribute, nil
	}

	var tableID uuid.UUID
	found := false
	err := l.rows.Stream(pgClass, func(_ pageformats.ItemPointer, row *rowformats.RowData) error {
		if found {
			return nil
		}
		rowName, ok := row.Values[pgClass.IndexOf("name")].(constants.TextValue)
		if !ok {
			return nil
		}
		if string(rowName) == name {
			id, ok := row.Values[pgClass.IndexOf("table_id")].(constants.UUIDValue)
			if !ok {
				return fmt.Errorf("pg_class row for %q has a non-uuid table_id", name)
			}
			tableID = uuid.UUID(id)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, TableDoesNotExistError{Name: name}
	}

	tableIDIdx := pgAttribute.IndexOf("table_id")
	nameIdx := pgAttribute.IndexOf("column_name")
	typeIdx := pgAttribute.IndexOf("sql_type_name")
	posIdx := pgAttribute.IndexOf("column_position")
	nullIdx := pgAttribute.IndexOf("nullable_flag")

	var attrs []attrRow
	err = l.rows.Stream(pgAttribute, func(_ pageformats.ItemPointer, row *rowformats.RowData) error {
		rowTableID, ok := row.Values[tableIDIdx].(constants.UUIDValue)
		if !ok || uuid.UUID(rowTableID) != tableID {
			return nil
		}
		colName := string(row.Values[nameIdx].(constants.TextValue))
		typeName := string(row.Values[typeIdx].(constants.TextValue))
		sqlType, err := constants.ParseSqlType(typeName)
		if err != nil {
			return err
		}
		position := int32(row.Values[posIdx].(constants.IntegerValue))
		nullable := constants.NullableFromBool(bool(row.Values[nullIdx].(constants.BoolValue)))

		attrs = append(attrs, attrRow{
			position: position,
			attr:     objects.NewAttribute(uuid.New(), colName, sqlType, nullable),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(attrs, func(i, j int) bool { return attrs[i].position < attrs[j].position })
	ordered := make([]objects.Attribute, len(attrs))
	for i, a := range attrs {
		ordered[i] = a.attr
	}

	return objects.NewTable(tableID, name, ordered)
}

type TableDoesNotExistError struct {
	Name string
}

func (e TableDoesNotExistError) Error() string {
	return fmt.Sprintf("table %q does not exist", e.Name)
}
