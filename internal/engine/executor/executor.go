// Package executor runs bound statements: CREATE TABLE against the
// catalog tables directly, and INSERT/SELECT query trees against the
// row manager.
package executor

import (
	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/catalog"
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
	"github.com/chotchki/elephantcore/internal/engine/storageio"
	"github.com/chotchki/elephantcore/internal/engine/txn"
	"github.com/google/uuid"
)

// Executor runs DDL directly against the hard-coded catalog tables
// and DML through the row manager / visibility layer.
type Executor struct {
	rows    *storageio.RowManager
	visible *storageio.VisibleRowManager
}

func NewExecutor(rows *storageio.RowManager, visible *storageio.VisibleRowManager) *Executor {
	return &Executor{rows: rows, visible: visible}
}

// ExecuteUtility runs a CREATE TABLE statement: it allocates a fresh
// table id, inserts one row into pg_class, then one row per declared
// column into pg_attribute, all under xid. Any row-manager error
// aborts the statement — the caller is expected to discard xid.
func (e *Executor) ExecuteUtility(xid txn.TransactionId, cmd objects.CreateTableCommand) (uuid.UUID, error) {
	tableID := uuid.New()
	pgClass := catalog.PgClassTable()
	pgAttribute := catalog.PgAttributeTable()

	_, err := e.rows.InsertRow(xid, pgClass, []constants.Value{
		constants.UUIDValue(tableID),
		constants.TextValue(cmd.TableName),
	})
	if err != nil {
		return uuid.Nil, err
	}

	for position, col := range cmd.Columns {
		if _, err := constants.ParseSqlType(col.SQLTypeName); err != nil {
			return uuid.Nil, err
		}
		_, err := e.rows.InsertRow(xid, pgAttribute, []constants.Value{
			constants.UUIDValue(tableID),
			constants.TextValue(col.Name),
			constants.TextValue(col.SQLTypeName),
			constants.IntegerValue(uint32(position)),
			constants.BoolValue(col.Nullable),
		})
		if err != nil {
			return uuid.Nil, err
		}
	}

	return tableID, nil
}

// ExecutePlan runs a bound QueryTree. Insert calls the row manager
// once with the bound value tuple. Select streams rows through the
// visibility layer, applying the optional filter and projecting the
// requested columns.
func (e *Executor) ExecutePlan(xid txn.TransactionId, qt objects.QueryTree) (*Result, error) {
	switch qt.CommandType {
	case objects.CommandInsert:
		return e.executeInsert(xid, qt)
	case objects.CommandSelect:
		return e.executeSelect(qt)
	default:
		return nil, NotImplementedError{}
	}
}

func (e *Executor) executeInsert(xid txn.TransactionId, qt objects.QueryTree) (*Result, error) {
	if len(qt.RangeTables) != 1 {
		return nil, ExecutorError{"insert requires exactly one range relation"}
	}
	anon, ok := qt.RangeTables[0].(objects.AnonymousTable)
	if !ok {
		return nil, ExecutorError{"insert range relation is not an anonymous tuple"}
	}

	ptr, err := e.rows.InsertRow(xid, anon.Table, anon.Values)
	if err != nil {
		return nil, err
	}
	return &Result{InsertedAt: &ptr}, nil
}

func (e *Executor) executeSelect(qt objects.QueryTree) (*Result, error) {
	if len(qt.RangeTables) != 1 {
		return nil, ExecutorError{"select requires exactly one range relation"}
	}
	rel, ok := qt.RangeTables[0].(objects.RangeRelationTable)
	if !ok {
		return nil, ExecutorError{"select range relation is not a table scan"}
	}
	table := rel.Table

	result := &Result{Columns: make([]string, len(qt.Targets))}
	for i, t := range qt.Targets {
		result.Columns[i] = t.Attribute.Name
	}

	err := e.visible.Stream(table, func(_ pageformats.ItemPointer, row *rowformats.RowData) error {
		if qt.Filter != nil {
			idx := table.IndexOf(qt.Filter.Attribute.Name)
			if idx < 0 || row.Values[idx] == nil {
				return nil
			}
			if row.Values[idx].String() != qt.Filter.Value.String() {
				return nil
			}
		}
		projected := make([]constants.Value, len(qt.Targets))
		for i, t := range qt.Targets {
			idx := table.IndexOf(t.Attribute.Name)
			projected[i] = row.Values[idx]
		}
		result.Rows = append(result.Rows, projected)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Result is the executor's output for a DML statement: a Select's
// column names and projected rows, or an Insert's pointer to the new
// row.
type Result struct {
	Columns    []string
	Rows       [][]constants.Value
	InsertedAt *pageformats.ItemPointer
}

type NotImplementedError struct{}

func (e NotImplementedError) Error() string { return "executor: not implemented" }

type ExecutorError struct {
	Reason string
}

func (e ExecutorError) Error() string { return "executor error: " + e.Reason }
