package engine

import (
	"testing"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/executor"
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
	"github.com/chotchki/elephantcore/internal/engine/txn"
	"github.com/chotchki/elephantcore/internal/sqlfront"
	"github.com/stretchr/testify/require"
)

// runDDL parses and executes a CREATE TABLE statement, committing its
// own transaction, and returns the resolved table definition.
func runDDL(t *testing.T, eng *Engine, sql string) *objects.Table {
	t.Helper()
	tree, err := sqlfront.Parse(sql)
	require.NoError(t, err)
	cmd, ok := tree.(objects.CreateTableCommand)
	require.True(t, ok, "expected a CREATE TABLE statement")

	xid := eng.Txns.Begin()
	_, err = eng.Executor.ExecuteUtility(xid, cmd)
	require.NoError(t, err)
	require.NoError(t, eng.Txns.Commit(xid))

	table, err := eng.Catalog.GetDefinition(cmd.TableName)
	require.NoError(t, err)
	return table
}

// runDML parses and executes an INSERT or SELECT statement under its
// own transaction, committing on success and aborting on failure.
func runDML(t *testing.T, eng *Engine, sql string) (*executor.Result, error) {
	t.Helper()
	tree, err := sqlfront.Parse(sql)
	require.NoError(t, err)

	xid := eng.Txns.Begin()
	qt, err := eng.Analyzer.Analyze(tree)
	if err != nil {
		require.NoError(t, eng.Txns.Abort(xid))
		return nil, err
	}
	res, err := eng.Executor.ExecutePlan(xid, qt)
	if err != nil {
		require.NoError(t, eng.Txns.Abort(xid))
		return nil, err
	}
	require.NoError(t, eng.Txns.Commit(xid))
	return res, nil
}

func TestScenarioCreateTableThenSelectFromPgClass(t *testing.T) {
	eng := New()
	runDDL(t, eng, "CREATE TABLE foo (bar text, baz text not null, another text null)")

	res, err := runDML(t, eng, "SELECT name FROM pg_class WHERE name = 'foo'")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, "foo", res.Rows[0][0].String())
}

func TestScenarioInsertWithReorderedNamedColumnsThenSelect(t *testing.T) {
	eng := New()
	runDDL(t, eng, "CREATE TABLE foo (bar text, baz text not null, another text null)")

	_, err := runDML(t, eng, "INSERT INTO foo (another, baz, bar) VALUES ('one', 'two', 'three')")
	require.NoError(t, err)

	res, err := runDML(t, eng, "SELECT baz, bar, another FROM foo")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, "two", res.Rows[0][0].String())
	require.Equal(t, "three", res.Rows[0][1].String())
	require.Equal(t, "one", res.Rows[0][2].String())
}

func TestScenarioInsertMissingNotNullColumnFails(t *testing.T) {
	eng := New()
	runDDL(t, eng, "CREATE TABLE foo (bar text, baz text not null, another text null)")

	_, err := runDML(t, eng, "INSERT INTO foo (bar, another) VALUES ('three', 'one')")
	require.Error(t, err)
}

func TestScenarioMassInsert500Rows(t *testing.T) {
	eng := New()
	table := runDDL(t, eng, "CREATE TABLE foo (bar text, baz text null, another text not null)")

	xid := eng.Txns.Begin()
	for i := 0; i < 500; i++ {
		qt := objects.QueryTree{
			CommandType: objects.CommandInsert,
			RangeTables: []objects.RangeRelation{objects.AnonymousTable{
				Table: table,
				Values: []constants.Value{
					constants.TextValue("bar value"),
					nil,
					constants.TextValue("a fairly long tail of text to pad this row out some"),
				},
			}},
		}
		_, err := eng.Executor.ExecutePlan(xid, qt)
		require.NoError(t, err)
	}
	require.NoError(t, eng.Txns.Commit(xid))

	count := 0
	err := eng.Visible.Stream(table, func(_ pageformats.ItemPointer, row *rowformats.RowData) error {
		require.Equal(t, "bar value", row.Values[0].String())
		count++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 500, count)
}

func TestScenarioDeleteHidesRowOnlyAfterCommit(t *testing.T) {
	eng := New()
	table := runDDL(t, eng, "CREATE TABLE foo (bar text not null)")

	insertXid := eng.Txns.Begin()
	ptr, err := eng.Rows.InsertRow(insertXid, table, []constants.Value{constants.TextValue("one")})
	require.NoError(t, err)
	require.NoError(t, eng.Txns.Commit(insertXid))

	snapBeforeDelete := eng.Txns.Snapshot()

	deleteXid := eng.Txns.Begin()
	require.NoError(t, eng.Rows.DeleteRow(deleteXid, table, ptr))
	require.NoError(t, eng.Txns.Commit(deleteXid))

	countAfter := 0
	require.NoError(t, eng.Visible.Stream(table, func(_ pageformats.ItemPointer, _ *rowformats.RowData) error {
		countAfter++
		return nil
	}))
	require.Equal(t, 0, countAfter)

	countBefore := 0
	err = eng.Rows.Stream(table, func(_ pageformats.ItemPointer, row *rowformats.RowData) error {
		visible, verr := txn.Visible(row.Min, row.Max, snapBeforeDelete, eng.Txns.StatusOf)
		require.NoError(t, verr)
		if visible {
			countBefore++
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, countBefore)
}

func TestScenarioPageOverflowAllocatesNewPage(t *testing.T) {
	eng := New()
	table := runDDL(t, eng, "CREATE TABLE foo (bar text not null)")

	xid := eng.Txns.Begin()
	big := string(make([]byte, 1000))
	var maxPage uint32
	for i := 0; i < 10; i++ {
		ptr, err := eng.Rows.InsertRow(xid, table, []constants.Value{constants.TextValue(big)})
		require.NoError(t, err)
		if ptr.PageNumber > maxPage {
			maxPage = ptr.PageNumber
		}
	}
	require.NoError(t, eng.Txns.Commit(xid))
	require.Greater(t, maxPage, uint32(0), "expected at least one page rollover across 10 ~1KB rows")
}
