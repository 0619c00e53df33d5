package analyzer

import (
	"testing"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/catalog"
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/storageio"
	"github.com/chotchki/elephantcore/internal/engine/txn"
	"github.com/google/uuid"
)

func newTestAnalyzer(t *testing.T) (*Analyzer, uuid.UUID) {
	t.Helper()
	rows := storageio.NewRowManager(storageio.NewIOManager())
	xid := txn.TransactionId(1)

	tableID := uuid.New()
	if _, err := rows.InsertRow(xid, catalog.PgClassTable(), []constants.Value{
		constants.UUIDValue(tableID),
		constants.TextValue("widgets"),
	}); err != nil {
		t.Fatalf("insert pg_class row: %v", err)
	}
	cols := []struct {
		name     string
		sqlType  string
		position int
		nullable bool
	}{
		{"id", "integer", 0, false},
		{"label", "text", 1, true},
	}
	for _, c := range cols {
		_, err := rows.InsertRow(xid, catalog.PgAttributeTable(), []constants.Value{
			constants.UUIDValue(tableID),
			constants.TextValue(c.name),
			constants.TextValue(c.sqlType),
			constants.IntegerValue(uint32(c.position)),
			constants.BoolValue(c.nullable),
		})
		if err != nil {
			t.Fatalf("insert pg_attribute row for %s: %v", c.name, err)
		}
	}

	lookup := catalog.NewLookup(rows)
	return NewAnalyzer(lookup), tableID
}

func TestAnalyzeInsertPositional(t *testing.T) {
	a, tableID := newTestAnalyzer(t)
	qt, err := a.Analyze(objects.InsertCommand{
		TableName: "widgets",
		Values:    []string{"7", "a label"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if qt.CommandType != objects.CommandInsert {
		t.Fatalf("got command type %v, want CommandInsert", qt.CommandType)
	}
	anon, ok := qt.RangeTables[0].(objects.AnonymousTable)
	if !ok {
		t.Fatalf("expected AnonymousTable range relation, got %T", qt.RangeTables[0])
	}
	if anon.Table.ID != tableID {
		t.Fatalf("got table id %v, want %v", anon.Table.ID, tableID)
	}
	if anon.Values[0].String() != "7" || anon.Values[1].String() != "a label" {
		t.Fatalf("got values %v", anon.Values)
	}
}

func TestAnalyzeInsertNamedColumnsOutOfOrder(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	qt, err := a.Analyze(objects.InsertCommand{
		TableName: "widgets",
		Columns:   []string{"label", "id"},
		Values:    []string{"a label", "7"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	anon := qt.RangeTables[0].(objects.AnonymousTable)
	if anon.Values[0].String() != "7" || anon.Values[1].String() != "a label" {
		t.Fatalf("named columns should reorder into table position, got %v", anon.Values)
	}
}

func TestAnalyzeInsertNullIntoNullableColumn(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	qt, err := a.Analyze(objects.InsertCommand{
		TableName: "widgets",
		Values:    []string{"7", "NULL"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	anon := qt.RangeTables[0].(objects.AnonymousTable)
	if anon.Values[1] != nil {
		t.Fatalf("expected nil for NULL literal, got %v", anon.Values[1])
	}
}

func TestAnalyzeInsertNullLiteralCaseInsensitive(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	qt, err := a.Analyze(objects.InsertCommand{
		TableName: "widgets",
		Values:    []string{"7", "nUll"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	anon := qt.RangeTables[0].(objects.AnonymousTable)
	if anon.Values[1] != nil {
		t.Fatalf("expected nil for mixed-case NULL literal, got %v", anon.Values[1])
	}
}

func TestAnalyzeInsertNullIntoNotNullColumnErrors(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	_, err := a.Analyze(objects.InsertCommand{
		TableName: "widgets",
		Values:    []string{"NULL", "a label"},
	})
	if err == nil {
		t.Fatal("expected error inserting NULL into a NotNull column")
	}
}

func TestAnalyzeInsertUnknownColumnErrors(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	_, err := a.Analyze(objects.InsertCommand{
		TableName: "widgets",
		Columns:   []string{"nope"},
		Values:    []string{"x"},
	})
	if _, ok := err.(UnknownColumnsError); !ok {
		t.Fatalf("got %v (%T), want UnknownColumnsError", err, err)
	}
}

func TestAnalyzeSelectStarProjectsAllColumns(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	qt, err := a.Analyze(objects.SelectCommand{
		TableName: "widgets",
		Columns:   []string{"*"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(qt.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(qt.Targets))
	}
	if qt.Filter != nil {
		t.Fatal("expected no filter without a WHERE clause")
	}
}

func TestAnalyzeSelectWithWhereBindsFilter(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	qt, err := a.Analyze(objects.SelectCommand{
		TableName: "widgets",
		Columns:   []string{"label"},
		Where:     &objects.WhereEquals{Column: "id", Value: "7"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if qt.Filter == nil {
		t.Fatal("expected a bound filter")
	}
	if qt.Filter.Attribute.Name != "id" || qt.Filter.Value.String() != "7" {
		t.Fatalf("unexpected filter: %+v", qt.Filter)
	}
	if len(qt.Targets) != 1 || qt.Targets[0].Attribute.Name != "label" {
		t.Fatalf("unexpected targets: %+v", qt.Targets)
	}
}

func TestAnalyzeSelectUnknownWhereColumnErrors(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	_, err := a.Analyze(objects.SelectCommand{
		TableName: "widgets",
		Columns:   []string{"*"},
		Where:     &objects.WhereEquals{Column: "nope", Value: "x"},
	})
	if _, ok := err.(UnknownColumnsError); !ok {
		t.Fatalf("got %v (%T), want UnknownColumnsError", err, err)
	}
}

func TestAnalyzeCreateTableIsNotImplemented(t *testing.T) {
	a, _ := newTestAnalyzer(t)
	_, err := a.Analyze(objects.CreateTableCommand{TableName: "x"})
	if _, ok := err.(NotImplementedError); !ok {
		t.Fatalf("got %v (%T), want NotImplementedError (DDL is executed directly, not analyzed)", err, err)
	}
}
