package storageio

import (
	"testing"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
	"github.com/chotchki/elephantcore/internal/engine/txn"
)

func TestVisibleRowManagerHidesUncommittedInsert(t *testing.T) {
	table := newTestTable(t)
	io := NewIOManager()
	rowManager := NewRowManager(io)
	txns := txn.NewManager()
	visible := NewVisibleRowManager(rowManager, txns)

	inserter := txns.Begin()
	values := []constants.Value{constants.IntegerValue(1), constants.TextValue("alpha")}
	ptr, err := rowManager.InsertRow(inserter, table, values)
	if err != nil {
		t.Fatalf("InsertRow: %v", err)
	}

	if _, err := visible.Get(table, ptr); err == nil {
		t.Fatal("expected an uncommitted row to be invisible")
	}

	if err := txns.Commit(inserter); err != nil {
		t.Fatalf("commit: %v", err)
	}
	got, err := visible.Get(table, ptr)
	if err != nil {
		t.Fatalf("Get after commit: %v", err)
	}
	if got.Values[1].String() != "alpha" {
		t.Fatalf("got %v, want alpha", got.Values[1])
	}
}

func TestVisibleRowManagerStreamFiltersDeletedRows(t *testing.T) {
	table := newTestTable(t)
	io := NewIOManager()
	rowManager := NewRowManager(io)
	txns := txn.NewManager()
	visible := NewVisibleRowManager(rowManager, txns)

	inserter := txns.Begin()
	ptrA, err := rowManager.InsertRow(inserter, table, []constants.Value{constants.IntegerValue(1), constants.TextValue("keep")})
	if err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	ptrB, err := rowManager.InsertRow(inserter, table, []constants.Value{constants.IntegerValue(2), constants.TextValue("drop")})
	if err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if err := txns.Commit(inserter); err != nil {
		t.Fatalf("commit: %v", err)
	}

	deleter := txns.Begin()
	if err := rowManager.DeleteRow(deleter, table, ptrB); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	if err := txns.Commit(deleter); err != nil {
		t.Fatalf("commit: %v", err)
	}

	var seen []string
	err = visible.Stream(table, func(ptr pageformats.ItemPointer, row *rowformats.RowData) error {
		seen = append(seen, row.Values[1].String())
		return nil
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if len(seen) != 1 || seen[0] != "keep" {
		t.Fatalf("got %v, want [keep]", seen)
	}
	_ = ptrA
}
