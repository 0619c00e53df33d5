package storageio

import (
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
	"github.com/chotchki/elephantcore/internal/engine/txn"
)

// VisibleRowManager wraps a RowManager with a transaction manager,
// filtering every row a caller sees through the MVCC visibility
// predicate for a snapshot captured once, at call time.
type VisibleRowManager struct {
	rows *RowManager
	txns *txn.Manager
}

func NewVisibleRowManager(rows *RowManager, txns *txn.Manager) *VisibleRowManager {
	return &VisibleRowManager{rows: rows, txns: txns}
}

// Get returns the row at ptr if it is visible under a fresh snapshot,
// or NonExistentRowError if it exists but is not visible.
func (v *VisibleRowManager) Get(table *objects.Table, ptr pageformats.ItemPointer) (*rowformats.RowData, error) {
	row, err := v.rows.Get(table, ptr)
	if err != nil {
		return nil, err
	}
	ok, err := txn.Visible(row.Min, row.Max, v.txns.Snapshot(), v.txns.StatusOf)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NonExistentRowError{Pointer: ptr}
	}
	return row, nil
}

// Stream calls fn for every row in table visible under one snapshot
// captured before the scan begins.
func (v *VisibleRowManager) Stream(table *objects.Table, fn func(ptr pageformats.ItemPointer, row *rowformats.RowData) error) error {
	snap := v.txns.Snapshot()
	return v.rows.Stream(table, func(ptr pageformats.ItemPointer, row *rowformats.RowData) error {
		ok, err := txn.Visible(row.Min, row.Max, snap, v.txns.StatusOf)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return fn(ptr, row)
	})
}
