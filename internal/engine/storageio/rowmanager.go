package storageio

import (
	"fmt"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
	"github.com/chotchki/elephantcore/internal/engine/txn"
)

// RowManager implements row-level mutation and retrieval on top of an
// IOManager. It does not consult transaction status or snapshots —
// callers needing visibility filtering use VisibleRowManager.
type RowManager struct {
	io *IOManager
}

func NewRowManager(io *IOManager) *RowManager {
	return &RowManager{io: io}
}

var placeholderPointer = pageformats.NewItemPointer(0, 0)

// InsertRow builds a row with min=xid, max=none and installs it into
// the first page (scanning page 0, 1, 2, ...) whose free space fits
// it, appending a new page if none does. The row's embedded
// item_pointer is rewritten to its real (page_num, slot) after the
// slot is assigned.
func (m *RowManager) InsertRow(xid txn.TransactionId, table *objects.Table, values []constants.Value) (pageformats.ItemPointer, error) {
	row, err := rowformats.NewRowData(table, xid, txn.NoTransactionId, placeholderPointer, values)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	rowBytes := row.Serialize()

	pageCount := m.io.PageCount(table.ID)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		raw, err := m.io.GetPage(table.ID, uint32(pageNum))
		if err != nil {
			return pageformats.ItemPointer{}, err
		}
		page, err := pageformats.ParsePage(raw)
		if err != nil {
			return pageformats.ItemPointer{}, err
		}
		if !page.CanFit(len(rowBytes)) {
			continue
		}
		return m.installRow(table, page, uint32(pageNum), row, rowBytes)
	}

	page := pageformats.NewPage()
	pageNum := m.io.AddPage(table.ID, page.Serialize())
	return m.installRow(table, page, pageNum, row, rowBytes)
}

func (m *RowManager) installRow(table *objects.Table, page *pageformats.Page, pageNum uint32, row *rowformats.RowData, rowBytes []byte) (pageformats.ItemPointer, error) {
	slot, err := page.Insert(rowBytes)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	slotOffset, err := pageformats.UInt12FromUsize(slot)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	ptr := pageformats.NewItemPointer(pageNum, slotOffset)

	final := row.WithItemPointer(ptr)
	if err := page.Update(final.Serialize(), slot); err != nil {
		return pageformats.ItemPointer{}, err
	}
	if err := m.io.UpdatePage(table.ID, page.Serialize(), pageNum); err != nil {
		return pageformats.ItemPointer{}, err
	}
	return ptr, nil
}

// DeleteRow reads the row at ptr and sets its max_xid to xid,
// failing AlreadyDeleted if it is already dead.
func (m *RowManager) DeleteRow(xid txn.TransactionId, table *objects.Table, ptr pageformats.ItemPointer) error {
	raw, err := m.io.GetPage(table.ID, ptr.PageNumber)
	if err != nil {
		return err
	}
	page, err := pageformats.ParsePage(raw)
	if err != nil {
		return err
	}
	rowBytes, err := page.GetRowBytes(ptr.Slot.ToInt())
	if err != nil {
		return err
	}
	row, err := rowformats.ParseRowData(table, rowBytes)
	if err != nil {
		return err
	}
	if !row.Max.IsNone() {
		return AlreadyDeletedError{Pointer: ptr}
	}
	row = row.WithMax(xid)
	if err := page.Update(row.Serialize(), ptr.Slot.ToInt()); err != nil {
		return err
	}
	return m.io.UpdatePage(table.ID, page.Serialize(), ptr.PageNumber)
}

// UpdateRow reads the old row, fails AlreadyDeleted if already dead,
// builds the new row, inserts it (preferring the old row's own page),
// sets the old row's max_xid to xid, and rewrites the old row's
// item_pointer field to point at the new row — a forward chain for
// update traversal. Returns the new row's pointer.
func (m *RowManager) UpdateRow(xid txn.TransactionId, table *objects.Table, ptr pageformats.ItemPointer, newValues []constants.Value) (pageformats.ItemPointer, error) {
	oldRaw, err := m.io.GetPage(table.ID, ptr.PageNumber)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	oldPage, err := pageformats.ParsePage(oldRaw)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	oldRowBytes, err := oldPage.GetRowBytes(ptr.Slot.ToInt())
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	oldRow, err := rowformats.ParseRowData(table, oldRowBytes)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	if !oldRow.Max.IsNone() {
		return pageformats.ItemPointer{}, AlreadyDeletedError{Pointer: ptr}
	}

	newRow, err := rowformats.NewRowData(table, xid, txn.NoTransactionId, placeholderPointer, newValues)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	newRowBytes := newRow.Serialize()

	var newPtr pageformats.ItemPointer
	if oldPage.CanFit(len(newRowBytes)) {
		newPtr, err = m.installRow(table, oldPage, ptr.PageNumber, newRow, newRowBytes)
		if err != nil {
			return pageformats.ItemPointer{}, err
		}
	} else {
		newPtr, err = m.InsertRow(xid, table, newValues)
		if err != nil {
			return pageformats.ItemPointer{}, err
		}
	}

	// Re-read the old row's page: InsertRow/installRow above may have
	// persisted it already if the new row landed on the same page.
	rawAfter, err := m.io.GetPage(table.ID, ptr.PageNumber)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	pageAfter, err := pageformats.ParsePage(rawAfter)
	if err != nil {
		return pageformats.ItemPointer{}, err
	}
	oldRow = oldRow.WithMax(xid)
	oldRow = oldRow.WithItemPointer(newPtr)
	if err := pageAfter.Update(oldRow.Serialize(), ptr.Slot.ToInt()); err != nil {
		return pageformats.ItemPointer{}, err
	}
	if err := m.io.UpdatePage(table.ID, pageAfter.Serialize(), ptr.PageNumber); err != nil {
		return pageformats.ItemPointer{}, err
	}
	return newPtr, nil
}

// Get returns the row stored at ptr, parsed against table's schema.
func (m *RowManager) Get(table *objects.Table, ptr pageformats.ItemPointer) (*rowformats.RowData, error) {
	raw, err := m.io.GetPage(table.ID, ptr.PageNumber)
	if err != nil {
		return nil, err
	}
	page, err := pageformats.ParsePage(raw)
	if err != nil {
		return nil, err
	}
	rowBytes, err := page.GetRowBytes(ptr.Slot.ToInt())
	if err != nil {
		return nil, NonExistentRowError{Pointer: ptr}
	}
	return rowformats.ParseRowData(table, rowBytes)
}

// Stream calls fn for every stored row (every non-tombstoned item-id)
// across every page of table, in (page_num, slot) order, including
// rows whose max_xid is set. It does not filter by visibility.
func (m *RowManager) Stream(table *objects.Table, fn func(ptr pageformats.ItemPointer, row *rowformats.RowData) error) error {
	return m.io.Stream(table.ID, func(pageNum uint32, raw [pageformats.PageSize]byte) error {
		page, err := pageformats.ParsePage(raw)
		if err != nil {
			return err
		}
		return page.Iterate(func(slot int, rowBytes []byte) error {
			row, err := rowformats.ParseRowData(table, rowBytes)
			if err != nil {
				return err
			}
			return fn(row.ItemPointer, row)
		})
	})
}

type AlreadyDeletedError struct {
	Pointer pageformats.ItemPointer
}

func (e AlreadyDeletedError) Error() string {
	return fmt.Sprintf("row %s already deleted", e.Pointer)
}

type NonExistentRowError struct {
	Pointer pageformats.ItemPointer
}

func (e NonExistentRowError) Error() string {
	return fmt.Sprintf("no row at %s", e.Pointer)
}
