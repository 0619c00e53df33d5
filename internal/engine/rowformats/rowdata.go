// Package rowformats implements the row codec: the serialized layout
// of one table row inside a page, combining the page format with a
// table's schema.
package rowformats

import (
	"encoding/binary"
	"fmt"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/chotchki/elephantcore/internal/engine/txn"
)

// RowData is one row bound to its table's schema: the MVCC bounds
// that make it visible or not, its location, and its typed column
// values in table-attribute order.
type RowData struct {
	Table       *objects.Table
	Min         txn.TransactionId
	Max         txn.TransactionId // txn.NoTransactionId means "not deleted"
	ItemPointer pageformats.ItemPointer
	Values      []constants.Value
}

// NewRowData validates that values match the table's attribute count
// and declared types (or are nil where the attribute allows Null)
// before constructing a row.
func NewRowData(table *objects.Table, min, max txn.TransactionId, ptr pageformats.ItemPointer, values []constants.Value) (*RowData, error) {
	if len(values) != len(table.Attributes) {
		return nil, RowDataError{fmt.Sprintf("table %s has %d columns, got %d values", table.Name, len(table.Attributes), len(values))}
	}
	for i, attr := range table.Attributes {
		v := values[i]
		if v == nil {
			if attr.Nullable == constants.NotNull {
				return nil, RowDataError{fmt.Sprintf("column %s is not nullable", attr.Name)}
			}
			continue
		}
		if !constants.TypeMatches(v, attr.SQLType) {
			return nil, RowDataError{fmt.Sprintf("column %s expects %s, got %s", attr.Name, attr.SQLType, v.Type())}
		}
	}
	return &RowData{Table: table, Min: min, Max: max, ItemPointer: ptr, Values: values}, nil
}

// Serialize writes min_xid (8), max_xid (8, 0 = none), item_pointer
// (6), info_mask (1), an optional null-mask, then each non-null
// column's self-delimited encoding in table order.
func (r *RowData) Serialize() []byte {
	isNull := make([]bool, len(r.Values))
	anyNull := false
	for i, v := range r.Values {
		if v == nil {
			isNull[i] = true
			anyNull = true
		}
	}

	var mask pageformats.InfoMask
	if anyNull {
		mask |= pageformats.HasNull
	}

	out := make([]byte, 0, 64)
	minBuf := make([]byte, 8)
	binary.LittleEndian.PutUint64(minBuf, uint64(r.Min))
	out = append(out, minBuf...)

	maxBuf := make([]byte, 8)
	binary.LittleEndian.PutUint64(maxBuf, uint64(r.Max))
	out = append(out, maxBuf...)

	out = append(out, r.ItemPointer.Serialize()...)
	out = append(out, byte(mask))

	if anyNull {
		out = append(out, pageformats.SerializeNullMask(isNull)...)
	}

	for i, v := range r.Values {
		if isNull[i] {
			continue
		}
		out = append(out, v.Serialize()...)
	}
	return out
}

// ParseRowData decodes a row previously produced by Serialize,
// against the given table's schema.
func ParseRowData(table *objects.Table, buf []byte) (*RowData, error) {
	if len(buf) < 8 {
		return nil, RowDataError{"MissingMinData"}
	}
	min := txn.TransactionId(binary.LittleEndian.Uint64(buf[0:8]))
	buf = buf[8:]

	if len(buf) < 8 {
		return nil, RowDataError{"MissingMaxData"}
	}
	max := txn.TransactionId(binary.LittleEndian.Uint64(buf[0:8]))
	buf = buf[8:]

	if len(buf) < 6 {
		return nil, RowDataError{"MissingItemPointerData"}
	}
	ptr, err := pageformats.ParseItemPointer(buf[0:6])
	if err != nil {
		return nil, RowDataError{fmt.Sprintf("ItemPointerError: %v", err)}
	}
	buf = buf[6:]

	if len(buf) < 1 {
		return nil, RowDataError{"MissingInfoMaskData"}
	}
	mask := pageformats.InfoMask(buf[0])
	buf = buf[1:]

	n := len(table.Attributes)
	isNull := make([]bool, n)
	if mask.Has(pageformats.HasNull) {
		maskLen := pageformats.NullMaskByteLen(n)
		if len(buf) < maskLen {
			return nil, RowDataError{"MissingNullMaskData"}
		}
		isNull = pageformats.ParseNullMask(buf[:maskLen], n)
		buf = buf[maskLen:]
	}

	values := make([]constants.Value, n)
	for i, attr := range table.Attributes {
		if isNull[i] {
			values[i] = nil
			continue
		}
		v, consumed, err := constants.Decode(attr.SQLType, buf)
		if err != nil {
			return nil, RowDataError{fmt.Sprintf("ColumnParseError: column %s: %v", attr.Name, err)}
		}
		values[i] = v
		buf = buf[consumed:]
	}

	return &RowData{Table: table, Min: min, Max: max, ItemPointer: ptr, Values: values}, nil
}

// WithItemPointer returns a copy of r with its item pointer replaced.
// Used by the row manager to rewrite the placeholder pointer used to
// size a row before its slot is known, and by UpdateRow to point a
// superseded row at its replacement.
func (r *RowData) WithItemPointer(ptr pageformats.ItemPointer) *RowData {
	cp := *r
	cp.ItemPointer = ptr
	return &cp
}

// WithMax returns a copy of r with its max_xid set, used by
// delete_row/update_row to mark a row dead without touching its
// column values.
func (r *RowData) WithMax(max txn.TransactionId) *RowData {
	cp := *r
	cp.Max = max
	return &cp
}

type RowDataError struct {
	Reason string
}

func (e RowDataError) Error() string { return "row data error: " + e.Reason }
