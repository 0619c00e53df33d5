package pageformats

import (
	"encoding/binary"
	"fmt"
)

// ItemPointer locates one row on disk: a page number and the slot
// within that page's item-id array.
type ItemPointer struct {
	PageNumber uint32
	Slot       UInt12
}

func NewItemPointer(pageNumber uint32, slot UInt12) ItemPointer {
	return ItemPointer{PageNumber: pageNumber, Slot: slot}
}

// Serialize writes 6 bytes: u32 LE page number, u16 LE slot.
func (p ItemPointer) Serialize() []byte {
	buf := make([]byte, 6)
	binary.LittleEndian.PutUint32(buf[0:4], p.PageNumber)
	binary.LittleEndian.PutUint16(buf[4:6], p.Slot.ToUint16())
	return buf
}

// ParseItemPointer reads 6 bytes off the front of buf.
func ParseItemPointer(buf []byte) (ItemPointer, error) {
	if len(buf) < 6 {
		return ItemPointer{}, ItemPointerError{fmt.Sprintf("need 6 bytes, got %d", len(buf))}
	}
	pageNum := binary.LittleEndian.Uint32(buf[0:4])
	slot, err := ParseUInt12(buf[4:6])
	if err != nil {
		return ItemPointer{}, ItemPointerError{err.Error()}
	}
	return ItemPointer{PageNumber: pageNum, Slot: slot}, nil
}

func (p ItemPointer) String() string {
	return fmt.Sprintf("ItemPointer(page=%d, slot=%d)", p.PageNumber, p.Slot.ToUint16())
}

type ItemPointerError struct {
	Reason string
}

func (e ItemPointerError) Error() string { return "item pointer error: " + e.Reason }
