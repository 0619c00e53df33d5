package pageformats

import (
	"encoding/binary"
	"fmt"
)

const headerLen = 4 // two little-endian u16 free-space bounds
const itemIDLen = 3 // two packed 12-bit values in 3 bytes

// itemID is one entry of the item-id array: the row's offset into the
// heap and its length. Length 0 marks a tombstoned (reclaimable) slot.
type itemID struct {
	Offset UInt12
	Length UInt12
}

func packItemID(id itemID) [3]byte {
	o := id.Offset.ToUint16()
	l := id.Length.ToUint16()
	return [3]byte{
		byte(o),
		byte(o>>8) | byte(l<<4),
		byte(l >> 4),
	}
}

func unpackItemID(b []byte) itemID {
	o := uint16(b[0]) | uint16(b[1]&0x0F)<<8
	l := uint16(b[1]>>4) | uint16(b[2])<<4
	return itemID{Offset: UInt12(o), Length: UInt12(l)}
}

// Page is an in-memory decoding of one fixed 4 KiB slotted page. It
// holds rows belonging to exactly one table, identified by caller
// convention, not by any field here — the page format itself is
// schema-agnostic, matching its role as the lowest storage layer.
//
// freeStart and freeEnd bound the free region between the item-id
// array and the row heap. They are plain u16, not UInt12: on an empty
// page freeEnd is exactly PageSize (4096), one past the last valid
// byte index, which does not fit in 12 bits. Every offset the page
// actually writes into the heap stays within [0, 4095].
type Page struct {
	freeStart uint16
	freeEnd   uint16
	items     []itemID
	heap      [PageSize]byte
}

// NewPage returns an empty page: the whole region between the header
// and byte 4095 is free.
func NewPage() *Page {
	return &Page{
		freeStart: headerLen,
		freeEnd:   PageSize,
	}
}

// CanFit reports whether a row of rowLen bytes plus one new item-id
// entry fits in the remaining free space.
func (p *Page) CanFit(rowLen int) bool {
	free := int(p.freeEnd) - int(p.freeStart)
	return free >= rowLen+itemIDLen
}

// Insert writes rowData into the free region and appends a new
// item-id entry, returning the assigned slot number.
func (p *Page) Insert(rowData []byte) (int, error) {
	if !p.CanFit(len(rowData)) {
		return 0, PageError{"not enough space"}
	}
	newEnd := p.freeEnd - uint16(len(rowData))
	copy(p.heap[newEnd:p.freeEnd], rowData)

	offset, err := UInt12FromUsize(int(newEnd))
	if err != nil {
		return 0, PageError{err.Error()}
	}
	length, err := UInt12FromUsize(len(rowData))
	if err != nil {
		return 0, PageError{err.Error()}
	}

	slot := len(p.items)
	p.items = append(p.items, itemID{Offset: offset, Length: length})
	p.freeStart += itemIDLen
	p.freeEnd = newEnd
	return slot, nil
}

// Update overwrites an existing slot's bytes in place. The new bytes
// must be exactly as long as the old ones — this is used only to flip
// a row's max_xid, never to change its shape.
func (p *Page) Update(rowData []byte, slot int) error {
	if slot < 0 || slot >= len(p.items) {
		return SlotOutOfBoundsError{slot}
	}
	old := p.items[slot]
	if int(old.Length.ToUint16()) != len(rowData) {
		return PageError{"update requires unchanged length"}
	}
	start := old.Offset.ToUint16()
	copy(p.heap[start:start+old.Length.ToUint16()], rowData)
	return nil
}

// GetRowBytes returns the raw bytes stored at slot.
func (p *Page) GetRowBytes(slot int) ([]byte, error) {
	if slot < 0 || slot >= len(p.items) {
		return nil, SlotOutOfBoundsError{slot}
	}
	id := p.items[slot]
	if id.Length == 0 {
		return nil, SlotOutOfBoundsError{slot}
	}
	start := id.Offset.ToUint16()
	out := make([]byte, id.Length.ToUint16())
	copy(out, p.heap[start:start+id.Length.ToUint16()])
	return out, nil
}

// SlotCount returns the number of entries in the item-id array,
// including tombstones.
func (p *Page) SlotCount() int { return len(p.items) }

// Iterate calls fn for every non-tombstoned slot in slot order,
// stopping early if fn returns an error.
func (p *Page) Iterate(fn func(slot int, rowData []byte) error) error {
	for slot, id := range p.items {
		if id.Length == 0 {
			continue
		}
		data, err := p.GetRowBytes(slot)
		if err != nil {
			return err
		}
		if err := fn(slot, data); err != nil {
			return err
		}
	}
	return nil
}

// Serialize writes the page out as exactly PageSize bytes.
func (p *Page) Serialize() [PageSize]byte {
	var out [PageSize]byte
	binary.LittleEndian.PutUint16(out[0:2], p.freeStart)
	binary.LittleEndian.PutUint16(out[2:4], p.freeEnd)

	off := headerLen
	for _, id := range p.items {
		packed := packItemID(id)
		copy(out[off:off+itemIDLen], packed[:])
		off += itemIDLen
	}
	copy(out[p.freeEnd:], p.heap[p.freeEnd:])
	return out
}

// ParsePage decodes a page previously produced by Serialize.
func ParsePage(buf [PageSize]byte) (*Page, error) {
	freeStart := binary.LittleEndian.Uint16(buf[0:2])
	freeEnd := binary.LittleEndian.Uint16(buf[2:4])
	if freeStart < headerLen || int(freeStart) > PageSize {
		return nil, PageError{fmt.Sprintf("free start %d out of range", freeStart)}
	}
	if int(freeEnd) > PageSize {
		return nil, PageError{fmt.Sprintf("free end %d out of range", freeEnd)}
	}

	p := &Page{freeStart: freeStart, freeEnd: freeEnd}
	copy(p.heap[:], buf[:])

	numItems := (int(freeStart) - headerLen) / itemIDLen
	for i := 0; i < numItems; i++ {
		start := headerLen + i*itemIDLen
		p.items = append(p.items, unpackItemID(buf[start:start+itemIDLen]))
	}
	return p, nil
}

type PageError struct {
	Reason string
}

func (e PageError) Error() string { return "page error: " + e.Reason }

type SlotOutOfBoundsError struct {
	Slot int
}

func (e SlotOutOfBoundsError) Error() string {
	return fmt.Sprintf("slot %d out of bounds", e.Slot)
}
