// Package pageformats implements the fixed 4 KiB slotted page: the
// 12-bit offset type, item pointers, the info/null masks, and the
// page codec itself.
package pageformats

import (
	"encoding/binary"
	"fmt"
)

// PageSize is the fixed on-disk page size this engine supports.
const PageSize = 4096

// UInt12 is an offset within a page: 12 bits, [0, 4095]. Arithmetic
// saturates instead of wrapping.
type UInt12 uint16

const uint12Max = PageSize - 1

func NewUInt12(val uint16) (UInt12, error) {
	if val > uint12Max {
		return 0, UInt12Error{fmt.Sprintf("value %d out of range [0, %d]", val, uint12Max)}
	}
	return UInt12(val), nil
}

// MaxUInt12 is the largest representable offset.
func MaxUInt12() UInt12 { return UInt12(uint12Max) }

func (u UInt12) ToUint16() uint16 { return uint16(u) }
func (u UInt12) ToInt() int       { return int(u) }

func clamp12(v uint32) UInt12 {
	if v > uint12Max {
		return UInt12(uint12Max)
	}
	return UInt12(v)
}

// Add saturates at 4095 instead of wrapping.
func (u UInt12) Add(other UInt12) UInt12 {
	return clamp12(uint32(u) + uint32(other))
}

// Sub saturates at 0 instead of wrapping.
func (u UInt12) Sub(other UInt12) UInt12 {
	if uint32(other) >= uint32(u) {
		return 0
	}
	return UInt12(uint32(u) - uint32(other))
}

// UInt12FromUsize rejects values that do not fit in 12 bits.
func UInt12FromUsize(val int) (UInt12, error) {
	if val < 0 || val > uint12Max {
		return 0, UInt12Error{fmt.Sprintf("usize %d out of range [0, %d]", val, uint12Max)}
	}
	return UInt12(val), nil
}

// Serialize writes the value as a little-endian u16, upper 4 bits
// zero.
func (u UInt12) Serialize() []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(u))
	return buf
}

// ParseUInt12 reads a little-endian u16 off the front of buf.
func ParseUInt12(buf []byte) (UInt12, error) {
	if len(buf) < 2 {
		return 0, UInt12Error{fmt.Sprintf("insufficient data to parse: got %d bytes", len(buf))}
	}
	raw := binary.LittleEndian.Uint16(buf)
	return NewUInt12(raw)
}

type UInt12Error struct {
	Reason string
}

func (e UInt12Error) Error() string { return "uint12 error: " + e.Reason }
