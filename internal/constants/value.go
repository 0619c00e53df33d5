package constants

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Value is a tagged scalar: Text, Integer, Bool or UUID. Each concrete
// type below is one variant, mirroring the BuiltinSqlTypes enum this
// engine's on-disk format is modeled on.
type Value interface {
	Type() SqlType
	// Serialize appends this value's self-delimited on-disk encoding.
	Serialize() []byte
	fmt.Stringer
}

type TextValue string

func (v TextValue) Type() SqlType { return SqlText }
func (v TextValue) String() string { return string(v) }
func (v TextValue) Serialize() []byte {
	b := []byte(v)
	buf := make([]byte, 4+len(b))
	binary.LittleEndian.PutUint32(buf, uint32(len(b)))
	copy(buf[4:], b)
	return buf
}

type IntegerValue uint32

func (v IntegerValue) Type() SqlType  { return SqlInteger }
func (v IntegerValue) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v IntegerValue) Serialize() []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return buf
}

type BoolValue bool

func (v BoolValue) Type() SqlType  { return SqlBool }
func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }
func (v BoolValue) Serialize() []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

type UUIDValue uuid.UUID

func (v UUIDValue) Type() SqlType  { return SqlUUID }
func (v UUIDValue) String() string { return uuid.UUID(v).String() }
func (v UUIDValue) Serialize() []byte {
	b := uuid.UUID(v)
	return b[:]
}

// TypeMatches reports whether v is a legal value for the declared
// column type t.
func TypeMatches(v Value, t SqlType) bool {
	return v.Type() == t
}

// Parse converts a raw string literal from the SQL front end into a
// typed scalar. The caller is responsible for handling the literal
// NULL separately; Parse never returns a nil Value.
func Parse(t SqlType, raw string) (Value, error) {
	switch t {
	case SqlText:
		return TextValue(raw), nil
	case SqlInteger:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, SqlTypeError{Reason: fmt.Sprintf("invalid integer literal %q: %v", raw, err)}
		}
		return IntegerValue(n), nil
	case SqlBool:
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return nil, SqlTypeError{Reason: fmt.Sprintf("invalid bool literal %q: %v", raw, err)}
		}
		return BoolValue(b), nil
	case SqlUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, SqlTypeError{Reason: fmt.Sprintf("invalid uuid literal %q: %v", raw, err)}
		}
		return UUIDValue(id), nil
	default:
		return nil, SqlTypeError{Reason: fmt.Sprintf("unknown sql type tag %d", int(t))}
	}
}

// Decode reads one self-delimited scalar of type t off the front of
// buf, returning the value and the number of bytes consumed.
func Decode(t SqlType, buf []byte) (Value, int, error) {
	switch t {
	case SqlText:
		if len(buf) < 4 {
			return nil, 0, SqlTypeError{Reason: "truncated text length prefix"}
		}
		n := int(binary.LittleEndian.Uint32(buf))
		if len(buf) < 4+n {
			return nil, 0, SqlTypeError{Reason: "truncated text payload"}
		}
		return TextValue(buf[4 : 4+n]), 4 + n, nil
	case SqlInteger:
		if len(buf) < 4 {
			return nil, 0, SqlTypeError{Reason: "truncated integer"}
		}
		return IntegerValue(binary.LittleEndian.Uint32(buf)), 4, nil
	case SqlBool:
		if len(buf) < 1 {
			return nil, 0, SqlTypeError{Reason: "truncated bool"}
		}
		return BoolValue(buf[0] != 0), 1, nil
	case SqlUUID:
		if len(buf) < 16 {
			return nil, 0, SqlTypeError{Reason: "truncated uuid"}
		}
		var id uuid.UUID
		copy(id[:], buf[:16])
		return UUIDValue(id), 16, nil
	default:
		return nil, 0, SqlTypeError{Reason: fmt.Sprintf("unknown sql type tag %d", int(t))}
	}
}
