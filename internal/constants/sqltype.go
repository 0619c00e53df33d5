package constants

import (
	"fmt"
	"strings"
)

// SqlType is the type tag attached to a column declaration. It is also
// the discriminant used to decode a serialized scalar off the wire.
type SqlType int

const (
	SqlText SqlType = iota
	SqlInteger
	SqlBool
	SqlUUID
)

func (t SqlType) String() string {
	switch t {
	case SqlText:
		return "text"
	case SqlInteger:
		return "integer"
	case SqlBool:
		return "bool"
	case SqlUUID:
		return "uuid"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseSqlType maps a column type name from DDL text (case-insensitive)
// to its type tag.
func ParseSqlType(name string) (SqlType, error) {
	switch strings.ToLower(name) {
	case "text":
		return SqlText, nil
	case "integer", "int":
		return SqlInteger, nil
	case "bool", "boolean":
		return SqlBool, nil
	case "uuid":
		return SqlUUID, nil
	default:
		return 0, SqlTypeError{Reason: fmt.Sprintf("unknown sql type %q", name)}
	}
}

// SqlTypeError is surfaced whenever a scalar fails to parse from text or
// fails to decode from its on-disk encoding.
type SqlTypeError struct {
	Reason string
}

func (e SqlTypeError) Error() string {
	return "sql type error: " + e.Reason
}
