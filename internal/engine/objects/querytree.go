package objects

import "github.com/chotchki/elephantcore/internal/constants"

// CommandType is the bound statement's command kind.
type CommandType int

const (
	CommandInsert CommandType = iota
	CommandSelect
)

// TargetEntry is one projected column of a bound statement: a resolved
// table attribute, both in INSERT's target list and in a SELECT column
// list, whose names the analyzer resolves before building the tree.
type TargetEntry struct {
	Attribute Attribute
}

// RangeRelation is the source of rows a query tree reads from.
type RangeRelation interface {
	isRangeRelation()
}

// AnonymousTable holds the literal value tuple an INSERT binds,
// already reordered and typed to match Table, the resolved
// destination.
type AnonymousTable struct {
	Table  *Table
	Values []constants.Value
}

func (AnonymousTable) isRangeRelation() {}

// RangeRelationTable is a bound reference to a real table, the
// source relation for a full-table SELECT scan.
type RangeRelationTable struct {
	Table *Table
}

func (RangeRelationTable) isRangeRelation() {}

// BoundFilter is a SELECT's optional WHERE clause, resolved to a real
// attribute and a typed value ready for equality comparison.
type BoundFilter struct {
	Attribute Attribute
	Value     constants.Value
}

// QueryTree is the analyzer's bound output: a command type, its
// target list, and the relations it reads from or writes into.
type QueryTree struct {
	CommandType CommandType
	Targets     []TargetEntry
	RangeTables []RangeRelation
	Filter      *BoundFilter
}
