package constants

import "github.com/google/uuid"

// Fixed identities for the bootstrap catalog tables. pg_class and
// pg_attribute describe every user table; they are never themselves
// described by a row in pg_attribute.
var (
	PgClassTableID = uuid.MustParse("EE919E33-D905-4F48-8953-7EBB6CC911EB")
	PgAttrTableID  = uuid.MustParse("A7B6C9E1-9F3D-4B2A-8E5D-1C2F3A4B5C6D")
)

// ColumnSpec is the hard-coded shape of one bootstrap column: its
// fixed attribute id, name, declared type and nullability.
type ColumnSpec struct {
	ID       uuid.UUID
	Name     string
	Type     SqlType
	Nullable Nullable
}

// PgClassColumns describes pg_class: (table_id, name).
var PgClassColumns = []ColumnSpec{
	{uuid.MustParse("11111111-1111-4111-8111-111111111101"), "table_id", SqlUUID, NotNull},
	{uuid.MustParse("11111111-1111-4111-8111-111111111102"), "name", SqlText, NotNull},
}

// PgAttributeColumns describes pg_attribute: (table_id, column_name,
// sql_type_name, column_position, nullable_flag). The original source
// left PgAttribute stubbed as a single-row PgClass alias; this engine
// defines it for real, resolving that open question.
var PgAttributeColumns = []ColumnSpec{
	{uuid.MustParse("22222222-2222-4222-8222-222222222201"), "table_id", SqlUUID, NotNull},
	{uuid.MustParse("22222222-2222-4222-8222-222222222202"), "column_name", SqlText, NotNull},
	{uuid.MustParse("22222222-2222-4222-8222-222222222203"), "sql_type_name", SqlText, NotNull},
	{uuid.MustParse("22222222-2222-4222-8222-222222222204"), "column_position", SqlInteger, NotNull},
	{uuid.MustParse("22222222-2222-4222-8222-222222222205"), "nullable_flag", SqlBool, NotNull},
}
