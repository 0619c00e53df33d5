package constants

import (
	"testing"

	"github.com/google/uuid"
)

func TestScalarCodecRoundTrip(t *testing.T) {
	cases := []Value{
		TextValue("hello, world"),
		TextValue(""),
		IntegerValue(4294967295),
		BoolValue(true),
		BoolValue(false),
		UUIDValue(uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")),
	}
	for _, v := range cases {
		buf := v.Serialize()
		got, n, err := Decode(v.Type(), buf)
		if err != nil {
			t.Fatalf("decode %v: %v", v, err)
		}
		if n != len(buf) {
			t.Fatalf("decode %v consumed %d bytes, want %d", v, n, len(buf))
		}
		if got.String() != v.String() {
			t.Fatalf("got %v, want %v", got, v)
		}
	}
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	v := IntegerValue(42)
	buf := append(v.Serialize(), 0xFF, 0xFF)
	got, n, err := Decode(SqlInteger, buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != 4 {
		t.Fatalf("consumed %d bytes, want 4", n)
	}
	if got.(IntegerValue) != 42 {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestDecodeTruncatedBufferErrors(t *testing.T) {
	if _, _, err := Decode(SqlUUID, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected error decoding truncated uuid")
	}
	if _, _, err := Decode(SqlText, []byte{4, 0, 0, 0, 'a'}); err == nil {
		t.Fatal("expected error decoding truncated text payload")
	}
}

func TestParseLiterals(t *testing.T) {
	v, err := Parse(SqlInteger, "123")
	if err != nil || v.(IntegerValue) != 123 {
		t.Fatalf("got (%v, %v)", v, err)
	}
	if _, err := Parse(SqlInteger, "not a number"); err == nil {
		t.Fatal("expected error for invalid integer literal")
	}
	v, err = Parse(SqlBool, "TRUE")
	if err != nil || v.(BoolValue) != true {
		t.Fatalf("got (%v, %v)", v, err)
	}
}

func TestTypeMatches(t *testing.T) {
	if !TypeMatches(TextValue("x"), SqlText) {
		t.Fatal("expected TextValue to match SqlText")
	}
	if TypeMatches(TextValue("x"), SqlInteger) {
		t.Fatal("expected TextValue not to match SqlInteger")
	}
}
