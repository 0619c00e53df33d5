package main

import (
	"testing"

	"github.com/chotchki/elephantcore/internal/constants"
)

func TestCompileRowPatternCaseInsensitiveByDefault(t *testing.T) {
	re, err := compileRowPattern("wid", false)
	if err != nil {
		t.Fatalf("compileRowPattern: %v", err)
	}
	if !re.MatchString("WIDGET") {
		t.Fatal("expected case-insensitive match against WIDGET")
	}
}

func TestCompileRowPatternCaseSensitive(t *testing.T) {
	re, err := compileRowPattern("wid", true)
	if err != nil {
		t.Fatalf("compileRowPattern: %v", err)
	}
	if re.MatchString("WIDGET") {
		t.Fatal("expected case-sensitive pattern to reject WIDGET")
	}
	if !re.MatchString("widget") {
		t.Fatal("expected case-sensitive pattern to match widget")
	}
}

func TestCompileRowPatternRejectsInvalidRegex(t *testing.T) {
	if _, err := compileRowPattern("(unclosed", true); err == nil {
		t.Fatal("expected an error compiling an invalid regex")
	}
}

func TestRowMatchesSkipsNullColumns(t *testing.T) {
	re, err := compileRowPattern("hello", true)
	if err != nil {
		t.Fatalf("compileRowPattern: %v", err)
	}
	values := []constants.Value{nil, constants.TextValue("hello there")}
	if !rowMatches(values, re) {
		t.Fatal("expected a match against the non-null column")
	}
}

func TestRowMatchesNoneFound(t *testing.T) {
	re, err := compileRowPattern("zzz", true)
	if err != nil {
		t.Fatalf("compileRowPattern: %v", err)
	}
	values := []constants.Value{constants.TextValue("hello"), constants.IntegerValue(42)}
	if rowMatches(values, re) {
		t.Fatal("expected no match")
	}
}
