package main

import (
	"regexp"

	"github.com/chotchki/elephantcore/internal/constants"
)

// regexpMatcher wraps a compiled pattern so inspect can pass around a
// nil *regexpMatcher to mean "no --grep filter given".
type regexpMatcher struct {
	re *regexp.Regexp
}

// compileRowPattern builds the regex inspect's --grep flag matches
// row values against, case-insensitive unless told otherwise.
func compileRowPattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// rowMatches reports whether any column of values matches re. A NULL
// column (a nil Value) never matches.
func rowMatches(values []constants.Value, re *regexp.Regexp) bool {
	for _, v := range values {
		if v == nil {
			continue
		}
		if re.MatchString(v.String()) {
			return true
		}
	}
	return false
}
