package derive

import (
	"strings"
	"unicode"
)

// ExclusionSet holds item names that must never appear as loot, regardless of
// recipe membership.
type ExclusionSet map[string]struct{}

// builtinExclusions are blacklisted unconditionally. Barrels round-trip
// fluids, so dropping them would duplicate the contained item's packaging.
var builtinExclusions = []string{
	"empty-barrel",
}

// NewExclusionSet unions the built-in blacklist with the tokens of the
// configured extra-exclusions string.
func NewExclusionSet(extra string) ExclusionSet {
	set := make(ExclusionSet, len(builtinExclusions))
	for _, name := range builtinExclusions {
		set[name] = struct{}{}
	}
	for _, name := range splitExclusions(extra) {
		set[name] = struct{}{}
	}
	return set
}

func (s ExclusionSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// splitExclusions tokenizes on runs of commas and whitespace. Leading,
// trailing, and doubled separators produce no empty tokens.
func splitExclusions(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
