// Package structure parses structure strings: the colon separated, ordered list of modules to run.
package structure

import (
	"strings"

	"github.com/ubuntu/sysfetch/internal/constants"
)

// Split returns the ordered tokens of a structure string.
// A trailing colon ends the structure without adding a token, while other empty tokens, like the
// ones of ":a" or "a::b", are kept and reported as unknown modules.
func Split(structure string) []string {
	if structure == "" {
		return []string{}
	}
	structure = strings.TrimSuffix(structure, string(constants.StructureSeparator))
	return strings.Split(structure, string(constants.StructureSeparator))
}

// OrDefault returns structure, or the default structure when it is empty.
func OrDefault(structure string) string {
	if structure == "" {
		return constants.DefaultStructure
	}
	return structure
}

// Contains returns true if one of the tokens matches name case-insensitively.
func Contains(tokens []string, name string) bool {
	for _, t := range tokens {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}
