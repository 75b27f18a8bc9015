package utils

import (
	"path/filepath"
)

// MatchesAnyPattern reports whether the bare entry name matches any ignore pattern.
// Matching is case-sensitive shell-glob matching with filepath.Match semantics.
// A malformed pattern never matches.
func MatchesAnyPattern(entryName string, ignorePatterns []string) bool {
	for _, patternValue := range ignorePatterns {
		isMatched, matchError := filepath.Match(patternValue, entryName)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}

// MalformedPatterns returns the patterns that filepath.Match rejects as syntactically invalid.
func MalformedPatterns(ignorePatterns []string) []string {
	var malformed []string
	for _, patternValue := range ignorePatterns {
		if _, matchError := filepath.Match(patternValue, ""); matchError != nil {
			malformed = append(malformed, patternValue)
		}
	}
	return malformed
}
