package extract

import (
	"regexp"
	"strings"
)

type CleanFunc func(string) string

// CleanString applies the given cleaners left to right.
func CleanString(str string, cleaners ...CleanFunc) string {
	cleaned := str
	for _, clean := range cleaners {
		cleaned = clean(cleaned)
	}

	return cleaned
}

func RemovePrefix(prefix string) CleanFunc {
	return func(str string) string {
		return strings.TrimPrefix(str, prefix)
	}
}

func RemoveSuffix(suffix string) CleanFunc {
	return func(str string) string {
		return strings.TrimSuffix(str, suffix)
	}
}

var spaceRun = regexp.MustCompile(`\s+`)

// OneLine collapses all whitespace runs, newlines included, into single
// spaces.
func OneLine(str string) string {
	return spaceRun.ReplaceAllString(str, " ")
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// FirstYear extracts the first 4-digit run from str, or "".
func FirstYear(str string) string {
	return yearPattern.FindString(str)
}
