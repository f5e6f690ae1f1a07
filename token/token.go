// Package token derives filter-token spellings from property names.
//
// Every property name is published under its own spelling. Names that start
// with a lowercase letter are also published in a segmented spelling, where
// each uppercase letter becomes a separator followed by its lowercase form:
//
//	token.Segment("applicationLogDir") // "application.log.dir"
//
// Names such as UPPER_PROPERTY are never segmented.
package token

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator is inserted before each uppercase letter of a segmented name.
const Separator = '.'

// Token is one spelling under which a property value is published.
type Token struct {
	Name      string
	Segmented bool
}

// Project returns the spellings for key. The identity spelling is always
// first; the segmented spelling follows when Segmentable(key) holds.
func Project(key string) []Token {
	tokens := []Token{{Name: key}}
	if Segmentable(key) {
		tokens = append(tokens, Token{Name: Segment(key), Segmented: true})
	}
	return tokens
}

// Segmentable reports whether key begins with a lowercase letter.
func Segmentable(key string) bool {
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || r == utf8.RuneError {
		return false
	}
	return unicode.IsLower(r)
}

// Segment rewrites key by replacing every uppercase letter with Separator
// followed by its lowercase form. Segment does not check Segmentable.
func Segment(key string) string {
	lower := cases.Lower(language.Und)
	var sb strings.Builder
	sb.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			sb.WriteRune(Separator)
			sb.WriteString(lower.String(string(r)))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
