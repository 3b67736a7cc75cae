package model

import (
	"strings"
	"unicode"
)

// initialisms keep their capitals when a label is derived from a lowercase
// source name, so "user_id" reads "User ID" rather than "User Id".
var initialisms = map[string]struct{}{
	"id":   {},
	"api":  {},
	"url":  {},
	"uri":  {},
	"uuid": {},
	"html": {},
	"http": {},
	"json": {},
	"sql":  {},
}

// DefaultLabeler derives a human-friendly label from a field or record name.
// snake_case, kebab-case, and camelCase all become spaced words, acronym
// runs survive intact ("APIKey" reads "API Key"), and digits split from the
// letters around them.
func DefaultLabeler(name string) string {
	tokens := splitNameTokens(name)
	for i, token := range tokens {
		tokens[i] = labelWord(token)
	}
	return strings.Join(tokens, " ")
}

// splitNameTokens cuts name at separators and at word boundaries inside
// mixed-case runs. An uppercase run ends one rune before a following
// lowercase rune, which is what keeps acronyms whole.
func splitNameTokens(name string) []string {
	var (
		tokens  []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if len(current) > 0 && boundaryBefore(runes, i) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return tokens
}

func boundaryBefore(runes []rune, i int) bool {
	prev, r := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r):
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	}
	return false
}

func labelWord(token string) string {
	lower := strings.ToLower(token)
	if _, ok := initialisms[lower]; ok {
		return strings.ToUpper(lower)
	}
	if len(token) > 1 && token == strings.ToUpper(token) && !strings.ContainsFunc(token, unicode.IsDigit) {
		// An acronym run carved out of a mixed-case name stays as written.
		return token
	}

	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
