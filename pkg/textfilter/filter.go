// Package textfilter sanitizes player-typed text before it enters the story.
// The hero name is the only free-form input in the game.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxNameLength is the longest hero name kept after normalization, in runes.
const MaxNameLength = 40

// NameFilter normalizes hero names typed at the name prompt.
type NameFilter struct {
	spaces *regexp.Regexp
	caser  cases.Caser
}

// NewNameFilter creates a name filter with the Brazilian Portuguese caser,
// matching the language of the narrative content.
func NewNameFilter() *NameFilter {
	return &NameFilter{
		spaces: regexp.MustCompile(`\s+`),
		caser:  cases.Title(language.BrazilianPortuguese),
	}
}

// Normalize trims and collapses whitespace, strips control characters,
// truncates overly long names and title-cases single-cased input. Mixed-case
// names like "McCoy" are kept as typed. Returns "" for names with no
// printable content; callers re-prompt in that case.
func (f *NameFilter) Normalize(raw string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)

	name = strings.TrimSpace(f.spaces.ReplaceAllString(name, " "))
	if name == "" {
		return ""
	}

	runes := []rune(name)
	if len(runes) > MaxNameLength {
		name = strings.TrimSpace(string(runes[:MaxNameLength]))
	}

	if name == strings.ToLower(name) || name == strings.ToUpper(name) {
		return f.caser.String(strings.ToLower(name))
	}
	return name
}
