// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chord

import (
	"regexp"
	"strings"
)

// Full-width Roman numerals and music symbols that users paste in from
// Japanese IMEs.
var notationReplacer = strings.NewReplacer(
	"Ⅰ", "I", "Ⅱ", "II", "Ⅲ", "III", "Ⅳ", "IV",
	"Ⅴ", "V", "Ⅵ", "VI", "Ⅶ", "VII",
	"ⅰ", "I", "ⅱ", "II", "ⅲ", "III", "ⅳ", "IV",
	"ⅴ", "V", "ⅵ", "VI", "ⅶ", "VII",
	"♯", "#", "♭", "b", "＃", "#",
)

var (
	repeatedPipes    = regexp.MustCompile(`\|+`)
	queryWordBreaker = regexp.MustCompile(`[-\s]+`)
)

// Normalize maps full-width numerals and accidentals to their ASCII form.
func Normalize(s string) string {
	return notationReplacer.Replace(s)
}

// NormalizeSlot normalizes a single pattern slot, keeping nil as nil and
// turning blank strings into nil.
func NormalizeSlot(slot *string) *string {
	if slot == nil {
		return nil
	}
	s := strings.TrimSpace(Normalize(*slot))
	if s == "" {
		return nil
	}
	return &s
}

// NormalizeSearchQuery turns display input such as "|Ⅳ||Ⅴ|" or "IV - V"
// into the "IV|V" form stored in the search column.
func NormalizeSearchQuery(q string) string {
	if q == "" {
		return ""
	}

	s := Normalize(q)
	s = repeatedPipes.ReplaceAllString(s, "|")
	s = strings.Trim(s, "|")
	s = strings.TrimSpace(s)
	s = queryWordBreaker.ReplaceAllString(s, "|")
	return repeatedPipes.ReplaceAllString(s, "|")
}

// NormalizeForSearch flattens patterns into the search column format:
// chords within a pattern joined by "|", patterns joined by "||".
// Empty slots are skipped.
func NormalizeForSearch(patterns [][]*string) string {
	parts := make([]string, 0, len(patterns))
	for _, chords := range patterns {
		names := make([]string, 0, len(chords))
		for _, c := range chords {
			if c == nil || *c == "" {
				continue
			}
			names = append(names, Normalize(*c))
		}
		parts = append(parts, strings.Join(names, "|"))
	}
	return strings.Join(parts, "||")
}

// Options is the option set served to the chord picker.
type Options struct {
	Degrees         []string       `json:"degrees"`
	Modifiers       []string       `json:"modifiers"`
	Qualities       []string       `json:"qualities"`
	DegreeSymbols   []Degree       `json:"degree_symbols"`
	QualitySymbols  []QualityEntry `json:"quality_symbols"`
	SlotsPerPattern int            `json:"slots_per_pattern"`
}

// GetOptions returns the picker option tables.
func GetOptions() Options {
	suffixes := make([]string, len(qualities))
	for i, q := range qualities {
		suffixes[i] = q.Suffix
	}
	symbols := make([]QualityEntry, len(qualities))
	copy(symbols, qualities)

	return Options{
		Degrees:         []string{"I", "II", "III", "IV", "V", "VI", "VII"},
		Modifiers:       []string{"", "#", "b"},
		Qualities:       suffixes,
		DegreeSymbols:   Degrees(),
		QualitySymbols:  symbols,
		SlotsPerPattern: SlotsPerPattern,
	}
}
