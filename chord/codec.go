// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chord

import (
	"regexp"
	"strings"
)

// Degree is a scale-degree chord root such as "IV" or "bVII".
type Degree string

// Quality is the UI-level chord type symbol. Each quality maps to a fixed
// suffix in the canonical token.
type Quality string

const (
	QualityMajor          Quality = "major"
	QualityMinor          Quality = "m"
	QualitySeventh        Quality = "7"
	QualityMajorSeventh   Quality = "M7"
	QualityMinorSeventh   Quality = "m7"
	QualityDiminished     Quality = "dim"
	QualityDiminishedSev  Quality = "dim7"
	QualityAugmented      Quality = "aug"
	QualitySus4           Quality = "sus4"
	QualitySus2           Quality = "sus2"
	QualitySeventhSus4    Quality = "7sus4"
	QualityAdd9           Quality = "add9"
	QualityHalfDiminished Quality = "m7-5"
	QualitySixth          Quality = "6"
	QualityMinorSixth     Quality = "m6"
	QualityNinth          Quality = "9"
	QualityMajorNinth     Quality = "M9"
	QualityMinorNinth     Quality = "m9"
)

// degrees is the closed set offered by the chord picker, in display order.
var degrees = []Degree{
	"I", "#I", "bII", "II", "#II", "bIII", "III", "IV", "#IV",
	"bV", "V", "#V", "bVI", "VI", "#VI", "bVII", "VII",
}

// QualityEntry pairs a quality symbol with its canonical suffix.
type QualityEntry struct {
	Symbol Quality `json:"symbol"`
	Suffix string  `json:"suffix"`
}

var qualities = []QualityEntry{
	{QualityMajor, ""},
	{QualityMinor, "m"},
	{QualitySeventh, "7"},
	{QualityMajorSeventh, "maj7"},
	{QualityMinorSeventh, "m7"},
	{QualityDiminished, "dim"},
	{QualityDiminishedSev, "dim7"},
	{QualityAugmented, "aug"},
	{QualitySus4, "sus4"},
	{QualitySus2, "sus2"},
	{QualitySeventhSus4, "7sus4"},
	{QualityAdd9, "add9"},
	{QualityHalfDiminished, "m7b5"},
	{QualitySixth, "6"},
	{QualityMinorSixth, "m6"},
	{QualityNinth, "9"},
	{QualityMajorNinth, "maj9"},
	{QualityMinorNinth, "m9"},
}

var (
	suffixBySymbol = make(map[Quality]string, len(qualities))
	symbolBySuffix = make(map[string]Quality, len(qualities))
	degreeSet      = make(map[Degree]bool, len(degrees))
)

func init() {
	for _, q := range qualities {
		suffixBySymbol[q.Symbol] = q.Suffix
		symbolBySuffix[q.Suffix] = q.Symbol
	}
	for _, d := range degrees {
		degreeSet[d] = true
	}
}

// Numeral alternatives are ordered longest first; Go regexps prefer the
// leftmost alternative.
var (
	tokenPattern = regexp.MustCompile(`^([#b]?)((?i:VII|VI|IV|V|III|II|I))(.*)$`)
	bassPattern  = regexp.MustCompile(`^([#b]?)((?i:VII|VI|IV|V|III|II|I))$`)
)

// Token is the structured form of one chord slot.
type Token struct {
	Degree  Degree  `json:"degree"`
	Quality Quality `json:"quality"`
	Bass    Degree  `json:"bass"`
}

// IsZero reports whether t represents "no chord".
func (t Token) IsZero() bool {
	return t.Degree == ""
}

// Parse splits a canonical token such as "IVmaj7/V" into its parts.
// Unparseable input yields the zero Token and an unknown suffix yields
// QualityMajor; neither is an error.
func Parse(raw *string) Token {
	if raw == nil {
		return Token{}
	}

	main, bass, _ := strings.Cut(*raw, "/")

	m := tokenPattern.FindStringSubmatch(main)
	if m == nil {
		return Token{}
	}

	quality, ok := symbolBySuffix[m[3]]
	if !ok {
		quality = QualityMajor
	}

	return Token{
		Degree:  Degree(m[1] + strings.ToUpper(m[2])),
		Quality: quality,
		Bass:    parseBass(bass),
	}
}

// ParseString is Parse for a plain string; the empty string is "no chord".
func ParseString(raw string) Token {
	if raw == "" {
		return Token{}
	}
	return Parse(&raw)
}

func parseBass(s string) Degree {
	m := bassPattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return Degree(m[1] + strings.ToUpper(m[2]))
}

// Build assembles the canonical token. It returns nil when degree is empty.
// An empty or unknown quality is treated as major.
func Build(degree Degree, quality Quality, bass Degree) *string {
	if degree == "" {
		return nil
	}

	s := string(degree) + suffixBySymbol[quality]
	if bass != "" {
		s += "/" + string(bass)
	}
	return &s
}

// String returns the canonical token, or "" for the zero Token.
func (t Token) String() string {
	s := Build(t.Degree, t.Quality, t.Bass)
	if s == nil {
		return ""
	}
	return *s
}

// Suffix returns the canonical suffix for q.
func Suffix(q Quality) (string, bool) {
	s, ok := suffixBySymbol[q]
	return s, ok
}

// IsDegree reports whether d is one of the picker's degree symbols.
func IsDegree(d Degree) bool {
	return degreeSet[d]
}

// Degrees returns the picker's degree symbols in display order.
func Degrees() []Degree {
	out := make([]Degree, len(degrees))
	copy(out, degrees)
	return out
}

// Qualities returns the quality symbols in display order.
func Qualities() []Quality {
	out := make([]Quality, len(qualities))
	for i, q := range qualities {
		out[i] = q.Symbol
	}
	return out
}
