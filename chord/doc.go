// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package chord implements the scale-degree chord notation used by patterns.

# Tokens

A slot holds either nothing or a canonical token made of a degree, a
quality suffix and an optional bass degree:

	IV        major on the fourth degree
	bVIImaj7  major seventh on the flat seventh
	IVm7/V    minor seventh over the fifth

Parse and Build convert between the token string and Token:

	t := chord.ParseString("IVmaj7/V") // {IV M7 V}
	s := chord.Build("IV", chord.QualityMajorSeventh, "V")

Parsing never fails. Input that does not start with a degree becomes the
zero Token, and a suffix missing from the quality table becomes
QualityMajor.

# Layout

A pattern is 16 slots: 8 measures of 2 beats. Measures groups the slots
for display; empty measures keep their Index so playback highlighting
still lines up.

# Search

NormalizeForSearch produces the "IV|V|IIIm||…" column used for chord
searches, and NormalizeSearchQuery converts user queries into the same
form.
*/
package chord
