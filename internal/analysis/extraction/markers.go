package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BulletGlyphs are the unambiguous bullet markers. Unlike "-" or "*" they
// almost never occur inside prose.
const BulletGlyphs = "•▪◦●‣➢►"

// textMarkers start a bullet only when followed by whitespace ("-5%" and
// "*nix" are not bullets).
const textMarkers = "-*·–"

// IsGlyph reports whether r is one of BulletGlyphs.
func IsGlyph(r rune) bool { return strings.ContainsRune(BulletGlyphs, r) }

// LeadingMarker splits a line starting with a bullet marker into the marker
// and the remaining content.
func LeadingMarker(line string) (marker, rest string, ok bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	r, size := utf8.DecodeRuneInString(line)
	if r == utf8.RuneError {
		return "", "", false
	}
	tail := line[size:]
	switch {
	case IsGlyph(r):
	case strings.ContainsRune(textMarkers, r):
		next, _ := utf8.DecodeRuneInString(tail)
		if !unicode.IsSpace(next) {
			return "", "", false
		}
	default:
		return "", "", false
	}
	return string(r), strings.TrimSpace(tail), true
}

// Segment is one bullet marker and the text it introduces.
type Segment struct {
	Marker  string
	Content string
}

// SplitMarkers cuts line at every bullet marker it holds. Glyph markers
// split anywhere. Text markers split only on a line that already starts
// with a marker, when they stand alone between spaces and neither neighbour
// is a digit ("Jan 2020 - Present" is a date range). The first segment holds
// the text before the first mid-line marker and carries the leading marker,
// if any.
func SplitMarkers(line string) []Segment {
	rs := []rune(strings.TrimSpace(line))
	cur := Segment{}
	start := 0
	_, _, bulleted := LeadingMarker(line)
	if bulleted {
		cur.Marker = string(rs[0])
		start = 1
	}

	var out []Segment
	var b strings.Builder
	for i := start; i < len(rs); i++ {
		if isMidLineMarker(rs, i, bulleted) {
			cur.Content = strings.TrimSpace(b.String())
			out = append(out, cur)
			cur = Segment{Marker: string(rs[i])}
			b.Reset()
			continue
		}
		b.WriteRune(rs[i])
	}
	cur.Content = strings.TrimSpace(b.String())
	return append(out, cur)
}

// MidLineMarkers counts the markers of line that are not its leading marker.
func MidLineMarkers(line string) int {
	return len(SplitMarkers(line)) - 1
}

func isMidLineMarker(rs []rune, i int, bulleted bool) bool {
	r := rs[i]
	if IsGlyph(r) {
		return true
	}
	if !bulleted || !strings.ContainsRune(textMarkers, r) {
		return false
	}
	if i == 0 || i+1 >= len(rs) || !unicode.IsSpace(rs[i-1]) || !unicode.IsSpace(rs[i+1]) {
		return false
	}
	return !unicode.IsDigit(neighbour(rs, i, -1)) && !unicode.IsDigit(neighbour(rs, i, 1))
}

// neighbour returns the nearest non-space rune from i in direction step.
func neighbour(rs []rune, i, step int) rune {
	for j := i + step; j >= 0 && j < len(rs); j += step {
		if !unicode.IsSpace(rs[j]) {
			return rs[j]
		}
	}
	return 0
}
