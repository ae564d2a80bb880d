package document

// lineDates returns the date formats found on one line with their first
// match. A bare year is dropped when a more specific format (or the
// ambiguous "May YYYY") matched the same line, so the year inside
// "Mar 2022" is not counted as a separate YYYY usage.
func lineDates(text string) []DateEvidence {
	var out []DateEvidence
	specific := mayDate.MatchString(text)
	for _, p := range dateTable {
		if p.format == DateYear && specific {
			break
		}
		m := p.re.FindString(text)
		if m == "" {
			continue
		}
		out = append(out, DateEvidence{Format: p.format, Match: m, Text: text})
		specific = true
	}
	return out
}

// addDates folds one line's dates into the accumulator.
func (d *DateFormats) addDates(line int, text string) {
	for _, ev := range lineDates(text) {
		ev.Line = line
		if d.Counts[ev.Format] == 0 {
			d.UsedFormats = append(d.UsedFormats, ev.Format)
		}
		d.Counts[ev.Format]++
		d.Evidence = append(d.Evidence, ev)
	}
}

// sortFormats orders used formats by specificity for stable output.
func (d *DateFormats) sortFormats() {
	ordered := make([]DateFormat, 0, len(d.UsedFormats))
	for _, p := range dateTable {
		if d.Counts[p.format] > 0 {
			ordered = append(ordered, p.format)
		}
	}
	d.UsedFormats = ordered
}
