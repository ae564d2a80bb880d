package document

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// findContradictions scans each experience block with a sliding window and
// records stack pairs that exclude each other, unless an exception phrase in
// the window explains the combination. Findings are deduplicated by block,
// rule and line range.
func findContradictions(lines []domain.LineEntry, window int) []Contradiction {
	var order []string
	blocks := make(map[string][]domain.LineEntry)
	for _, l := range lines {
		if l.IsHeading || l.Region != domain.RegionExperience {
			continue
		}
		if _, ok := blocks[l.BlockKey]; !ok {
			order = append(order, l.BlockKey)
		}
		blocks[l.BlockKey] = append(blocks[l.BlockKey], l)
	}

	out := []Contradiction{}
	seen := make(map[string]bool)
	for _, key := range order {
		block := blocks[key]
		for _, rule := range contradictionTable {
			for i, l := range block {
				if !rule.left.MatchString(l.Text) && !rule.right.MatchString(l.Text) {
					continue
				}
				end := i + window
				if end > len(block) {
					end = len(block)
				}
				c, ok := windowContradiction(rule, key, block[i:end])
				if !ok {
					continue
				}
				id := fmt.Sprintf("%s|%s|%d-%d", key, rule.id, c.LineStart, c.LineEnd)
				if seen[id] {
					continue
				}
				seen[id] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func windowContradiction(rule stackContradiction, block string, win []domain.LineEntry) (Contradiction, bool) {
	var left, right bool
	start, end := 0, 0
	texts := make([]string, 0, len(win))
	var hits []string
	for _, l := range win {
		texts = append(texts, l.Text)
		hit := false
		if rule.left.MatchString(l.Text) {
			left, hit = true, true
		}
		if rule.right.MatchString(l.Text) {
			right, hit = true, true
		}
		if hit {
			hits = append(hits, l.Text)
			if start == 0 || l.LineNumber < start {
				start = l.LineNumber
			}
			if l.LineNumber > end {
				end = l.LineNumber
			}
		}
	}
	if !left || !right {
		return Contradiction{}, false
	}
	if rule.exceptions.MatchString(strings.Join(texts, " ")) {
		return Contradiction{}, false
	}
	return Contradiction{Rule: rule.id, Block: block, LineStart: start, LineEnd: end, Text: strings.Join(hits, " / ")}, true
}
