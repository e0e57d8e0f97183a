package gofpdf

import "strings"

// wrapText splits s into lines whose rendered width, as reported by width,
// stays within maxWidth. Words fill greedily; a word too wide for a whole
// line is hard-split character by character, so a single over-wide
// character is the only thing that may ever exceed the limit.
func wrapText(s string, maxWidth float64, width func(string) float64) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if width(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		if width(word) <= maxWidth {
			current = word
			continue
		}
		rest := []rune(word)
		for len(rest) > 0 {
			n := 0
			for n < len(rest) && width(string(rest[:n+1])) <= maxWidth {
				n++
			}
			if n == 0 {
				n = 1
			}
			lines = append(lines, string(rest[:n]))
			rest = rest[n:]
		}
		current = ""
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
