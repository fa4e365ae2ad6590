package render

import "strings"

// Text metrics are approximated with fixed per-point factors so layout is
// deterministic and independent of any font backend. The line height factor
// matches the screen renderer; the width factor is the average Helvetica
// glyph advance.
const (
	lineHeightFactor = 0.35  // mm of line height per font point
	charWidthFactor  = 0.175 // mm of advance per font point per rune
)

// lineHeight returns the height in mm of one text line at size points.
func lineHeight(size float64) float64 {
	return size * lineHeightFactor
}

// textWidth estimates the rendered width in mm of a single line.
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * charWidthFactor
}

// wrapText greedily wraps text to maxWidth mm at the given size. Words wider
// than the column are split hard. Empty input yields no lines.
func wrapText(text string, maxWidth, size float64) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxWidth <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}
		current := ""
		for _, word := range words {
			for textWidth(word, size) > maxWidth {
				// Hard-split an oversized word at the column edge.
				cut := maxRunes(maxWidth, size)
				runes := []rune(word)
				if cut >= len(runes) || cut < 1 {
					break
				}
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				lines = append(lines, string(runes[:cut]))
				word = string(runes[cut:])
			}
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if textWidth(candidate, size) <= maxWidth || current == "" {
				current = candidate
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// maxRunes is the rune count that fits maxWidth at size.
func maxRunes(maxWidth, size float64) int {
	perRune := size * charWidthFactor
	if perRune <= 0 {
		return 1
	}
	return int(maxWidth / perRune)
}

// measuredHeight returns lines x lineHeight for text wrapped to width.
func measuredHeight(text string, width, size float64) float64 {
	return float64(len(wrapText(text, width, size))) * lineHeight(size)
}
