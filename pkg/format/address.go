package format

import (
	"regexp"
	"strings"
)

var stateAbbrevs = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true, "co": true,
	"ct": true, "de": true, "fl": true, "ga": true, "hi": true, "id": true,
	"il": true, "in": true, "ia": true, "ks": true, "ky": true, "la": true,
	"me": true, "md": true, "ma": true, "mi": true, "mn": true, "ms": true,
	"mo": true, "mt": true, "ne": true, "nv": true, "nh": true, "nj": true,
	"nm": true, "ny": true, "nc": true, "nd": true, "oh": true, "ok": true,
	"or": true, "pa": true, "ri": true, "sc": true, "sd": true, "tn": true,
	"tx": true, "ut": true, "vt": true, "va": true, "wa": true, "wv": true,
	"wi": true, "wy": true, "dc": true,
}

var directionAbbrevs = map[string]bool{
	"nw": true, "ne": true, "sw": true, "se": true,
	"nnw": true, "nne": true, "ene": true, "ese": true,
	"sse": true, "ssw": true, "wsw": true, "wnw": true,
}

var streetAbbrevs = map[string]bool{
	"ave": true, "avenue": true, "rd": true, "road": true, "blvd": true,
	"boulevard": true, "ln": true, "lane": true, "dr": true, "drive": true,
	"ct": true, "court": true, "pl": true, "place": true, "pkwy": true,
	"parkway": true, "apt": true, "apartment": true, "ste": true,
	"suite": true, "unit": true, "po": true, "box": true, "st": true,
	"street": true,
}

var (
	zipPattern     = regexp.MustCompile(`^\d{5}`)
	ordinalPattern = regexp.MustCompile(`^\d+(st|nd|rd|th)$`)
	digitPattern   = regexp.MustCompile(`^\d`)
)

// Address normalizes capitalization line by line: street abbreviations and
// ordinary words are title-cased, directionals (NW, SE) and two-letter state
// codes near the end of a line are uppercased, numbers pass through.
func Address(value string) string {
	if value == "" {
		return value
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = formatAddressLine(line)
	}
	return strings.Join(lines, "\n")
}

func formatAddressLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return line
	}
	words := strings.Fields(trimmed)
	for i, word := range words {
		clean := strings.Trim(word, ".,")
		lower := strings.ToLower(clean)

		switch {
		case directionAbbrevs[lower], len(word) == 1 && isDirectionLetter(lower):
			words[i] = strings.ToUpper(word)
		case stateAbbrevs[lower] && len(clean) == 2 && isLikelyState(words, i):
			words[i] = strings.ToUpper(word)
		case digitPattern.MatchString(word):
			if ordinalPattern.MatchString(strings.ToLower(word)) {
				words[i] = strings.ToLower(word)
			}
			// other numerics (house numbers, ZIPs) stay as written
		case streetAbbrevs[lower]:
			words[i] = capitalize(word)
		default:
			words[i] = capitalize(word)
		}
	}
	return strings.Join(words, " ")
}

func isDirectionLetter(lower string) bool {
	return lower == "n" || lower == "s" || lower == "e" || lower == "w"
}

// isLikelyState treats a two-letter candidate as a state code when it sits in
// the last three words of the line or is followed by a ZIP.
func isLikelyState(words []string, i int) bool {
	if i >= len(words)-3 {
		return true
	}
	return i < len(words)-1 && zipPattern.MatchString(words[i+1])
}
