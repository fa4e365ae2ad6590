package format

import "strings"

var namePrefixes = map[string]bool{
	"de": true, "da": true, "del": true, "della": true, "di": true,
	"du": true, "el": true, "la": true, "le": true, "van": true,
	"von": true, "der": true, "den": true,
}

var nameSuffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
	"v": true, "esq": true, "phd": true, "md": true, "dds": true,
}

// Name title-cases a personal name, keeping particles like "van" or "de"
// lowercase unless they start the name, and suffixes like "jr" lowercase.
func Name(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	words := strings.Fields(trimmed)
	for i, word := range words {
		lower := strings.ToLower(word)
		switch {
		case namePrefixes[lower] && i > 0:
			words[i] = lower
		case nameSuffixes[lower]:
			words[i] = lower
		default:
			words[i] = capitalize(word)
		}
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(strings.ToLower(word))
	first := runes[0]
	if first >= 'a' && first <= 'z' {
		runes[0] = first - 'a' + 'A'
	}
	return string(runes)
}
