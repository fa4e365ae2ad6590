package format

import (
	"strconv"
	"strings"
)

// localeSeparators returns the digit-group and decimal separators for a BCP 47
// locale tag. Only the separator conventions vary; digits are always latin.
func localeSeparators(locale string) (group, dec string) {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	switch lang {
	case "de", "es", "it", "nl", "pt", "id", "tr":
		return ".", ","
	case "fr", "ru", "sv", "fi", "pl", "cs":
		return " ", ","
	default:
		return ",", "."
	}
}

// Currency renders an amount in whole currency units with grouped digits and
// the configured symbol placed before or after the number.
func Currency(amount float64, symbol string, decimals int, placement, locale string) string {
	if decimals < 0 {
		decimals = 0
	}
	group, dec := localeSeparators(locale)

	neg := amount < 0
	if neg {
		amount = -amount
	}
	fixed := strconv.FormatFloat(amount, 'f', decimals, 64)
	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	writeGrouped(&b, intPart, group)
	if fracPart != "" {
		b.WriteString(dec)
		b.WriteString(fracPart)
	}

	if placement == "after" {
		return b.String() + symbol
	}
	if neg {
		return "-" + symbol + b.String()[1:]
	}
	return symbol + b.String()
}

func writeGrouped(b *strings.Builder, digits, sep string) {
	n := len(digits)
	for i, r := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
}
