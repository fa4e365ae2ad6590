// Package format contains the pure display formatters shared by the invoice
// renderer and the HTTP layer: phone, personal name, postal address, currency
// and date-pattern formatting.
package format

import "strings"

// Phone normalizes a US phone number to (XXX) XXX-XXXX. Inputs with fewer
// than ten digits are partially formatted; anything past ten digits is
// dropped.
func Phone(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) > 10 {
		s = s[:10]
	}
	switch {
	case len(s) < 4:
		return s
	case len(s) < 7:
		return "(" + s[:3] + ") " + s[3:]
	default:
		return "(" + s[:3] + ") " + s[3:6] + "-" + s[6:]
	}
}
