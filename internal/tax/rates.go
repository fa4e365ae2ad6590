// Package tax holds the static jurisdiction-to-rate table used when computing
// invoice totals. Rates are decimal fractions (0.0725 = 7.25%) and are an
// input to the computation engine, never computed.
package tax

import (
	"sort"
	"strings"
)

// Table maps a jurisdiction code to its sales tax rate.
type Table map[string]float64

// Rate resolves a jurisdiction code. Unknown or blank codes resolve to 0,
// not an error.
func (t Table) Rate(code string) float64 {
	return t[strings.ToUpper(strings.TrimSpace(code))]
}

// Codes returns the known jurisdiction codes in sorted order.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StateRates is the built-in US state sales tax table.
var StateRates = Table{
	"AL": 0.04,
	"AK": 0.00,
	"AZ": 0.056,
	"AR": 0.065,
	"CA": 0.0725,
	"CO": 0.029,
	"CT": 0.0635,
	"DE": 0.00,
	"FL": 0.06,
	"GA": 0.04,
	"HI": 0.04,
	"ID": 0.06,
	"IL": 0.0625,
	"IN": 0.07,
	"IA": 0.06,
	"KS": 0.065,
	"KY": 0.06,
	"LA": 0.0445,
	"ME": 0.055,
	"MD": 0.06,
	"MA": 0.0625,
	"MI": 0.06,
	"MN": 0.06875,
	"MS": 0.07,
	"MO": 0.04225,
	"MT": 0.00,
	"NE": 0.055,
	"NV": 0.0685,
	"NH": 0.00,
	"NJ": 0.06625,
	"NM": 0.05125,
	"NY": 0.04,
	"NC": 0.0475,
	"ND": 0.05,
	"OH": 0.0575,
	"OK": 0.045,
	"OR": 0.00,
	"PA": 0.06,
	"RI": 0.07,
	"SC": 0.06,
	"SD": 0.045,
	"TN": 0.07,
	"TX": 0.0625,
	"UT": 0.061,
	"VT": 0.06,
	"VA": 0.053,
	"WA": 0.065,
	"WV": 0.06,
	"WI": 0.05,
	"WY": 0.04,
	"DC": 0.06,
}
