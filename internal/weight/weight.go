// Package weight resolves a product name to its unit material weight.
package weight

import (
	"strings"

	"github.com/shopspring/decimal"
)

type entry struct {
	Pattern string
	Kg      decimal.Decimal
}

func kg(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// Substring patterns tried in declaration order; the first one contained in
// the upper-cased name wins. Overlapping keys (a size code inside a longer
// name) resolve by this order alone.
var table = []entry{
	{"2X5", kg("0.05")}, {"3X5", kg("0.071")}, {"5X5", kg("0.091")}, {"7X5", kg("0.128")},
	{"10X5", kg("0.184")}, {"15X5", kg("0.261")},
	{"2X7", kg("0.07")}, {"10X7", kg("0.329")}, {"15X7", kg("0.5")}, {"20X7", kg("0.664")},
	{"25X7", kg("0.822")}, {"30X7", kg("0.987")}, {"35X7", kg("1.167")}, {"40X7", kg("1.31")},
	{"2X8", kg("0.094")}, {"10X8", kg("0.422")}, {"15X8", kg("0.614")}, {"20X8", kg("0.812")},
	{"25X8", kg("1.024")}, {"30X8", kg("1.207")}, {"35X8", kg("1.431")}, {"40X8", kg("1.619")},
	{"BATISMO", kg("0.04")}, {"CRISMA", kg("0.04")}, {"COMUNHÃO", kg("0.04")}, {"SACRAMENTO", kg("0.04")},
	{"10X2,7", kg("0.057")}, {"15X2,7", kg("0.089")}, {"20X2,7", kg("0.117")}, {"25X2,7", kg("0.145")},
	{"30X2,7", kg("0.168")}, {"35X2,7", kg("0.198")}, {"40X2,7", kg("0.224")},
	{"20X3,5", kg("0.173")}, {"25X3,5", kg("0.216")}, {"30X3,5", kg("0.259")}, {"35X3,5", kg("0.3")},
	{"40X3,5", kg("0.338")},
	{"NÚMERO 3", kg("0.148")}, {"NÚMERO 5", kg("0.168")}, {"NÚMERO 6", kg("0.2")}, {"NÚMERO 8", kg("0.248")},
	{"PALITO", kg("0.48")}, {"LITÚRGICA", kg("1.7")}, {"LIBRA", kg("0.85")},
	{"CORAÇÃO P", kg("0.101")}, {"CORAÇÃO G", kg("0.029")}, {"RECHAUD", kg("0.05")},
}

var votiveMarkers = []string{"VOTIVA", "7 DIAS"}

type Estimator struct {
	defaultKg decimal.Decimal
	votiveKg  decimal.Decimal
}

func NewEstimator(defaultKg, votiveKg float64) *Estimator {
	return &Estimator{
		defaultKg: decimal.NewFromFloat(defaultKg),
		votiveKg:  decimal.NewFromFloat(votiveKg),
	}
}

// Estimate always returns a weight: the first table match, the votive weight
// when only a votive/7-day marker is present, or the global default.
func (e *Estimator) Estimate(productName string) decimal.Decimal {
	name := strings.ToUpper(productName)
	for _, ent := range table {
		if strings.Contains(name, ent.Pattern) {
			return ent.Kg
		}
	}
	for _, marker := range votiveMarkers {
		if strings.Contains(name, marker) {
			return e.votiveKg
		}
	}
	return e.defaultKg
}
