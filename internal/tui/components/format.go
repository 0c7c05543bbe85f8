package components

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Currency formats a money amount rounded to cents with thousands separators.
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	cents := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if cents.IsNegative() {
		sign = "-"
		cents = cents.Abs()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", cents.InexactFloat64())
}

// CurrencyLabel formats an axis tick: whole dollars with separators.
func CurrencyLabel(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return sign + "$" + humanize.FormatFloat("#,###.", math.Round(v))
}

// Percent formats a fraction as a percentage with two decimals.
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// SignedPercent is Percent with an explicit sign.
func SignedPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}

// PercentLabel formats an alpha axis tick.
func PercentLabel(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// PeriodLabel formats an equity x tick as a period count.
func PeriodLabel(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// YearsLabel formats an alpha x tick in years.
func YearsLabel(v float64) string {
	return fmt.Sprintf("%.1fy", v)
}
