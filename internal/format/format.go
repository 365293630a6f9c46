// Package format turns resolved record values into display strings.
//
// Two independent rule sets live here. Value keys off the widget title and is
// what dashboards render with. Field keys off a catalog descriptor's inferred
// format. They can disagree for the same number and are kept separate on
// purpose.
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
)

// MaxFractionDigits caps the fraction digits of a plain grouped number.
const MaxFractionDigits = 3

var (
	currencyTitleWords   = []string{"revenue", "expense", "sales"}
	percentageTitleWords = []string{"rate", "percentage"}
)

// Style is the numeric style chosen for a widget title.
type Style int

const (
	StylePlain Style = iota
	StyleCurrency
	StylePercentage
)

// StyleForTitle applies the title rule: revenue/expense/sales mean currency,
// then rate/percentage mean percentage, otherwise a plain grouped number.
func StyleForTitle(title string) Style {
	lower := strings.ToLower(title)
	for _, w := range currencyTitleWords {
		if strings.Contains(lower, w) {
			return StyleCurrency
		}
	}
	for _, w := range percentageTitleWords {
		if strings.Contains(lower, w) {
			return StylePercentage
		}
	}
	return StylePlain
}

// Value formats v for a widget titled title. Numbers follow StyleForTitle;
// anything else is printed as is and nil becomes "".
func Value(v any, title string) string {
	n, ok := record.AsNumber(v)
	if !ok {
		return passthrough(v)
	}
	switch StyleForTitle(title) {
	case StyleCurrency:
		return Currency(n)
	case StylePercentage:
		return Percentage(n)
	default:
		return Number(n)
	}
}

// Field formats v using the descriptor's inferred format.
func Field(v any, d models.FieldDescriptor) string {
	n, ok := record.AsNumber(v)
	if !ok {
		return passthrough(v)
	}
	switch d.Format {
	case models.FormatCurrency:
		return Currency(n)
	case models.FormatPercentage:
		return Percentage(n)
	case models.FormatInteger:
		return grouped(math.Round(n))
	default:
		return Number(n)
	}
}

// Currency renders whole US dollars with digit grouping, e.g. "$1,250,000".
func Currency(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Sprint(n)
	}
	r := math.Round(n)
	if r < 0 {
		return "-$" + grouped(-r)
	}
	return "$" + grouped(r)
}

// Percentage renders one fraction digit and a percent sign, e.g. "12.5%".
func Percentage(n float64) string {
	return fmt.Sprintf("%.1f%%", n)
}

// Number renders a grouped number with at most MaxFractionDigits fraction
// digits and no trailing zeros, e.g. "5,800" or "215.5".
func Number(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Sprint(n)
	}
	if math.Abs(n) >= exactLimit {
		return grouped(math.Round(n))
	}
	scale := math.Pow10(MaxFractionDigits)
	r := math.Round(n*scale) / scale
	if r == 0 {
		r = 0 // drop negative zero
	}
	return humanize.Commaf(r)
}

// exactLimit bounds the magnitudes that fit int64 and survive scaling by
// 10^MaxFractionDigits. Past it doubles carry no useful fraction digits.
const exactLimit = 1e15

// grouped renders an integral r with digit grouping. Magnitudes past
// exactLimit go through big.Int using the shortest decimal form of r, so 1e20
// prints as 100,000,000,000,000,000,000.
func grouped(r float64) string {
	if math.Abs(r) < exactLimit {
		return humanize.Comma(int64(r))
	}
	i, ok := new(big.Int).SetString(strconv.FormatFloat(r, 'f', -1, 64), 10)
	if !ok {
		return fmt.Sprint(r)
	}
	return humanize.BigComma(i)
}

func passthrough(v any) string {
	if v == nil {
		return ""
	}
	switch record.Classify(v) {
	case record.NodeMapping, record.NodeSequence:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
