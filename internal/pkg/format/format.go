// Package format renders numbers, prices and timestamps as display strings.
// Every function is total: absent or invalid input maps to a fixed
// placeholder instead of an error.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder is rendered for values that are absent or unknown
const Placeholder = "—"

// JS Date range in seconds; timestamps beyond it render as Placeholder
const maxEpochSeconds = 8_640_000_000_000

const (
	dateLayout      = "02/01/2006, 15:04"
	shortDateLayout = "02/01/06, 15:04"
)

// Currency renders v as USD with two decimals and thousands separators,
// e.g. "$1,234.50" and "-$5.00"
func Currency(v float64) string {
	neg, digits := fixed(v, 2)
	if neg {
		return "-$" + digits
	}
	return "$" + digits
}

// OptionalCurrency renders an optional amount, nil being "$0.00"
func OptionalCurrency(v *float64) string {
	if v == nil {
		return Currency(0)
	}
	return Currency(*v)
}

// SignedCurrency renders the magnitude of v with an explicit sign,
// e.g. "+$12.00" and "-$3.00". Negative values render exactly like Currency.
func SignedCurrency(v float64) string {
	if !finite(v) {
		v = 0
	}
	if v < 0 {
		return "-" + Currency(-v)
	}
	return "+" + Currency(v)
}

// Number renders v with two decimals and thousands separators
func Number(v float64) string {
	neg, digits := fixed(v, 2)
	if neg {
		return "-" + digits
	}
	return digits
}

// OptionalNumber renders an optional value, nil being "0.00"
func OptionalNumber(v *float64) string {
	if v == nil {
		return Number(0)
	}
	return Number(*v)
}

// PriceInCents renders a probability price in cents: 0.61 is "61¢".
// Positive prices under one cent render as "<1¢" rather than "0¢".
func PriceInCents(price float64) string {
	if !finite(price) || price <= 0 {
		return "0¢"
	}
	if price < 0.01 {
		return "<1¢"
	}
	return strconv.FormatFloat(roundHalfUp(price*100), 'f', 0, 64) + "¢"
}

// Percent renders v with two decimals and an explicit plus sign for
// non-negative values, e.g. "+12.35%". Rounding applies to the exact
// binary value, so 1.005 (stored just below) renders "+1.00%".
func Percent(v float64) string {
	if !finite(v) {
		v = 0
	}
	s := exactDecimal(math.Abs(v)).StringFixed(2)
	if v >= 0 {
		return "+" + s + "%"
	}
	if s == "0.00" {
		return "-0.00%"
	}
	return "-" + s + "%"
}

// Count renders an integral quantity such as a rank or trade count
func Count(v float64) string {
	if !finite(v) {
		return Placeholder
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Date renders epoch seconds as "dd/mm/yyyy, hh:mm" in loc. Zero and
// out-of-range timestamps render as Placeholder.
func Date(epochSeconds int64, loc *time.Location) string {
	return layoutDate(epochSeconds, loc, dateLayout)
}

// ShortDate is Date with a two-digit year, used for chart labels
func ShortDate(epochSeconds int64, loc *time.Location) string {
	return layoutDate(epochSeconds, loc, shortDateLayout)
}

func layoutDate(epochSeconds int64, loc *time.Location, layout string) string {
	if epochSeconds == 0 || epochSeconds > maxEpochSeconds || epochSeconds < -maxEpochSeconds {
		return Placeholder
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(epochSeconds, 0).In(loc).Format(layout)
}

// fixed rounds v half away from zero and groups the integer digits
func fixed(v float64, places int32) (bool, string) {
	if !finite(v) {
		v = 0
	}
	s := decimal.NewFromFloat(math.Abs(v)).StringFixed(places)
	intPart, frac, _ := strings.Cut(s, ".")
	return v < 0, group(intPart) + "." + frac
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// exactDecimal converts a finite float64 to the decimal equal to its exact
// binary value: mant * 2^-k == mant * 5^k * 10^-k
func exactDecimal(v float64) decimal.Decimal {
	if v == 0 {
		return decimal.Zero
	}
	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	k := int64(-exp)
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, five), int32(-k))
}

// roundHalfUp matches JavaScript Math.round
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
