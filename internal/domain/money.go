package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Cents is a monetary amount in hundredths of the currency unit.
type Cents int64

// Dollars converts a whole-unit amount to Cents.
func Dollars(n int64) Cents { return Cents(n * 100) }

// Decimal renders the amount as plain decimal text with no grouping, no
// currency symbol and no trailing zeros: 5000000 -> "50000", 123450 -> "1234.5".
func (c Cents) Decimal() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/100, v%100
	if frac == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	fs := fmt.Sprintf("%02d", frac)
	return sign + strconv.FormatInt(whole, 10) + "." + strings.TrimRight(fs, "0")
}

// Float returns the amount in whole units.
func (c Cents) Float() float64 { return float64(c) / 100 }

// amountPattern accepts plain decimal text only: no exponent, hex or grouping.
var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseCents parses a plain decimal amount ("50000", "1234.5", " -12 ").
// Surrounding whitespace is ignored. Amounts finer than a cent are rejected
// rather than rounded; trailing zeros ("1.230") do not count.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	in, neg := s, false
	switch s[0] {
	case '-':
		neg, s = true, s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", in)
	}
	frac += strings.Repeat("0", 2-len(frac))
	if whole == "" {
		whole = "0"
	}
	f, _ := strconv.ParseInt(frac, 10, 64)
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > (math.MaxInt64-f)/100 {
		return 0, fmt.Errorf("amount %q out of range", in)
	}
	v := w*100 + f
	if neg {
		v = -v
	}
	return Cents(v), nil
}
