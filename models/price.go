package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySuffix is appended to every displayed price.
const CurrencySuffix = "PLN"

// FormatPrice renders a price with two fraction digits, a comma decimal
// separator and the currency suffix, e.g. "70,99 PLN".
func FormatPrice(price decimal.Decimal) string {
	return strings.Replace(price.StringFixed(2), ".", ",", 1) + " " + CurrencySuffix
}

// ParsePrice reads a displayed price back into a decimal. It accepts the
// currency suffix and thousands grouping by spaces, dots or commas. When both
// a comma and a dot appear the later one is the decimal separator, so
// "2.230,99 PLN" and "2,230.99" are the same price. A lone comma is always
// decimal ("70,99"); a lone dot is decimal unless it splits off exactly three
// digits from a short leading group ("1.234" is 1234, "70.99" is 70.99).
func ParsePrice(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, CurrencySuffix)
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, "\u00a0", "")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("empty price %q", s)
	}

	whole, frac, hasFrac := splitDecimal(raw)
	digits, ok := ungroup(whole)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid price %q: bad digit grouping", s)
	}
	if hasFrac {
		digits += "." + frac
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return d, nil
}

// splitDecimal finds the decimal separator, if any, and splits raw around it.
func splitDecimal(raw string) (whole, frac string, ok bool) {
	comma, dot := strings.LastIndexByte(raw, ','), strings.LastIndexByte(raw, '.')
	sep := -1
	switch {
	case comma >= 0 && dot >= 0:
		sep = max(comma, dot)
	case comma >= 0:
		if strings.Count(raw, ",") == 1 {
			sep = comma
		}
	case dot >= 0:
		if strings.Count(raw, ".") == 1 && !isGroupedThousands(raw[:dot], raw[dot+1:]) {
			sep = dot
		}
	}
	if sep < 0 {
		return raw, "", false
	}
	return raw[:sep], raw[sep+1:], true
}

func isGroupedThousands(head, tail string) bool {
	head = strings.TrimPrefix(head, "-")
	return len(tail) == 3 && len(head) >= 1 && len(head) <= 3 && head[0] != '0'
}

// ungroup strips one kind of thousands separator from whole, checking that
// every group after the first has exactly three digits.
func ungroup(whole string) (string, bool) {
	sep := ""
	switch {
	case strings.Contains(whole, ",") && strings.Contains(whole, "."):
		return "", false
	case strings.Contains(whole, ","):
		sep = ","
	case strings.Contains(whole, "."):
		sep = "."
	default:
		return whole, true
	}
	groups := strings.Split(whole, sep)
	lead := strings.TrimPrefix(groups[0], "-")
	if len(lead) == 0 || len(lead) > 3 {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}

// MustParsePrice is ParsePrice for fixtures and constants.
func MustParsePrice(s string) decimal.Decimal {
	d, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return d
}
