package currency

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var pricePattern = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

// Price is a normalized amount + ISO currency code pair.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Normalize converts loosely formatted upstream price values into a Price.
// Numeric values pass through with the fallback currency. Strings are scanned
// for the first decimal group; an explicit fallback currency wins over any
// leading symbol, and EUR is the final default. The second return value is
// false when no amount could be parsed.
func Normalize(raw any, fallback string) (Price, bool) {
	switch v := raw.(type) {
	case nil:
		return Price{}, false
	case int:
		return Price{Amount: float64(v), Currency: currencyOrDefault(fallback, "")}, true
	case int64:
		return Price{Amount: float64(v), Currency: currencyOrDefault(fallback, "")}, true
	case float64:
		return Price{Amount: v, Currency: currencyOrDefault(fallback, "")}, true
	case string:
		return normalizeString(v, fallback)
	default:
		return Price{}, false
	}
}

func normalizeString(raw, fallback string) (Price, bool) {
	cleaned := strings.ReplaceAll(raw, " ", " ")
	match := pricePattern.FindString(cleaned)
	if match == "" {
		return Price{}, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return Price{}, false
	}
	return Price{Amount: amount, Currency: currencyOrDefault(fallback, inferSymbol(raw))}, true
}

func currencyOrDefault(fallback, inferred string) string {
	if fallback != "" {
		return fallback
	}
	if inferred != "" {
		return inferred
	}
	return "EUR"
}

func inferSymbol(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, "$"):
		return "USD"
	case strings.HasPrefix(trimmed, "£"):
		return "GBP"
	case strings.HasPrefix(trimmed, "CHF"):
		return "CHF"
	case strings.HasPrefix(trimmed, "€"):
		return "EUR"
	default:
		return ""
	}
}

// Format renders a price with thousands separators, e.g. "1.240 EUR".
func Format(p Price) string {
	rounded := math.Round(p.Amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	formatted := addThousandsSeparator(fmt.Sprintf("%.0f", rounded), ".")
	if negative {
		formatted = "-" + formatted
	}
	return formatted + " " + p.Currency
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
