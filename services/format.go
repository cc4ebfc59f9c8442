package services

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// currency display symbols used by the finance team.
var monedaSymbols = map[string]string{
	"PEN": "S/",
	"USD": "US$",
}

// FormatMoney formats an amount with thousands separators, two decimal places
// and the display symbol of the given ISO currency code (e.g. "S/ 1,234.50").
// Unknown codes fall back to the code itself as prefix.
func FormatMoney(amount float64, moneda string) string {
	symbol, ok := monedaSymbols[moneda]
	if !ok {
		symbol = moneda
	}

	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := symbol + " " + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// formatHours renders an hour figure without trailing noise: whole values
// without decimals, fractional values with up to two decimal places.
func formatHours(h float64) string {
	if h == math.Trunc(h) {
		return fmt.Sprintf("%.0f", h)
	}
	return strings.TrimRight(fmt.Sprintf("%.2f", h), "0")
}

// formatPct renders a 0-1 fraction as a percentage figure ("10", "7.5").
func formatPct(pct float64) string {
	return formatHours(pct * 100)
}

// FormatPeriodo renders a billing period as shown on report headers.
func FormatPeriodo(inicio, fin time.Time) string {
	return inicio.Format("02/01/2006") + " - " + fin.Format("02/01/2006")
}
