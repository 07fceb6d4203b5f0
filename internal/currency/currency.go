// Package currency formats amounts for display in the user's preferred
// currency. Amounts are currency-agnostic numbers; the server stores no
// denomination with them.
package currency

import (
	"fmt"
	"strings"
)

// symbols maps the supported display currencies to their prefixes.
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"AUD": "A$",
	"CAD": "C$",
}

// Codes returns the selectable currency codes in a fixed order.
func Codes() []string {
	return []string{"USD", "EUR", "GBP", "JPY", "INR", "AUD", "CAD"}
}

// Symbol returns the display symbol for a currency code, or the code itself
// when no symbol is known.
func Symbol(code string) string {
	if sym, ok := symbols[code]; ok {
		return sym
	}
	return code
}

// Format renders an amount with its currency symbol, two decimal places and
// thousands separators. Unknown codes fall back to "<amount> <code>".
func Format(amount float64, code string) string {
	sym, ok := symbols[code]
	if !ok {
		return fmt.Sprintf("%.2f %s", amount, code)
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	intPart, fracPart, _ := strings.Cut(whole, ".")

	return sign + sym + groupThousands(intPart) + "." + fracPart
}

// groupThousands inserts comma separators into a digit string.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
