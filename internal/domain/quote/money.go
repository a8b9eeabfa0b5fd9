package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as "R$ 1234,50": two decimals, comma as the
// decimal separator, no thousands grouping.
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + FormatDecimal(amount)
}

func FormatDecimal(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

// FormatPercent renders a fraction such as 0.5 as "50%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Shift(2).String() + "%"
}
