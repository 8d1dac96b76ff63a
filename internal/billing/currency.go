package billing

import "fmt"

// CurrencyCode is the fixed billing currency. The tool bills in a single
// currency format; locale generalization is out of scope.
const CurrencyCode = "MYR"

// FormatMoney formats a fractional amount as "RM123.45".
func FormatMoney(v float64) string {
	return fmt.Sprintf("RM%.2f", v)
}

// FormatWholeMoney formats a rounded total as "RM123.00".
func FormatWholeMoney(n int) string {
	return fmt.Sprintf("RM%d.00", n)
}
