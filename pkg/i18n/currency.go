// Package i18n formats money amounts for user-facing itinerary text.
// Symbols are compiled into the binary, no locale data files are needed.
package i18n

import "fmt"

// currencySymbols maps ISO 4217 currency codes to their display symbol.
// Currencies where the symbol precedes the amount render as "$12.50",
// the rest as "12.50 kr".
var currencySymbols = map[string]struct {
	symbol string
	prefix bool
}{
	"USD": {"$", true},
	"EUR": {"€", true},
	"GBP": {"£", true},
	"JPY": {"¥", true},
	"CNY": {"¥", true},
	"KRW": {"₩", true},
	"INR": {"₹", true},
	"TRY": {"₺", true},
	"BRL": {"R$", true},
	"MXN": {"$", true},
	"CAD": {"$", true},
	"AUD": {"$", true},
	"NZD": {"$", true},
	"SGD": {"$", true},
	"HKD": {"$", true},
	"CHF": {"CHF", true},
	"THB": {"฿", true},
	"AED": {"د.إ", false},
	"SEK": {"kr", false},
	"NOK": {"kr", false},
	"DKK": {"kr", false},
	"CZK": {"Kč", false},
	"PLN": {"zł", false},
}

// FormatAmount returns a human-readable amount string with the currency symbol.
// Examples:
//
//	FormatAmount(15.5, "USD")   → "$15.50"
//	FormatAmount(15.5, "EUR")   → "€15.50"
//	FormatAmount(150.0, "SEK")  → "150.00 kr"
//	FormatAmount(150.0, "XYZ")  → "150.00 XYZ"
func FormatAmount(amount float64, currencyCode string) string {
	info, ok := currencySymbols[currencyCode]
	if !ok {
		return fmt.Sprintf("%.2f %s", amount, currencyCode)
	}
	if info.prefix {
		return fmt.Sprintf("%s%.2f", info.symbol, amount)
	}
	return fmt.Sprintf("%.2f %s", amount, info.symbol)
}
