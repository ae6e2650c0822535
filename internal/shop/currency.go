package shop

import (
	"fmt"
	"sort"
)

// CurrencyDef describes the display currency. Amounts are never converted;
// the code is only a label on reports and invoices.
type CurrencyDef struct {
	Code   string
	Name   string
	Symbol string
}

var Currencies = map[string]CurrencyDef{
	"EGP": {Code: "EGP", Name: "Egyptian Pound", Symbol: "E£"},
	"SAR": {Code: "SAR", Name: "Saudi Riyal", Symbol: "SR"},
	"AED": {Code: "AED", Name: "UAE Dirham", Symbol: "AED"},
	"KWD": {Code: "KWD", Name: "Kuwaiti Dinar", Symbol: "KD"},
	"JOD": {Code: "JOD", Name: "Jordanian Dinar", Symbol: "JD"},
	"MAD": {Code: "MAD", Name: "Moroccan Dirham", Symbol: "MAD"},
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$"},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€"},
	"GBP": {Code: "GBP", Name: "Pound Sterling", Symbol: "£"},
}

func ValidCurrency(code string) bool {
	_, ok := Currencies[code]
	return ok
}

// FormatAmount renders m followed by the currency code, e.g. "75.00 EGP".
// Unknown codes are printed as given.
func FormatAmount(m Money, currency string) string {
	if currency == "" {
		return m.String()
	}
	return fmt.Sprintf("%s %s", m, currency)
}

// CurrencyCodes returns the supported codes sorted.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(Currencies))
	for code := range Currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
