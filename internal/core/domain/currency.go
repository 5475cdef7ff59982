package domain

// currencyFractionDigits maps ISO 4217 codes to their canonical fractional
// digit count. Balance amounts are stored at this scale. Codes missing from
// the map fall back to two digits.
var currencyFractionDigits = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"USD": 2,
	"EUR": 2,
	"GBP": 2,
	"AUD": 2,
	"CAD": 2,
	"CHF": 2,
	"CNY": 2,
	"HKD": 2,
	"SGD": 2,
	"INR": 2,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
}

// CurrencyScale returns the fractional digit count for a currency code.
func CurrencyScale(currency string) int32 {
	if scale, ok := currencyFractionDigits[currency]; ok {
		return scale
	}
	return 2
}
