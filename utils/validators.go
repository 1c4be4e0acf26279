package utils

import "regexp"

var supportedCurrencies = map[string]bool{
	"VND": true,
	"USD": true,
	"EUR": true,
}

// Vietnamese phone format: 10-11 digits, starts with 0
var phonePattern = regexp.MustCompile(`^0\d{9,10}$`)

func ValidCurrency(currency string) bool {
	return supportedCurrencies[currency]
}

// ValidPhone accepts empty (phone is optional) or a Vietnamese mobile number.
func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}
