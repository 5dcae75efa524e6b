package login

import (
	"errors"
	"unicode"
)

const minPasswordLength = 12

// ValidatePasswordPolicy enforces the credential rules for dashboard
// accounts: minimum length plus one character from each class.
func ValidatePasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 12 characters")
	}

	classes := map[string]bool{}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			classes["upper"] = true
		case unicode.IsLower(r):
			classes["lower"] = true
		case unicode.IsDigit(r):
			classes["digit"] = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			classes["symbol"] = true
		}
	}
	if len(classes) < 4 {
		return errors.New("password must include upper, lower, digit and symbol")
	}
	return nil
}
