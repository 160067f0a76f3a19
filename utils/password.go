package utils

import (
	"errors"
	"unicode"
)

// PasswordStrength scores a password 0..5: one point each for length >= 8,
// length >= 12, mixed case, a digit, and a symbol.
func PasswordStrength(password string) int {
	strength := 0
	if len(password) >= 8 {
		strength++
	}
	if len(password) >= 12 {
		strength++
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if hasLower && hasUpper {
		strength++
	}
	if hasDigit {
		strength++
	}
	if hasSymbol {
		strength++
	}
	return strength
}

var (
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters")
	ErrPasswordTooWeak  = errors.New("Password must be very strong")
)

// EnsureStrongPassword rejects anything scoring below the maximum.
func EnsureStrongPassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if PasswordStrength(password) < 5 {
		return ErrPasswordTooWeak
	}
	return nil
}
