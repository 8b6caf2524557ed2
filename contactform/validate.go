// ABOUTME: Field validation and formatting for the contact form
// ABOUTME: Provides e-mail validation and Brazilian-style phone masking
package contactform

import (
	"regexp"
	"strings"
)

var (
	emailPattern   = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	nonDigit       = regexp.MustCompile(`\D`)
	areaCode       = regexp.MustCompile(`^(\d{2})\B`)
	subscriberPart = regexp.MustCompile(`(\d)?(\d{4})(\d{4})`)
)

// MaxPhoneDigits is the longest phone number the mask accepts.
const MaxPhoneDigits = 11

// IsEmailValid reports whether s looks like an e-mail address.
func IsEmailValid(s string) bool {
	return emailPattern.MatchString(s)
}

// FormatPhone keeps the digits of s and masks them as (xx) xxxxx-xxxx.
// Partial input is masked as far as it goes.
func FormatPhone(s string) string {
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) > MaxPhoneDigits {
		digits = digits[:MaxPhoneDigits]
	}
	masked := areaCode.ReplaceAllString(digits, "($1) ")
	return subscriberPart.ReplaceAllString(masked, "${1}${2}-${3}")
}

// Validation messages.
const (
	ErrNameRequired = "Name is required"
	ErrEmailInvalid = "Invalid e-mail"
)

// validateName returns the error for a name value, or "".
func validateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return ""
}

// validateEmail returns the error for an e-mail value, or "". Empty is allowed.
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email != "" && !IsEmailValid(email) {
		return ErrEmailInvalid
	}
	return ""
}
