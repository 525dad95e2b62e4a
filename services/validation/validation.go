package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegexp = regexp.MustCompile(`^(\+91|91)?[6-9]\d{9}$`)
	spaceRegexp = regexp.MustCompile(`\s+`)
)

// indianStates are the 36 states and union territories accepted by the shipping form.
var indianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Delhi", "Jammu and Kashmir", "Ladakh", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Lakshadweep", "Puducherry",
	"Andaman and Nicobar Islands",
}

func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// ValidateIndianPhoneNumber accepts 10-digit mobile numbers starting with 6-9,
// with or without a +91/91 country prefix. Whitespace is ignored.
func ValidateIndianPhoneNumber(phone string) bool {
	return phoneRegexp.MatchString(spaceRegexp.ReplaceAllString(phone, ""))
}

func ValidateIndianState(state string) bool {
	trimmed := strings.TrimSpace(state)
	for _, validState := range indianStates {
		if strings.EqualFold(validState, trimmed) {
			return true
		}
	}
	return false
}

// GetValidationMessage returns a fixed user-facing message when the value fails the
// validator that belongs to the field, or "" on success. Unknown fields are not
// validated at all.
func GetValidationMessage(field string, value string) string {
	switch field {
	case "email":
		if !ValidateEmail(value) {
			return "Please enter a valid email address"
		}
	case "phone":
		if !ValidateIndianPhoneNumber(value) {
			return "Please enter a valid Indian phone number (10 digits starting with 6-9)"
		}
	case "state":
		if !ValidateIndianState(value) {
			return "Please enter a valid Indian state"
		}
	}
	return ""
}
