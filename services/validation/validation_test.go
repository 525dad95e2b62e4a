package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"your.email@example.com", true},
		{"marc.grol+tag@gmail.com", true},
		{"bad", false},
		{"no-at-sign.com", false},
		{"no-dot-after@at", false},
		{"spaces in@local.part", false},
		{"", false},
	}
	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateEmail(tc.email))
		})
	}
}

func TestValidateIndianPhoneNumber(t *testing.T) {
	testCases := []struct {
		phone string
		valid bool
	}{
		{"9876543210", true},
		{"6123456789", true},
		{"919876543210", true},
		{"+919876543210", true},
		{"+91 98765 43210", true}, // internal spaces are stripped
		{"12345", false},
		{"5876543210", false}, // first digit must be 6-9
		{"98765432101", false},
		{"", false},
	}
	for _, tc := range testCases {
		t.Run(tc.phone, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateIndianPhoneNumber(tc.phone))
		})
	}
}

func TestValidateIndianState(t *testing.T) {
	testCases := []struct {
		state string
		valid bool
	}{
		{"Maharashtra", true},
		{"delhi", true}, // case-insensitive
		{"TAMIL NADU", true},
		{" Kerala ", true}, // surrounding whitespace is ignored
		{"Atlantis", false},
		{"", false},
	}
	for _, tc := range testCases {
		t.Run(tc.state, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateIndianState(tc.state))
		})
	}
}

func TestGetValidationMessage(t *testing.T) {
	assert.Equal(t, "", GetValidationMessage("email", "a@b.com"))
	assert.Equal(t, "Please enter a valid email address", GetValidationMessage("email", "bad"))
	assert.Equal(t, "Please enter a valid Indian phone number (10 digits starting with 6-9)", GetValidationMessage("phone", "12345"))
	assert.Equal(t, "Please enter a valid Indian state", GetValidationMessage("state", "Atlantis"))

	// unknown fields are not validated
	assert.Equal(t, "", GetValidationMessage("zipCode", "whatever"))
}
