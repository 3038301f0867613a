package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Egyptian mobile numbers: 11 digits starting with 010, 011, 012 or 015.
var mobileRe = regexp.MustCompile(`^01[0125]\d{8}$`)

// National IDs are 14 digits.
var nidRe = regexp.MustCompile(`^\d{14}$`)

const MaxReasonLength = 200

func ValidMobile(s string) bool {
	return mobileRe.MatchString(s)
}

func ValidNID(s string) bool {
	return nidRe.MatchString(s)
}

// ValidateReason checks the free-text reason attached to an edit request.
// Returns an empty string when the reason is acceptable.
func ValidateReason(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return "reason is required"
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return "reason must not exceed 200 characters"
	}
	return ""
}

// ValidateFieldValue applies the field-specific rule for a proposed edit
// value. Returns an empty string when the value is acceptable.
func ValidateFieldValue(field EditableField, value string) string {
	if strings.TrimSpace(value) == "" {
		return "new value is required"
	}
	if field == FieldMobile && !ValidMobile(value) {
		return "mobile must be 11 digits starting with 010, 011, 012 or 015"
	}
	return ""
}
