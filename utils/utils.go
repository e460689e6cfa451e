package utils

import (
	// Go Internal Packages
	"strings"
)

// MaskPhone hides the middle of a phone number for log lines, keeping
// the first three and last three digits. Short values are fully
// masked.
func MaskPhone(phone string) string {
	if len(phone) <= 6 {
		return strings.Repeat("*", len(phone))
	}
	return phone[:3] + strings.Repeat("*", len(phone)-6) + phone[len(phone)-3:]
}
