// File: /utils/validators.go
package utils

import (
	"regexp"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	loginNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]{3,50}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidLoginName allows 3-50 letters, digits, dots, dashes and underscores.
func IsValidLoginName(name string) bool {
	return loginNameRegex.MatchString(name)
}
