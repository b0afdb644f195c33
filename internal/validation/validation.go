// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

var (
	idPattern       = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
)

// ValidatePassword checks if a plaintext password meets requirements. Only the
// account-creation and password-change paths ever see a plaintext password.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	// Prevent unreasonable inputs
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	// Only allow alphanumeric, underscores and hyphens
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	// Cannot start or end with underscore/hyphen
	if username[0] == '_' || username[0] == '-' || username[len(username)-1] == '_' || username[len(username)-1] == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidateTextID checks an externally-assigned identifier for users,
// categories and articles.
func ValidateTextID(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if len(id) > 64 {
		return fmt.Errorf("id must not exceed 64 characters")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("id can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}
