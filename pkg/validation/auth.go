package validation

import (
	"fmt"
	"regexp"

	"supernova/internal/errs"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// AuthRequestValidator validates authentication-related requests
type AuthRequestValidator struct{}

// NewAuthRequestValidator creates a new AuthRequestValidator
func NewAuthRequestValidator() *AuthRequestValidator {
	return &AuthRequestValidator{}
}

// ValidateUsername validates a username
func (v *AuthRequestValidator) ValidateUsername(username string) error {
	if username == "" {
		return errs.NewValidation("username", "cannot be empty")
	}

	if len(username) < 3 {
		return errs.NewValidation("username", fmt.Sprintf("must be at least 3 characters long, got %d", len(username)))
	}

	if len(username) > 50 {
		return errs.NewValidation("username", fmt.Sprintf("must be at most 50 characters long, got %d", len(username)))
	}

	if !usernameRe.MatchString(username) {
		return errs.NewValidation("username", "can only contain letters, numbers, underscores, and hyphens")
	}

	return nil
}

// ValidatePassword validates a password
func (v *AuthRequestValidator) ValidatePassword(password string) error {
	if password == "" {
		return errs.NewValidation("password", "cannot be empty")
	}

	if len(password) < 8 {
		return errs.NewValidation("password", fmt.Sprintf("must be at least 8 characters long, got %d", len(password)))
	}

	if len(password) > 128 {
		return errs.NewValidation("password", fmt.Sprintf("must be at most 128 characters long, got %d", len(password)))
	}

	return nil
}

// ValidateEmail validates an email address (basic validation)
func (v *AuthRequestValidator) ValidateEmail(email string) error {
	if email == "" {
		return errs.NewValidation("email", "cannot be empty")
	}

	if !emailRe.MatchString(email) {
		return errs.NewValidation("email", "invalid email format")
	}

	if len(email) > 255 {
		return errs.NewValidation("email", fmt.Sprintf("must be at most 255 characters long, got %d", len(email)))
	}

	return nil
}

// ValidateLoginRequest validates a login request
func (v *AuthRequestValidator) ValidateLoginRequest(username, password string) error {
	if username == "" {
		return errs.NewValidation("username", "cannot be empty")
	}

	if password == "" {
		return errs.NewValidation("password", "cannot be empty")
	}

	return nil
}

// ValidateRegisterRequest validates a registration request
func (v *AuthRequestValidator) ValidateRegisterRequest(username, email, password string) error {
	if err := v.ValidateUsername(username); err != nil {
		return err
	}

	if err := v.ValidateEmail(email); err != nil {
		return err
	}

	if err := v.ValidatePassword(password); err != nil {
		return err
	}

	return nil
}
