package validation

import (
	"errors"
	"strings"
	"testing"

	"supernova/internal/errs"
)

func TestValidateUsername(t *testing.T) {
	v := NewAuthRequestValidator()

	cases := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "alice_42", false},
		{"valid with hyphen", "space-fan", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 51), true},
		{"invalid chars", "bad user!", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := v.ValidateUsername(c.username)
			if (err != nil) != c.wantErr {
				t.Errorf("ValidateUsername(%q): got err=%v, wantErr=%v", c.username, err, c.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	v := NewAuthRequestValidator()

	if err := v.ValidatePassword("longenough"); err != nil {
		t.Errorf("Valid password rejected: %v", err)
	}
	if err := v.ValidatePassword("short7!"); err == nil {
		t.Error("7-character password accepted")
	}
	if err := v.ValidatePassword(""); err == nil {
		t.Error("Empty password accepted")
	}
	if err := v.ValidatePassword(strings.Repeat("a", 129)); err == nil {
		t.Error("Oversized password accepted")
	}
}

func TestValidateEmail(t *testing.T) {
	v := NewAuthRequestValidator()

	if err := v.ValidateEmail("user@example.com"); err != nil {
		t.Errorf("Valid email rejected: %v", err)
	}
	if err := v.ValidateEmail(""); err == nil {
		t.Error("Empty email accepted")
	}
	if err := v.ValidateEmail("not-an-email"); err == nil {
		t.Error("Malformed email accepted")
	}
}

func TestValidateRegisterRequestReturnsTypedError(t *testing.T) {
	v := NewAuthRequestValidator()

	err := v.ValidateRegisterRequest("alice", "alice@example.com", "short")
	if err == nil {
		t.Fatal("Expected error for short password")
	}

	var validationErr *errs.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected *errs.ValidationError, got %T", err)
	}
	if validationErr.Field != "password" {
		t.Errorf("Field: got %q, want password", validationErr.Field)
	}
}

func TestValidateLoginRequest(t *testing.T) {
	v := NewAuthRequestValidator()

	if err := v.ValidateLoginRequest("alice", "secretpass"); err != nil {
		t.Errorf("Valid login rejected: %v", err)
	}
	if err := v.ValidateLoginRequest("", "secretpass"); err == nil {
		t.Error("Blank username accepted")
	}
	if err := v.ValidateLoginRequest("alice", ""); err == nil {
		t.Error("Blank password accepted")
	}
}

func TestValidateQuery(t *testing.T) {
	v := NewSearchRequestValidator()

	if err := v.ValidateQuery("bone density in mice"); err != nil {
		t.Errorf("Valid query rejected: %v", err)
	}
	if err := v.ValidateQuery("   "); err == nil {
		t.Error("Whitespace query accepted")
	}
	if err := v.ValidateQuery(strings.Repeat("q", 2001)); err == nil {
		t.Error("Oversized query accepted")
	}
}

func TestValidatePaperTitle(t *testing.T) {
	v := NewSearchRequestValidator()

	if err := v.ValidatePaperTitle("Effects of Radiation on DNA"); err != nil {
		t.Errorf("Valid title rejected: %v", err)
	}
	if err := v.ValidatePaperTitle(""); err == nil {
		t.Error("Empty title accepted")
	}
	if err := v.ValidatePaperTitle(strings.Repeat("t", 501)); err == nil {
		t.Error("Oversized title accepted")
	}
}
