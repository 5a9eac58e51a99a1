package validation

import (
	"fmt"
	"strings"

	"supernova/internal/errs"
)

// maxQueryLength bounds a single search query
const maxQueryLength = 2000

// SearchRequestValidator validates search requests
type SearchRequestValidator struct{}

// NewSearchRequestValidator creates a new SearchRequestValidator
func NewSearchRequestValidator() *SearchRequestValidator {
	return &SearchRequestValidator{}
}

// ValidateQuery validates a search query
func (v *SearchRequestValidator) ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return errs.NewValidation("query", "cannot be empty")
	}

	if len(query) > maxQueryLength {
		return errs.NewValidation("query", fmt.Sprintf("must be at most %d characters long, got %d", maxQueryLength, len(query)))
	}

	return nil
}

// ValidatePaperTitle validates the paper title sent to the summarize and
// quiz endpoints
func (v *SearchRequestValidator) ValidatePaperTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValidation("paper_title", "cannot be empty")
	}

	if len(title) > 500 {
		return errs.NewValidation("paper_title", fmt.Sprintf("must be at most 500 characters long, got %d", len(title)))
	}

	return nil
}
