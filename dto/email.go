package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/princinho/stonevitrine/utils"
)

var validate = validator.New()

// normalizeEmail trims and lowercases the address before checking it, so
// autofilled values with surrounding blanks are accepted.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", utils.NewValidationError("email must be a valid email")
	}
	return email, nil
}
