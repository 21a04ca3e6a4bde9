package validator

import (
	goValidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = goValidator.New(goValidator.WithRequiredStructEnabled())

// Email checks that s is a well-formed email address. Validation runs
// locally before any request is made so a typo fails fast instead of
// round-tripping to the API.
func Email(s string) error {
	if err := validate.Var(s, "required,email"); err != nil {
		return errors.Errorf("invalid email address: %s", s)
	}
	return nil
}

// WebhookURL checks that s is an absolute http or https URL.
func WebhookURL(s string) error {
	if err := validate.Var(s, "required,http_url"); err != nil {
		return errors.Errorf("invalid webhook url: %s", s)
	}
	return nil
}
