package formutil

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// stripTags removes every element; script and style bodies are dropped with their tags.
var stripTags = bluemonday.StrictPolicy()

// validate is safe for concurrent use once built.
var validate = validator.New()

// RegistrationForm carries the server-side view of the registration form.
type RegistrationForm struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6"`
}

// Sanitize strips tags, trims whitespace and HTML-escapes what remains.
// Passwords must never go through Sanitize.
func Sanitize(input string) string {
	// bluemonday escapes the text it keeps; unescape so the final escape is applied once.
	stripped := html.UnescapeString(stripTags.Sanitize(input))
	return html.EscapeString(strings.TrimSpace(stripped))
}

// ValidEmail reports whether s is a syntactically valid email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// Validate runs the struct rules of form and returns a readable error.
// PRE: form is a pointer to a struct with validate tags, such as RegistrationForm
// POST: Returns nil if valid, otherwise one message per failing field joined by "; "
func Validate(form any) error {
	if err := validate.Struct(form); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single validation failure into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
