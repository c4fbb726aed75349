// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// PlaceNameTag is the struct tag for free-text place names.
const PlaceNameTag = "placename"

const maxPlaceNameLength = 200

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the application rules registered.
func New() *Validator {
	v := validator.New()
	_ = registerRules(v)
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field any, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterGinRules installs the application rules on gin's binding engine so
// that `binding:"placename"` works in request structs.
func RegisterGinRules() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerRules(engine)
}

func registerRules(v *validator.Validate) error {
	return v.RegisterValidation(PlaceNameTag, func(fl validator.FieldLevel) bool {
		return IsPlaceName(fl.Field().String())
	})
}

// IsPlaceName reports whether value is usable as a free-text place query:
// non-blank, at most 200 characters, at least one letter and no control
// characters. The text is otherwise passed to providers verbatim.
func IsPlaceName(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxPlaceNameLength {
		return false
	}

	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
