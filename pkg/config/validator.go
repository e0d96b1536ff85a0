package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// keyPrefixForbidden are characters that would change the meaning of a
// Redis SCAN match pattern built from the prefix.
const keyPrefixForbidden = "*?[]\\"

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("key_prefix", validateKeyPrefix)
}

// validateKeyPrefix validates storage key prefixes
func validateKeyPrefix(fl validator.FieldLevel) bool {
	prefix := fl.Field().String()
	if prefix == "" || len(prefix) > 64 {
		return false
	}
	if strings.ContainsAny(prefix, keyPrefixForbidden) {
		return false
	}
	if strings.IndexFunc(prefix, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }) >= 0 {
		return false
	}
	return !strings.HasSuffix(prefix, ":")
}
