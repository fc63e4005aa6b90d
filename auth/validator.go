package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateClaims checks that a key names both a project and a room.
func ValidateClaims(claims *APIKeyClaims) error {
	return validate.Struct(claims)
}
