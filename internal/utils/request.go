package utils

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and validates it, writing
// the error response itself when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(w, r, dest); err != nil {
		return false
	}

	return ValidateStruct(w, r, validate, dest)
}

// ParseID reads a non-empty path value.
func ParseID(r *http.Request, name string) (models.ID, error) {
	value := strings.TrimSpace(r.PathValue(name))
	if value == "" {
		return "", errors.BadRequestError(fmt.Sprintf("Missing %s", name))
	}

	return models.ID(value), nil
}
