package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dest any) error {

	logger := middleware.LoggerFromContext(r.Context())

	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	err := decoder.Decode(dest)

	if errors.Is(err, io.EOF) {
		logger.Warn("Empty request body")
		response.Error(w, appErrors.BadRequestError("Request body cannot be empty"))
		return err
	}

	if err != nil {
		logger.Warn("Failed to decode request body", "error", err.Error())
		response.Error(w, appErrors.BadRequestError("Invalid JSON format").WithDetail(err.Error()))
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

func ValidateStruct(w http.ResponseWriter, r *http.Request, validate *validator.Validate, data any) bool {

	logger := middleware.LoggerFromContext(r.Context())

	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("User input validation failed", "error", validationErrs.Error())
			response.ValidationError(w, validationErrs)
		} else {
			logger.Error("Unexpected validation error", "error", err.Error())
			response.Error(w, appErrors.InternalError("Unexpected validation error").WithError(err))
		}
		return false
	}

	return true
}
