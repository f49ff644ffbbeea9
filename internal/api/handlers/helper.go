package handlers

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// requestSession returns the caller's session and a context that forwards
// its bearer token to the remote API.
func requestSession(w http.ResponseWriter, r *http.Request) (*middleware.Session, context.Context, bool) {

	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Error("Session middleware not installed")
		response.Error(w, errors.InternalError("Session unavailable"))
		return nil, nil, false
	}

	return session, client.WithToken(r.Context(), session.Token), true
}

// apiContext forwards the caller's bearer token, if any.
func apiContext(r *http.Request) context.Context {
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		return client.WithToken(r.Context(), session.Token)
	}

	return r.Context()
}

func writeError(w http.ResponseWriter, logger *slog.Logger, message string, err error) {

	var validationErrs validator.ValidationErrors
	if stdErrors.As(err, &validationErrs) {
		logger.Warn(message, slog.String("error", err.Error()))
		response.ValidationError(w, validationErrs)
		return
	}

	if appErr, ok := errors.IsAppError(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		logger.Warn(message, slog.String("error", err.Error()))
	} else {
		logger.Error(message, slog.Any("error", err))
	}

	response.Error(w, err)
}
