package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
)

const TestSessionID = "0b5e3f4a-7c1d-4e2b-9f60-1a2b3c4d5e6f"

// VerifiedSession is a signed-in session whose token passed verification.
func VerifiedSession(userID models.ID, role string) *middleware.Session {
	return &middleware.Session{
		ID:       TestSessionID,
		Token:    "token-" + userID.String(),
		Claims:   &models.Claims{UserID: userID, Email: "user" + userID.String() + "@example.com", Role: role},
		Verified: true,
	}
}

func CreateTestRequestWithSession(method, target string, body io.Reader, session *middleware.Session, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	if session == nil {
		session = &middleware.Session{ID: TestSessionID}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.SessionContextKey, session)
	ctx = context.WithValue(ctx, middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
