package middleware

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
)

// RequireAdmin lets a request through only when its session carries a token
// verified against the signing key whose claims grant the admin role.
// Unverified claims never count, so admin routes stay closed when no key is
// configured.
func RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		session, ok := SessionFromContext(r.Context())
		if !ok || session.Token == "" || !session.Verified {
			logger.Warn("Admin route requested without a verified token")
			response.Error(w, errors.UnauthorizedError("Sign in with an admin account"))
			return
		}

		if !session.Claims.IsAdmin() {
			logger.Warn("Admin route requested by non-admin user", slog.String("user_id", session.Claims.UserID.String()))
			response.Error(w, errors.ForbiddenError("Admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	}
}
