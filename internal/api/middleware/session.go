package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

type sessionContextKey struct{}

var SessionContextKey = sessionContextKey{}

// Session identifies the browser the request came from. Token is the bearer
// token the remote API issued, taken from the request or from the session's
// stored authToken. Verified is set only when Claims were checked against
// the configured signing key.
type Session struct {
	ID       string
	Token    string
	Claims   *models.Claims
	Verified bool
}

type SessionMiddleware struct {
	store  storage.Store
	jwtKey []byte
}

// NewSessionMiddleware verifies bearer tokens with jwtKey when it is set;
// otherwise token claims are only read as hints.
func NewSessionMiddleware(store storage.Store, jwtKey []byte) *SessionMiddleware {
	return &SessionMiddleware{store: store, jwtKey: jwtKey}
}

func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		sessionID := r.Header.Get(SessionHeader)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}

		w.Header().Set(SessionHeader, sessionID)

		session := &Session{ID: sessionID}
		tokenKey := storage.Key(sessionID, storage.AuthTokenKey)

		if authHeader := r.Header.Get("Authorization"); authHeader != "" {

			// Token is of format : "Bearer <token>"
			tokenParts := strings.Fields(authHeader)
			if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
				logger.Warn("Invalid authorization header format")
				response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
				return
			}

			session.Token = tokenParts[1]

			claims, err := m.parseClaims(session.Token)
			if err != nil {
				logger.Warn("JWT verification failed", slog.String("error", err.Error()))
				response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
				return
			}
			session.Claims = claims
			session.Verified = claims != nil && len(m.jwtKey) > 0

			if err := m.store.Set(r.Context(), tokenKey, session.Token); err != nil {
				logger.Error("Failed to persist auth token", slog.Any("error", err))
			}

			if claims != nil && claims.UserID != "" {
				m.rememberUser(r.Context(), logger, sessionID, claims)
			}

		} else {

			var stored string
			if _, err := m.store.Get(r.Context(), tokenKey, &stored); err != nil {
				logger.Warn("Ignoring unreadable stored auth token", slog.Any("error", err))
			}
			session.Token = stored

			// a stored token that no longer verifies simply carries no claims
			if stored != "" && len(m.jwtKey) > 0 {
				if claims, err := m.parseClaims(stored); err == nil && claims != nil {
					session.Claims = claims
					session.Verified = true
				}
			}
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		ctx = WithLogger(ctx, logger.With(slog.String("session_id", sessionID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rememberUser records the token's user as the session's currentUser. When a
// different user signs in on the same session the previous user's wishlist
// is dropped with it.
func (m *SessionMiddleware) rememberUser(ctx context.Context, logger *slog.Logger, sessionID string, claims *models.Claims) {

	key := storage.Key(sessionID, storage.CurrentUserKey)

	var existing models.User
	found, err := m.store.Get(ctx, key, &existing)
	if err == nil && found && existing.ID == claims.UserID {
		return
	}

	user := models.User{ID: claims.UserID, Email: claims.Email, Name: claims.Name}
	if err := m.store.Set(ctx, key, user); err != nil {
		logger.Error("Failed to persist current user", slog.Any("error", err))
		return
	}

	if found && existing.ID != claims.UserID {
		logger.Info("Session switched user", slog.String("previous_user", existing.ID.String()), slog.String("user", claims.UserID.String()))
		if err := m.store.Delete(ctx, storage.Key(sessionID, storage.WishlistKey)); err != nil {
			logger.Error("Failed to clear previous user's wishlist", slog.Any("error", err))
		}
	}
}

// parseClaims returns nil claims, not an error, for opaque tokens when no
// verification key is configured.
func (m *SessionMiddleware) parseClaims(token string) (*models.Claims, error) {

	claims := &models.Claims{}

	if len(m.jwtKey) == 0 {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, nil
		}
		return claims, nil
	}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return m.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return nil, err
	}

	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*Session)
	return session, ok
}
