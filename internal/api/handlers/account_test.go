package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAccountTest(t *testing.T) (*mocks.API, *storage.MemoryStore, *handlers.AccountHandler) {
	api := mocks.NewAPI(t)
	store := storage.NewMemoryStore()
	return api, store, handlers.NewAccountHandler(service.NewWishlistService(store, api))
}

func TestAccountHandlerLike(t *testing.T) {
	t.Run("Success - Sign In Then Like", func(t *testing.T) {
		// Arrange
		api, _, accountHandler := setupAccountTest(t)
		api.On("AddToWishlist", mock.Anything, models.WishlistEntry{UserID: "42", TemplateID: "7"}).Return(nil).Once()

		body := `{"user":{"id":42,"name":"Ada","email":"ada@example.com"},"token":"jwt-token"}`
		sessionReq := testutils.CreateTestRequestWithSession(http.MethodPut, "/api/v1/session", bytes.NewBufferString(body), nil, nil)
		sessionRec := httptest.NewRecorder()

		likeReq := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/wishlist/7", nil, nil, map[string]string{"templateId": "7"})
		likeRec := httptest.NewRecorder()

		statusReq := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/wishlist/7", nil, nil, map[string]string{"templateId": "7"})
		statusRec := httptest.NewRecorder()

		// Act
		accountHandler.SetSession()(sessionRec, sessionReq)
		accountHandler.Like()(likeRec, likeReq)
		accountHandler.WishlistStatus()(statusRec, statusReq)

		// Assert
		assert.Equal(t, http.StatusOK, sessionRec.Code)
		assert.Equal(t, http.StatusOK, likeRec.Code)

		var status models.WishlistStatus
		decodeResponse(t, statusRec, &status)
		assert.True(t, status.Liked)
	})

	t.Run("Failure - Anonymous Like", func(t *testing.T) {
		// Arrange
		_, _, accountHandler := setupAccountTest(t)
		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/wishlist/7", nil, nil, map[string]string{"templateId": "7"})
		recorder := httptest.NewRecorder()

		// Act
		accountHandler.Like()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestAccountHandlerCheckEmail(t *testing.T) {
	t.Run("Success - Existing Account", func(t *testing.T) {
		// Arrange
		api, _, accountHandler := setupAccountTest(t)
		api.On("CheckEmail", mock.Anything, "ada@example.com").Return(&models.EmailCheckResponse{Exists: true}, nil).Once()
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/auth/check?email=ada@example.com", nil, nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		accountHandler.CheckEmail()(recorder, req)

		// Assert
		require.Equal(t, http.StatusOK, recorder.Code)
		var hint models.AccountHint
		decodeResponse(t, recorder, &hint)
		assert.Equal(t, "/login", hint.Next)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		// Arrange
		_, _, accountHandler := setupAccountTest(t)
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/auth/check?email=nope", nil, nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		accountHandler.CheckEmail()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
