package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AccountHandler serves the session user and the wishlist.
type AccountHandler struct {
	wishlistService service.WishlistService
	validator       *validator.Validate
}

func NewAccountHandler(wishlistService service.WishlistService) *AccountHandler {
	return &AccountHandler{wishlistService: wishlistService, validator: validator.New()}
}

// SetSession godoc
//
//	@Summary		Record a sign-in
//	@Description	Stores the user and token obtained from the auth API as the session's current user.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			session	body		models.SessionRequest	true	"User and token"
//	@Success		200		{object}	models.User				"Current user"
//	@Router			/session [put]
func (h *AccountHandler) SetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		var req models.SessionRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.wishlistService.SetSession(ctx, session.ID, &req)
		if err != nil {
			writeError(w, logger, "Failed to record session", err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

// CheckEmail godoc
//
//	@Summary	Where an anonymous visitor should sign in
//	@Tags		Account
//	@Produce	json
//	@Param		email	query		string					true	"Email"
//	@Success	200		{object}	models.AccountHint		"Next page"
//	@Failure	400		{object}	response.ErrorResponse	"Missing email"
//	@Router		/auth/check [get]
func (h *AccountHandler) CheckEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			response.Error(w, errors.BadRequestError("Email is required"))
			return
		}

		if err := h.validator.Var(email, "email"); err != nil {
			response.Error(w, errors.AddValidationError("email", "must be a valid email address"))
			return
		}

		hint, err := h.wishlistService.CheckEmail(apiContext(r), email)
		if err != nil {
			writeError(w, logger, "Failed to check account", err)
			return
		}

		response.Success(w, http.StatusOK, hint)
	}
}

// GetWishlist godoc
//
//	@Summary	Templates the current user liked
//	@Tags		Wishlist
//	@Produce	json
//	@Success	200	{array}		models.Template			"Wishlist"
//	@Failure	401	{object}	response.ErrorResponse	"Not signed in"
//	@Router		/wishlist [get]
func (h *AccountHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		templates, err := h.wishlistService.List(ctx, session.ID)
		if err != nil {
			writeError(w, logger, "Failed to get wishlist", err)
			return
		}

		response.Success(w, http.StatusOK, templates)
	}
}

// Like godoc
//
//	@Summary	Add a template to the wishlist
//	@Tags		Wishlist
//	@Produce	json
//	@Param		templateId	path		string					true	"Template ID"
//	@Success	200			{object}	models.WishlistStatus	"Liked"
//	@Failure	401			{object}	response.ErrorResponse	"Not signed in"
//	@Router		/wishlist/{templateId} [post]
func (h *AccountHandler) Like() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		templateID, err := utils.ParseID(r, "templateId")
		if err != nil {
			response.Error(w, err)
			return
		}

		status, err := h.wishlistService.Like(ctx, session.ID, templateID)
		if err != nil {
			writeError(w, logger.With(slog.String("templateId", templateID.String())), "Failed to like template", err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}

func (h *AccountHandler) WishlistStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		templateID, err := utils.ParseID(r, "templateId")
		if err != nil {
			response.Error(w, err)
			return
		}

		status, err := h.wishlistService.Status(ctx, session.ID, templateID)
		if err != nil {
			writeError(w, logger, "Failed to get wishlist status", err)
			return
		}

		response.Success(w, http.StatusOK, status)
	}
}
