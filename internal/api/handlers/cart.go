package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//
//	@Summary		Get the session cart
//	@Description	Returns the cart with its totals. A missing or unreadable cart is empty.
//	@Tags			Cart
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session ID"
//	@Success		200				{object}	models.Cart				"Cart"
//	@Failure		500				{object}	response.ErrorResponse	"Storage failure"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(ctx, session.ID)
		if err != nil {
			writeError(w, logger, "Failed to get cart", err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//
//	@Summary		Add a template to the cart
//	@Description	Lines with the same template, size and color are merged by adding quantities.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Item"
//	@Success		200		{object}	models.Cart				"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Template not found"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(ctx, session.ID, &req)
		if err != nil {
			writeError(w, logger.With(slog.String("templateId", req.TemplateID.String())), "Failed to add item to cart", err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//
//	@Summary	Change the quantity of a cart line
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.UpdateQuantityRequest	true	"Line and quantity"
//	@Success	200		{object}	models.Cart						"Updated cart"
//	@Failure	404		{object}	response.ErrorResponse			"Line not in cart"
//	@Router		/cart/items [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(ctx, session.ID, &req)
		if err != nil {
			writeError(w, logger, "Failed to update cart quantity", err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//
//	@Summary	Remove a cart line
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.LineKey			true	"Line"
//	@Success	200		{object}	models.Cart				"Updated cart"
//	@Failure	404		{object}	response.ErrorResponse	"Line not in cart"
//	@Router		/cart/items [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		var req models.LineKey
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.RemoveItem(ctx, session.ID, &req)
		if err != nil {
			writeError(w, logger, "Failed to remove cart item", err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Success	204
//	@Router		/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(ctx, session.ID); err != nil {
			writeError(w, logger, "Failed to clear cart", err)
			return
		}

		logger.Info("Cart cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
