package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/checkout"
	appErrors "github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// GetCheckout godoc
//
//	@Summary	Current checkout step and cart totals
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	service.CheckoutView	"Checkout"
//	@Router		/checkout [get]
func (h *CheckoutHandler) GetCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.GetCheckout(ctx, session.ID)
		if err != nil {
			writeError(w, logger, "Failed to load checkout", err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Next godoc
//
//	@Summary		Continue to the next checkout step
//	@Description	Validates the form of the current step and advances. On the review step this places the order; an empty body is accepted there.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			form	body		checkout.Form			false	"Shipping or payment form"
//	@Success		200		{object}	service.CheckoutView	"Next step"
//	@Success		201		{object}	service.CheckoutView	"Order placed"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		502		{object}	response.ErrorResponse	"Order could not be placed"
//	@Router			/checkout/next [post]
func (h *CheckoutHandler) Next() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		var form checkout.Form
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&form); err != nil && !errors.Is(err, io.EOF) {
			logger.Warn("Failed to decode checkout form", slog.String("error", err.Error()))
			response.Error(w, appErrors.BadRequestError("Invalid JSON format").WithDetail(err.Error()))
			return
		}

		view, err := h.checkoutService.Next(ctx, session.ID, form)
		if err != nil {
			writeError(w, logger, "Checkout step failed", err)
			return
		}

		if view.Order != nil {
			logger.Info("Checkout completed", slog.String("orderId", view.Order.ID.String()))
			response.Success(w, http.StatusCreated, view)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// Previous godoc
//
//	@Summary	Go back one checkout step
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	service.CheckoutView	"Previous step"
//	@Failure	400	{object}	response.ErrorResponse	"Already at the first step"
//	@Router		/checkout/previous [post]
func (h *CheckoutHandler) Previous() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, ctx, ok := requestSession(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.Previous(ctx, session.ID)
		if err != nil {
			writeError(w, logger, "Checkout step back failed", err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}
