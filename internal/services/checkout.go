package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/checkout"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
	"github.com/go-playground/validator/v10"
)

// CheckoutView is what the checkout page renders: the wizard, the cart it
// is checking out and, once placed, the created order.
type CheckoutView struct {
	State checkout.State `json:"state"`
	Cart  *models.Cart   `json:"cart"`
	Order *models.Order  `json:"order,omitempty"`
}

type CheckoutService interface {
	GetCheckout(ctx context.Context, sessionID string) (*CheckoutView, error)
	// Next advances the wizard. At the review step it places the order.
	Next(ctx context.Context, sessionID string, form checkout.Form) (*CheckoutView, error)
	Previous(ctx context.Context, sessionID string) (*CheckoutView, error)
	PlaceOrder(ctx context.Context, sessionID string) (*CheckoutView, error)
}

type checkoutService struct {
	store    storage.Store
	api      OrderAPI
	validate *validator.Validate
}

func NewCheckoutService(store storage.Store, api OrderAPI) CheckoutService {
	return &checkoutService{
		store:    store,
		api:      api,
		validate: validator.New(),
	}
}

func (s *checkoutService) GetCheckout(ctx context.Context, sessionID string) (*CheckoutView, error) {

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &CheckoutView{State: state, Cart: models.NewCart(items)}, nil
}

func (s *checkoutService) Next(ctx context.Context, sessionID string, form checkout.Form) (*CheckoutView, error) {

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.Step == checkout.StepReview {
		return s.PlaceOrder(ctx, sessionID)
	}

	next, err := state.Next(s.validate, form)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if stdErrors.As(err, &validationErrs) {
			return nil, errors.ValidationError("Please fill in all required fields").WithError(validationErrs)
		}
		return nil, errors.BadRequestError(fmt.Sprintf("Expected the %s form", state.Step)).WithError(err)
	}

	if err := s.saveState(ctx, sessionID, next); err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &CheckoutView{State: next, Cart: models.NewCart(items)}, nil
}

func (s *checkoutService) Previous(ctx context.Context, sessionID string) (*CheckoutView, error) {

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	prev, err := state.Previous()
	if err != nil {
		return nil, errors.BadRequestError("Already at the first step").WithError(err)
	}

	if err := s.saveState(ctx, sessionID, prev); err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &CheckoutView{State: prev, Cart: models.NewCart(items)}, nil
}

// PlaceOrder posts the order once. Only a successful post clears the cart
// and resets the wizard; a failed one leaves both as they were.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID string) (*CheckoutView, error) {

	logger := middleware.LoggerFromContext(ctx)

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errors.BadRequestError("Your cart is empty")
	}

	if !state.ReadyToPlace() {
		return nil, errors.BadRequestError("Complete the shipping and payment steps first")
	}

	draft := BuildOrderDraft(state.Shipping, items)

	order, err := s.api.CreateOrder(ctx, draft)
	if err != nil {
		logger.Error("Failed to place order", slog.Any("error", err))
		return nil, upstreamError(err, "Failed to place order")
	}

	storeCtx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	if err := s.store.Delete(storeCtx, storage.Key(sessionID, storage.CartKey)); err != nil {
		logger.Error("Failed to clear cart after order", slog.Any("error", err))
	}

	if err := s.store.Delete(storeCtx, storage.Key(sessionID, storage.CheckoutKey)); err != nil {
		logger.Error("Failed to reset checkout after order", slog.Any("error", err))
	}

	logger.Info("Order placed", slog.String("orderId", order.ID.String()), slog.String("amount", draft.Amount))

	return &CheckoutView{State: checkout.NewState(), Cart: models.NewCart(nil), Order: order}, nil
}

// BuildOrderDraft flattens the shipping form and cart into the order body.
func BuildOrderDraft(shipping *checkout.Shipping, items []models.CartLineItem) *models.OrderDraft {

	totals := models.ComputeTotals(items)

	draft := &models.OrderDraft{
		Customer: shipping.FirstName + " " + shipping.LastName,
		Email:    shipping.Email,
		Phone:    shipping.Phone,
		Type:     models.DefaultOrderType,
		Amount:   fmt.Sprintf("%.2f", totals.Total),
		Notes: fmt.Sprintf("Shipping Address: %s, %s, %s %s, %s",
			shipping.Address, shipping.City, shipping.State, shipping.ZipCode, shipping.Country),
	}

	if len(items) > 0 {
		id := items[0].ID
		draft.TemplateID = &id
	}

	return draft
}

func (s *checkoutService) loadState(ctx context.Context, sessionID string) (checkout.State, error) {

	state := checkout.NewState()

	found, err := readBestEffort(ctx, s.store, storage.Key(sessionID, storage.CheckoutKey), &state)
	if err != nil {
		return state, errors.StorageError("Failed to load checkout").WithError(err)
	}

	if !found {
		return checkout.NewState(), nil
	}

	return state.Normalize(), nil
}

func (s *checkoutService) saveState(ctx context.Context, sessionID string, state checkout.State) error {

	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	if err := s.store.Set(ctx, storage.Key(sessionID, storage.CheckoutKey), state); err != nil {
		return errors.StorageError("Failed to save checkout").WithError(err)
	}

	return nil
}

func (s *checkoutService) loadItems(ctx context.Context, sessionID string) ([]models.CartLineItem, error) {

	var items []models.CartLineItem

	if _, err := readBestEffort(ctx, s.store, storage.Key(sessionID, storage.CartKey), &items); err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	return items, nil
}
