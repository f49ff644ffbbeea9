package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/catalog"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
	"github.com/microcosm-cc/bluemonday"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, key *models.LineKey) (*models.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	store  storage.Store
	api    CatalogAPI
	policy *bluemonday.Policy
}

func NewCartService(store storage.Store, api CatalogAPI) CartService {
	return &cartService{
		store:  store,
		api:    api,
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {

	var items []models.CartLineItem

	if _, err := readBestEffort(ctx, s.store, storage.Key(sessionID, storage.CartKey), &items); err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	return models.NewCart(items), nil
}

// AddItem prices the line from the current template and merges it into the
// cart. Size and color default to the template's first option.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error) {

	template, err := s.api.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch template")
	}

	detail := catalog.Detail(*template)

	size, err := pickOption("size", req.Size, detail.Sizes)
	if err != nil {
		return nil, err
	}

	color, err := pickOption("color", req.Color, detail.Colors)
	if err != nil {
		return nil, err
	}

	image := req.Image
	if image == "" && len(detail.Images) > 0 {
		image = detail.Images[0]
	}

	line := models.CartLineItem{
		ID:         detail.ID,
		Title:      detail.Title,
		Price:      detail.Price.Float64(),
		Quantity:   req.Quantity,
		Size:       size,
		Color:      color,
		CustomText: s.policy.Sanitize(req.CustomText),
		Image:      image,
	}

	var items []models.CartLineItem

	err = s.update(ctx, sessionID, &items, func(bool) error {
		items = models.MergeLineItem(items, line)
		return nil
	})
	if err != nil {
		return nil, storageError(err, "Failed to update cart")
	}

	middleware.LoggerFromContext(ctx).Info("Item added to cart",
		slog.String("templateId", line.ID.String()), slog.Int("quantity", line.Quantity))

	return models.NewCart(items), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	var items []models.CartLineItem
	target := models.CartLineItem{ID: req.ID, Size: req.Size, Color: req.Color}

	err := s.update(ctx, sessionID, &items, func(bool) error {
		idx := slices.IndexFunc(items, target.SameLine)
		if idx < 0 {
			return errors.NotFoundError("Item not found in the cart")
		}

		items[idx].Quantity = req.Quantity
		return nil
	})
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}
		return nil, storageError(err, "Failed to update cart")
	}

	return models.NewCart(items), nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, key *models.LineKey) (*models.Cart, error) {

	var items []models.CartLineItem
	target := models.CartLineItem{ID: key.ID, Size: key.Size, Color: key.Color}

	err := s.update(ctx, sessionID, &items, func(bool) error {
		remaining := slices.DeleteFunc(slices.Clone(items), target.SameLine)
		if len(remaining) == len(items) {
			return errors.NotFoundError("Item not found in the cart")
		}

		items = remaining
		return nil
	})
	if err != nil {
		if _, ok := errors.IsAppError(err); ok {
			return nil, err
		}
		return nil, storageError(err, "Failed to update cart")
	}

	return models.NewCart(items), nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {

	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	if err := s.store.Delete(ctx, storage.Key(sessionID, storage.CartKey)); err != nil {
		return errors.StorageError("Failed to clear cart").WithError(err)
	}

	return nil
}

func (s *cartService) update(ctx context.Context, sessionID string, items *[]models.CartLineItem, fn func(found bool) error) error {

	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	return s.store.Update(ctx, storage.Key(sessionID, storage.CartKey), items, fn)
}

func pickOption(field, requested string, options []string) (string, error) {
	if requested == "" {
		return options[0], nil
	}

	if !slices.Contains(options, requested) {
		return "", errors.AddValidationError(field, fmt.Sprintf("must be one of %v", options))
	}

	return requested, nil
}
