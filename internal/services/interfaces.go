package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	appErrors "github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
)

// The remote API as each service sees it. *client.Client satisfies all of
// them.

type CatalogAPI interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id models.ID) (*models.Template, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error)
}

type AccountAPI interface {
	CheckEmail(ctx context.Context, email string) (*models.EmailCheckResponse, error)
	AddToWishlist(ctx context.Context, entry models.WishlistEntry) error
	ListWishlist(ctx context.Context, userID models.ID) ([]models.Template, error)
}

type DashboardAPI interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	ListInvitations(ctx context.Context) ([]models.Invitation, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	OrderStats(ctx context.Context) (*models.OrderStats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AdminAPI interface {
	CatalogAPI
	CreateTemplate(ctx context.Context, req *models.TemplateRequest) (*models.Template, error)
	UpdateTemplate(ctx context.Context, id models.ID, req *models.TemplateRequest) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id models.ID) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	ListInvitations(ctx context.Context) ([]models.Invitation, error)
	CreateInvitation(ctx context.Context, req *models.InvitationRequest) (*models.Invitation, error)
	UpdateInvitation(ctx context.Context, id models.ID, req *models.InvitationRequest) (*models.Invitation, error)
	DeleteInvitation(ctx context.Context, id models.ID) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id models.ID) (*models.Order, error)
	UpdateOrder(ctx context.Context, id models.ID, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id models.ID) error
	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error)
}

var (
	_ CatalogAPI   = (*client.Client)(nil)
	_ OrderAPI     = (*client.Client)(nil)
	_ AccountAPI   = (*client.Client)(nil)
	_ DashboardAPI = (*client.Client)(nil)
	_ AdminAPI     = (*client.Client)(nil)
)

// upstreamError maps a remote API failure onto an AppError.
func upstreamError(err error, message string) error {

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 400, 422:
			return appErrors.BadRequestError(message).WithDetail(apiErr.Message).WithError(err)
		case 401:
			return appErrors.UnauthorizedError(message).WithDetail(apiErr.Message).WithError(err)
		case 403:
			return appErrors.ForbiddenError(message).WithDetail(apiErr.Message).WithError(err)
		case 404:
			return appErrors.NotFoundError(message).WithDetail(apiErr.Message).WithError(err)
		case 409:
			return appErrors.ConflictError(message).WithDetail(apiErr.Message).WithError(err)
		}
	}

	return appErrors.ThirdPartyError(message).WithDetail(err.Error()).WithError(err)
}

func storageError(err error, message string) error {
	if errors.Is(err, storage.ErrConflict) {
		return appErrors.ConflictError(message).WithError(err)
	}

	return appErrors.StorageError(message).WithError(err)
}

// readBestEffort loads key into value, treating malformed content as
// absence.
func readBestEffort(ctx context.Context, store storage.Store, key string, value any) (bool, error) {

	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	found, err := store.Get(ctx, key, value)
	if errors.Is(err, storage.ErrMalformed) {
		middleware.LoggerFromContext(ctx).Warn("Discarding malformed stored value", slog.String("key", key), slog.String("error", err.Error()))
		return false, nil
	}

	return found, err
}
