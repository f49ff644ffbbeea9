package mocks

import (
	"context"
	"io"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

// API is a mock of the remote storefront API. It satisfies every API
// interface the services depend on.
type API struct {
	mock.Mock
}

// NewAPI creates the mock and asserts its expectations when the test ends.
func NewAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *API {
	m := &API{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func result[T any](args mock.Arguments, idx int) T {
	var zero T
	if v := args.Get(idx); v != nil {
		return v.(T)
	}
	return zero
}

func (m *API) ListTemplates(ctx context.Context) ([]models.Template, error) {
	args := m.Called(ctx)
	return result[[]models.Template](args, 0), args.Error(1)
}

func (m *API) GetTemplate(ctx context.Context, id models.ID) (*models.Template, error) {
	args := m.Called(ctx, id)
	return result[*models.Template](args, 0), args.Error(1)
}

func (m *API) CreateTemplate(ctx context.Context, req *models.TemplateRequest) (*models.Template, error) {
	args := m.Called(ctx, req)
	return result[*models.Template](args, 0), args.Error(1)
}

func (m *API) UpdateTemplate(ctx context.Context, id models.ID, req *models.TemplateRequest) (*models.Template, error) {
	args := m.Called(ctx, id, req)
	return result[*models.Template](args, 0), args.Error(1)
}

func (m *API) DeleteTemplate(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *API) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return result[[]models.Category](args, 0), args.Error(1)
}

func (m *API) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	return result[*models.Category](args, 0), args.Error(1)
}

func (m *API) ListInvitations(ctx context.Context) ([]models.Invitation, error) {
	args := m.Called(ctx)
	return result[[]models.Invitation](args, 0), args.Error(1)
}

func (m *API) CreateInvitation(ctx context.Context, req *models.InvitationRequest) (*models.Invitation, error) {
	args := m.Called(ctx, req)
	return result[*models.Invitation](args, 0), args.Error(1)
}

func (m *API) UpdateInvitation(ctx context.Context, id models.ID, req *models.InvitationRequest) (*models.Invitation, error) {
	args := m.Called(ctx, id, req)
	return result[*models.Invitation](args, 0), args.Error(1)
}

func (m *API) DeleteInvitation(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *API) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return result[[]models.Order](args, 0), args.Error(1)
}

func (m *API) GetOrder(ctx context.Context, id models.ID) (*models.Order, error) {
	args := m.Called(ctx, id)
	return result[*models.Order](args, 0), args.Error(1)
}

func (m *API) CreateOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error) {
	args := m.Called(ctx, draft)
	return result[*models.Order](args, 0), args.Error(1)
}

func (m *API) UpdateOrder(ctx context.Context, id models.ID, req *models.UpdateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, id, req)
	return result[*models.Order](args, 0), args.Error(1)
}

func (m *API) DeleteOrder(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *API) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	args := m.Called(ctx)
	return result[*models.OrderStats](args, 0), args.Error(1)
}

func (m *API) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return result[[]models.User](args, 0), args.Error(1)
}

func (m *API) CheckEmail(ctx context.Context, email string) (*models.EmailCheckResponse, error) {
	args := m.Called(ctx, email)
	return result[*models.EmailCheckResponse](args, 0), args.Error(1)
}

func (m *API) AddToWishlist(ctx context.Context, entry models.WishlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *API) ListWishlist(ctx context.Context, userID models.ID) ([]models.Template, error) {
	args := m.Called(ctx, userID)
	return result[[]models.Template](args, 0), args.Error(1)
}

func (m *API) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {
	args := m.Called(ctx, filename, r)
	return result[*models.UploadResponse](args, 0), args.Error(1)
}
