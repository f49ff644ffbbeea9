package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/resource"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPhone     = "—"
	defaultSegment   = "Regular"
	defaultLastOrder = "—"
	defaultStatus    = "active"
)

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	Customers(ctx context.Context) ([]models.Customer, error)

	// Start loads both resources once. Close tears them down.
	Start(ctx context.Context)
	Close()
	DashboardState() resource.State[*models.DashboardStats]
	RefreshDashboard(ctx context.Context) resource.State[*models.DashboardStats]
	CustomersState(ctx context.Context, refresh bool) resource.State[[]models.Customer]
}

type dashboardService struct {
	api        DashboardAPI
	adminToken string

	stats     *resource.Resource[*models.DashboardStats]
	customers *resource.Resource[[]models.Customer]
}

// NewDashboardService uses adminToken only for the initial load in Start.
// Refetches run with the caller's token.
func NewDashboardService(api DashboardAPI, adminToken string) DashboardService {
	s := &dashboardService{api: api, adminToken: adminToken}

	s.stats = resource.New(s.Stats, resource.WithObserver(func(state resource.State[*models.DashboardStats]) {
		logResourceState("dashboard", state.Loading, state.Error)
	}))
	s.customers = resource.New(s.Customers, resource.WithObserver(func(state resource.State[[]models.Customer]) {
		logResourceState("customers", state.Loading, state.Error)
	}))

	return s
}

func logResourceState(name string, loading bool, errMsg string) {
	switch {
	case loading:
		slog.Debug("Resource loading", slog.String("resource", name))
	case errMsg != "":
		slog.Warn("Resource failed", slog.String("resource", name), slog.String("error", errMsg))
	default:
		slog.Debug("Resource loaded", slog.String("resource", name))
	}
}

// Stats joins the four dashboard fetches. Order stats are optional: when
// they fail the totals are derived from the order list.
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {

	var (
		templates   []models.Template
		invitations []models.Invitation
		orders      []models.Order
		stats       = &models.OrderStats{}
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		templates, err = s.api.ListTemplates(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		invitations, err = s.api.ListInvitations(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		orders, err = s.api.ListOrders(gctx)
		return err
	})

	g.Go(func() error {
		result, err := s.api.OrderStats(gctx)
		if err != nil {
			middleware.LoggerFromContext(ctx).Warn("Order stats unavailable, deriving totals from orders", slog.Any("error", err))
			return nil
		}
		if result != nil {
			stats = result
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if templates == nil {
		templates = []models.Template{}
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}
	if orders == nil {
		orders = []models.Order{}
	}

	totalOrders := stats.TotalOrders
	if totalOrders == 0 {
		totalOrders = len(orders)
	}

	totalRevenue := stats.TotalRevenue.Float64()
	if totalRevenue == 0 {
		for _, order := range orders {
			totalRevenue += order.Amount.Float64()
		}
	}

	return &models.DashboardStats{
		TotalTemplates:   len(templates),
		TotalInvitations: len(invitations),
		TotalOrders:      totalOrders,
		TotalRevenue:     totalRevenue,
		Templates:        templates,
		Invitations:      invitations,
		Orders:           orders,
	}, nil
}

func (s *dashboardService) Customers(ctx context.Context) ([]models.Customer, error) {

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]models.Customer, 0, len(users))
	for _, user := range users {
		customers = append(customers, ToCustomer(user))
	}

	return customers, nil
}

// ToCustomer fills the customers table defaults for fields the auth API
// does not track.
func ToCustomer(user models.User) models.Customer {
	customer := models.Customer{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      orDefault(user.Phone, defaultPhone),
		Segment:    orDefault(user.Segment, defaultSegment),
		Orders:     user.Orders,
		TotalSpent: "₹" + strconv.FormatFloat(user.TotalSpent.Float64(), 'f', -1, 64),
		Rating:     user.Rating,
		LastOrder:  orDefault(user.LastOrder, defaultLastOrder),
		Status:     orDefault(user.Status, defaultStatus),
	}

	return customer
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func (s *dashboardService) Start(ctx context.Context) {
	if client.TokenFromContext(ctx) == "" {
		ctx = client.WithToken(ctx, s.adminToken)
	}

	s.stats.Load(ctx)
	s.customers.Load(ctx)
}

func (s *dashboardService) Close() {
	s.stats.Close()
	s.customers.Close()
}

func (s *dashboardService) DashboardState() resource.State[*models.DashboardStats] {
	return s.stats.State()
}

func (s *dashboardService) RefreshDashboard(ctx context.Context) resource.State[*models.DashboardStats] {
	return s.stats.Refetch(ctx)
}

func (s *dashboardService) CustomersState(ctx context.Context, refresh bool) resource.State[[]models.Customer] {
	if refresh {
		return s.customers.Refetch(ctx)
	}

	return s.customers.Load(ctx)
}
