package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/config"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/health"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/metrics"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/tracing"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("⚠️ Could not load .env file", slog.String("error", err.Error()))
	}

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Init(context.Background(), &cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Session storage setup
	store, err := newStore(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the session store", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing session store", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Session store closed")
		}
	}()

	apiClient := client.NewFromConfig(&cfg.API)

	catalogService := service.NewCatalogService(apiClient)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartService := service.NewCartService(store, apiClient)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(store, apiClient)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	wishlistService := service.NewWishlistService(store, apiClient)
	accountHandler := handlers.NewAccountHandler(wishlistService)
	dashboardService := service.NewDashboardService(apiClient, cfg.API.AdminToken)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminService := service.NewAdminService(apiClient)
	adminHandler := handlers.NewAdminHandler(adminService)
	sessionMiddleware := middleware.NewSessionMiddleware(store, []byte(cfg.Security.JWTKey))

	if cfg.Security.JWTKey == "" {
		slog.Warn("⚠️ JWT_KEY is not set, admin routes will reject every request")
	}

	// The first dashboard load must not hold up serving the storefront.
	go dashboardService.Start(context.Background())
	defer dashboardService.Close()

	h, err := health.NewHealthHandler(cfg, &health.Endpoints{Store: store, API: apiClient})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.Storage.Driver), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/templates", catalogHandler.ListTemplates())
	routerMux.HandleFunc("GET /api/v1/templates/{id}", catalogHandler.GetTemplate())
	routerMux.HandleFunc("GET /api/v1/categories/{category}/templates", catalogHandler.ListCategoryTemplates())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items", cartHandler.RemoveItem())
	routerMux.HandleFunc("GET /api/v1/checkout", checkoutHandler.GetCheckout())
	routerMux.HandleFunc("POST /api/v1/checkout/next", checkoutHandler.Next())
	routerMux.HandleFunc("POST /api/v1/checkout/previous", checkoutHandler.Previous())
	routerMux.HandleFunc("PUT /api/v1/session", accountHandler.SetSession())
	routerMux.HandleFunc("GET /api/v1/auth/check", accountHandler.CheckEmail())
	routerMux.HandleFunc("GET /api/v1/wishlist", accountHandler.GetWishlist())
	routerMux.HandleFunc("POST /api/v1/wishlist/{templateId}", accountHandler.Like())
	routerMux.HandleFunc("GET /api/v1/wishlist/{templateId}", accountHandler.WishlistStatus())
	routerMux.HandleFunc("GET /api/v1/admin/dashboard", middleware.RequireAdmin(dashboardHandler.GetDashboard()))
	routerMux.HandleFunc("POST /api/v1/admin/dashboard/refresh", middleware.RequireAdmin(dashboardHandler.RefreshDashboard()))
	routerMux.HandleFunc("GET /api/v1/admin/customers", middleware.RequireAdmin(dashboardHandler.GetCustomers()))
	routerMux.HandleFunc("GET /api/v1/admin/templates", middleware.RequireAdmin(adminHandler.ListTemplates()))
	routerMux.HandleFunc("POST /api/v1/admin/templates", middleware.RequireAdmin(adminHandler.CreateTemplate()))
	routerMux.HandleFunc("PUT /api/v1/admin/templates/{id}", middleware.RequireAdmin(adminHandler.UpdateTemplate()))
	routerMux.HandleFunc("DELETE /api/v1/admin/templates/{id}", middleware.RequireAdmin(adminHandler.DeleteTemplate()))
	routerMux.HandleFunc("GET /api/v1/admin/categories", middleware.RequireAdmin(adminHandler.ListCategories()))
	routerMux.HandleFunc("POST /api/v1/admin/categories", middleware.RequireAdmin(adminHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/v1/admin/invitations", middleware.RequireAdmin(adminHandler.ListInvitations()))
	routerMux.HandleFunc("POST /api/v1/admin/invitations", middleware.RequireAdmin(adminHandler.CreateInvitation()))
	routerMux.HandleFunc("PUT /api/v1/admin/invitations/{id}", middleware.RequireAdmin(adminHandler.UpdateInvitation()))
	routerMux.HandleFunc("DELETE /api/v1/admin/invitations/{id}", middleware.RequireAdmin(adminHandler.DeleteInvitation()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", middleware.RequireAdmin(adminHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}", middleware.RequireAdmin(adminHandler.GetOrder()))
	routerMux.HandleFunc("PUT /api/v1/admin/orders/{id}", middleware.RequireAdmin(adminHandler.UpdateOrder()))
	routerMux.HandleFunc("DELETE /api/v1/admin/orders/{id}", middleware.RequireAdmin(adminHandler.DeleteOrder()))
	routerMux.HandleFunc("POST /api/v1/admin/uploads", middleware.RequireAdmin(adminHandler.UploadImage()))

	// Middleware chaining, the metrics middleware must see the routed request
	var apiHandler http.Handler = routerMux
	apiHandler = metrics.Middleware(apiHandler)
	apiHandler = sessionMiddleware.Handle(apiHandler)

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", apiHandler)
	rootMux.Handle("GET /health", h.Handler())
	rootMux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = rootMux
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}

func newStore(cfg *config.Config) (storage.Store, error) {

	if cfg.Storage.Driver == config.StorageDriverRedis {
		redisClient, err := storage.NewRedisClient(&cfg.RedisConnect)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStore(redisClient, cfg.Storage.SessionTTL), nil
	}

	return storage.NewMemoryStore(), nil
}
