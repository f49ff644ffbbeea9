package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/config"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/storage"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Endpoints struct {
	Store storage.Store
	API   Pinger
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "storage",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.Store == nil {
					return fmt.Errorf("session store is not initialized")
				}
				return endpoints.Store.Ping(ctx)
			},
		},
		{
			Name:      "storefront-api",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: func(ctx context.Context) error {
				if endpoints.API == nil {
					return fmt.Errorf("storefront api client is not initialized")
				}
				if err := endpoints.API.Ping(ctx); err != nil {
					return fmt.Errorf("failed to reach storefront api: %w", err)
				}
				return nil
			},
		},
	}

	if cfg.Storage.Driver == config.StorageDriverRedis {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "invitation-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
