package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chefos/platform/internal/app/services/auth"
	"github.com/chefos/platform/internal/app/services/products"
	"github.com/chefos/platform/internal/app/storage"
	"github.com/chefos/platform/internal/app/storage/memory"
	"github.com/chefos/platform/internal/app/system"
	"github.com/chefos/platform/internal/logging"
	"github.com/chefos/platform/internal/version"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Products storage.ProductStore
	Users    storage.UserStore
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logging.Logger

	Products *products.Service
	Auth     *auth.Service

	Env       string
	Version   version.Version
	StartedAt time.Time
}

// New builds a fully initialised application with the provided stores and
// identity provider.
func New(stores Stores, provider auth.PasswordAuthenticator, env string, log *logging.Logger) (*Application, error) {
	if log == nil {
		log = logging.NewDefault("app")
	}

	mem := memory.New()
	if stores.Products == nil {
		stores.Products = mem
	}
	if stores.Users == nil {
		stores.Users = mem
	}

	manager := system.NewManager()

	productService := products.New(stores.Products, log)
	authService := auth.New(provider, stores.Users, log)

	for _, name := range []string{"products", "auth"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:   manager,
		log:       log,
		Products:  productService,
		Auth:      authService,
		Env:       env,
		Version:   version.Current(),
		StartedAt: time.Now().UTC(),
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}

// Uptime reports seconds since the application was built.
func (a *Application) Uptime() float64 {
	return time.Since(a.StartedAt).Seconds()
}
