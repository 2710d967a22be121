package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	app "github.com/chefos/platform/internal/app"
	"github.com/chefos/platform/internal/logging"
	"github.com/chefos/platform/internal/metrics"
	"github.com/chefos/platform/internal/middleware"
)

// Options tunes the middleware stack around the API routes.
type Options struct {
	RateLimitPerSecond int
	RateLimitBurst     int
	AllowedOrigins     []string
	LogRequests        bool
}

// NewHandler returns the routed API surface with the full middleware chain.
func NewHandler(application *app.Application, log *logging.Logger, m *metrics.Metrics, opts Options) http.Handler {
	if log == nil {
		log = logging.NewDefault("httpapi")
	}
	h := &handler{app: application, log: log}

	r := mux.NewRouter()
	r.Use(middleware.Tracing(log, opts.LogRequests))
	if m != nil {
		r.Use(middleware.Metrics("platform", m))
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}
	if opts.RateLimitPerSecond > 0 {
		r.Use(middleware.NewRateLimiter(opts.RateLimitPerSecond, opts.RateLimitBurst, log).Handler())
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(middleware.NewCORS(opts.AllowedOrigins).Handler())
	}

	r.HandleFunc(rootEndpoint.Path, h.root).Methods(rootEndpoint.Method)
	r.HandleFunc(versionEndpoint.Path, h.version).Methods(versionEndpoint.Method)
	r.HandleFunc(healthEndpoint.Path, h.healthz).Methods(healthEndpoint.Method)
	r.HandleFunc(loginEndpoint.Path, h.login).Methods(loginEndpoint.Method)
	r.HandleFunc(listProductsEndpoint.Path, h.listProducts).Methods(listProductsEndpoint.Method)
	r.HandleFunc(upsertProductEndpoint.Path, h.upsertProduct).Methods(upsertProductEndpoint.Method)
	r.HandleFunc(deleteProductEndpoint.Path, h.deleteProduct).Methods(deleteProductEndpoint.Method)

	return r
}
