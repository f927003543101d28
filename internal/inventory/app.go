package inventory

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Inventario/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	// AddLimitPerMin caps product submissions per client IP. Zero disables
	// the limit.
	AddLimitPerMin int
}

const addLimitWindow = time.Minute

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)
	setupRoutes(r, s, deps)

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.RoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupRoutes(r *chi.Mux, s *Server, deps HTTPDeps) {
	r.Get("/healthz", healthz)
	r.Get("/readyz", s.handleReady)

	r.Get("/", s.handleRoot)
	r.Get("/inventario", s.handleInventory)
	r.Get("/new_product", s.handleNewProduct)
	r.Get("/products", s.handleProducts)

	add := r.With()
	if deps.AddLimitPerMin > 0 {
		limiter := kit.NewIPRateLimiter(deps.AddLimitPerMin, addLimitWindow)
		add = r.With(limiter.Middleware)
	}
	add.Post("/test_add_product", s.handleAddProduct)

	r.Post("/test_stream", s.handleTestStream)
	r.Post("/testpost", s.handleTestPost)
	r.Get("/clicked", s.handleClicked)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
