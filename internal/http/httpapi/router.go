package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"bloodcorner/internal/http/handlers"
	"bloodcorner/internal/middleware"
)

// Options carries the router's collaborators beyond the handler container.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	DefaultLocale  string
	CountryLookup  middleware.CountryLookup
	Metrics        prometheus.Gatherer
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.Locale(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{}))
	}

	r.Get("/v1/stats", app.StatsSummary)

	r.Route("/v1/donors", func(r chi.Router) {
		r.Post("/", app.DonorsCreate)
		r.Get("/", app.DonorsList)
		r.Put("/{id}", app.DonorUpdate)
		r.Post("/{id}/contact", app.DonorContact)
		r.Delete("/{id}", app.DonorDelete)
	})

	r.Route("/v1/requests", func(r chi.Router) {
		r.Post("/", app.RequestsCreate)
		r.Get("/", app.RequestsList)
		r.Delete("/{id}", app.RequestResolve)
	})

	r.Route("/v1/posts", func(r chi.Router) {
		r.Post("/", app.PostsCreate)
		r.Get("/", app.PostsList)
	})

	r.Get("/v1/admin/export", app.AdminExport)

	return r
}
