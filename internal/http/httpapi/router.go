package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"patronage/internal/http/handlers"
	"patronage/internal/infra"
	"patronage/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Log),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/projects", func(r chi.Router) {
		r.Post("/", app.ProjectsCreate)
		r.Get("/", app.ProjectsList)
		r.Route("/{projectID}/donations", func(r chi.Router) {
			r.Post("/", app.DonationsCreate)
			r.Get("/", app.DonationsByPatron)
		})
	})

	return r
}
