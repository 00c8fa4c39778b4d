package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"promisecard/internal/http/handlers"
	"promisecard/internal/infra"
	"promisecard/internal/middleware"
)

// NewRouter wires the REST surface over the engine. Mutating routes require
// a bearer token; the faucet route is additionally rate limited per IP.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		chimw.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Country(lookup),
	)

	auth := middleware.Auth(cfg.JWTSecret)
	faucetLimit := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/stats", app.StatsSummary)
	r.Get("/v1/accounts/{principal}", app.AccountsGet)

	r.Route("/v1/promises", func(r chi.Router) {
		r.Get("/{id}", app.PromisesGet)
		r.Get("/{id}/donations/{principal}", app.DonationsGet)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/", app.PromisesCreate)
			r.Post("/{id}/donations", app.DonationsCreate)
			r.Post("/{id}/fulfill", app.PromisesFulfill)
			r.Post("/{id}/withdraw", app.PromisesWithdraw)
		})
	})

	r.Route("/v1/faucet", func(r chi.Router) {
		r.Use(faucetLimit, auth)
		r.Post("/claims", app.FaucetClaim)
	})

	return r
}
