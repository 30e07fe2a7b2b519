package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"fundtrack/internal/http/handlers"
	"fundtrack/internal/middleware"
)

// Options carries the cross-cutting settings of the router.
type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	Locales         *middleware.Locales
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.Locales, opts.CountryLookup),
	)

	r.Route("/v1", func(r chi.Router) {
		// Health
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(opts.JWTSecret))

			// Profiles are created before LoadUser can find them.
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/profile", app.CreateProfile)

			r.Group(func(r chi.Router) {
				r.Use(app.LoadUser)

				r.Get("/me", app.Me)
				r.Get("/leaderboard", app.Leaderboard)
				r.Get("/announcements", app.AnnouncementsList)

				r.Group(func(r chi.Router) {
					r.Use(app.RequireIntern)
					r.Get("/dashboard", app.Dashboard)
					r.Get("/donations", app.DonationsList)
					r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/donations", app.DonationsCreate)
				})

				r.Group(func(r chi.Router) {
					r.Use(app.RequireAdmin)
					r.Post("/announcements", app.AnnouncementsCreate)
					r.Route("/admin", func(r chi.Router) {
						r.Get("/overview", app.AdminOverview)
						r.Get("/interns", app.AdminInterns)
						r.Patch("/interns/{id}", app.AdminUpdateIntern)
						r.Get("/reconcile", app.AdminReconcile)
						r.Get("/reports/fundraising", app.FundraisingReport)
					})
				})
			})
		})
	})

	return r
}
