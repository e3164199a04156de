package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"pitchdeck/internal/http/handlers"
	"pitchdeck/internal/middleware"
)

// RouterOptions carries the cross-cutting settings of the router.
type RouterOptions struct {
	Logger             zerolog.Logger
	CORSAllowedOrigins []string
	RetryLimitPerMin   int
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders  bool
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.RequestID(opts.Logger),
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSAllowedOrigins),
	)

	retryLimit := middleware.RateLimit(opts.RetryLimitPerMin, time.Minute)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Route("/slides", func(r chi.Router) {
			r.Get("/", app.ListSlides)
			r.Get("/active", app.ActiveSlide)
			r.Put("/active", app.ShowSlide)
			r.Post("/next", app.NextSlide)
			r.Post("/prev", app.PrevSlide)
			r.Get("/archive", app.Archive)
			r.Get("/{index}", app.GetSlide)
			r.Get("/{index}/image", app.SlideImage)
			r.With(retryLimit).Post("/{index}/retry", app.RetrySlide)
		})
	})

	return r
}
