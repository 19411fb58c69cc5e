package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

const RateLimitMessage = "Too many requests from this IP, please try again after a minute"

// NewRateLimiter counts requests per remote address. Rejected requests get a
// plain-text 429; X-RateLimit-* headers are set by httprate.
func NewRateLimiter(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, RateLimitMessage, http.StatusTooManyRequests)
		}),
	)
}

func NewRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	return r
}

func RegisterRoutes(
	r chi.Router,
	hConvert *ConvertHandler,
	limiter func(http.Handler) http.Handler,
	publicDir string,
) {
	// --- статика ---
	r.Get("/*", http.FileServer(http.Dir(publicDir)).ServeHTTP)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	// --- конвертация ---
	r.Group(func(lr chi.Router) {
		lr.Use(
			httputil.RecoverMiddleware,
			limiter,
		)

		lr.Post("/convert", hConvert.Convert)
	})
}
