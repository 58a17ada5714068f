package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/apiwat-s/screenscout-api/internal/auth"
	"github.com/apiwat-s/screenscout-api/internal/middleware"
)

// RouterParams bundles the dependencies of the HTTP router.
type RouterParams struct {
	Logger       *zerolog.Logger
	TokenIssuer  auth.TokenIssuer
	AuthHandler  *AuthHandler
	UserHandler  *UserHandler
	MovieHandler *MovieHandler

	// GoogleLoginEnabled mounts /api/auth/google when a Google client id
	// is configured.
	GoogleLoginEnabled bool
}

// NewRouter builds the chi router with the full API surface.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Use(hlog.NewHandler(*p.Logger))
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Movies API running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", p.AuthHandler.Register)
			r.Post("/login", p.AuthHandler.Login)

			if p.GoogleLoginEnabled {
				r.Post("/google", p.AuthHandler.GoogleLogin)
			}
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(p.TokenIssuer))

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", p.UserHandler.GetProfile)
				r.Get("/favorites", p.UserHandler.GetFavorites)
				r.Post("/favorites", p.UserHandler.AddFavorite)
				r.Delete("/favorites", p.UserHandler.RemoveFavorite)
				r.Get("/search-history", p.UserHandler.GetSearchHistory)
				r.Post("/search-history", p.UserHandler.AddSearchHistory)
			})

			r.Route("/movies", func(r chi.Router) {
				r.Post("/", p.MovieHandler.CacheMovie)
				r.Get("/{type}/{id}", p.MovieHandler.GetMovie)
			})
		})
	})

	return r
}
