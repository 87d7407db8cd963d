// Package router wires the HTTP routes and middleware.
package router

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/config"
	"github.com/petermazzocco/movie-catalog-api/internal/handlers"
	"github.com/petermazzocco/movie-catalog-api/internal/middleware"
	"github.com/petermazzocco/movie-catalog-api/internal/observability"
	"github.com/petermazzocco/movie-catalog-api/pkg/response"
)

// Handlers groups the entity handlers served by the router.
type Handlers struct {
	Users  *handlers.UserHandler
	Movies *handlers.MovieHandler
	Genres *handlers.GenreHandler
}

// New builds the API router.
func New(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.RequestLogger(logger))
	r.Use(metrics.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg.App.Origin),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, apperrors.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, apperrors.ClientInput("Method not allowed"))
	})

	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(
			cfg.App.RateLimitPerMinute,
			1*time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			response.JSON(w, http.StatusOK, response.Body{"message": "Welcome to the API world"})
		})

		r.Route("/user", func(r chi.Router) {
			r.Post("/", h.Users.CreateUser)
			r.Get("/", h.Users.GetAllUsers)
			r.Get("/{userId}", h.Users.GetUser)
			r.Put("/{userId}", h.Users.UpdateUser)
			r.Delete("/{userId}", h.Users.DeleteUser)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", h.Movies.ListMovies)
			r.Get("/{movieId}", h.Movies.GetMovie)
			r.With(middleware.MovieFields(true)).Post("/{userId}", h.Movies.CreateMovie)
			r.With(middleware.MovieFields(false)).Put("/{movieId}", h.Movies.UpdateMovie)
			r.Delete("/{movieId}", h.Movies.DeleteMovie)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Post("/", h.Genres.CreateGenre)
			r.Get("/{userId}", h.Genres.ListGenresForUser)
			r.Get("/{genreName}/{userId}", h.Genres.ListMoviesByGenreAndUser)
			r.Put("/{genreName}/{id}", h.Genres.UpdateGenre)
			r.Delete("/{genreName}/{id}", h.Genres.DeleteGenre)
		})
	})

	return r
}

// allowedOrigins splits a comma separated origin list. Empty allows all.
func allowedOrigins(origin string) []string {
	var origins []string
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
