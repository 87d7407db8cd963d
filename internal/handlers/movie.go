package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/internal/middleware"
	"github.com/petermazzocco/movie-catalog-api/internal/service"
	"github.com/petermazzocco/movie-catalog-api/pkg/response"
)

// MovieHandler handles HTTP requests for movie operations. Create and
// update expect middleware.MovieFields to have run.
type MovieHandler struct {
	service service.MovieServicer
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(service service.MovieServicer) *MovieHandler {
	return &MovieHandler{service: service}
}

func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	input, ok := middleware.MovieInputFromContext(r.Context())
	if !ok {
		response.Error(w, r, apperrors.ErrMovieFieldsRequired)
		return
	}

	image := imagehost.SourceFromRequest(r, input.Image)
	movie, err := h.service.CreateMovie(r.Context(), chi.URLParam(r, "userId"), input, image)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Body{"message": "Movie created successfully", "movie": movie})
}

// UpdateMovie patches the fields present in the request and replaces the
// image when one is supplied.
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	input, _ := middleware.MovieInputFromContext(r.Context())

	image := imagehost.SourceFromRequest(r, input.Image)
	movie, err := h.service.UpdateMovie(r.Context(), chi.URLParam(r, "movieId"), input, image)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"message": "Movie updated successfully", "movie": movie})
}

func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovie(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"movie": movie})
}

func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListMovies(r.Context(), parsePage(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"data": page.Movies, "pagination": page.Pagination})
}

func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovie(r.Context(), chi.URLParam(r, "movieId")); err != nil {
		response.Error(w, r, err)
		return
	}
	response.NoContent(w)
}
