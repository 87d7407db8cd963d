package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/petermazzocco/movie-catalog-api/internal/service"
	"github.com/petermazzocco/movie-catalog-api/models"
	"github.com/petermazzocco/movie-catalog-api/pkg/response"
)

// GenreHandler handles HTTP requests for genre operations. Routes that
// carry both {genreName} and {id} act on the id alone.
type GenreHandler struct {
	service service.GenreServicer
}

// NewGenreHandler creates a new GenreHandler.
func NewGenreHandler(service service.GenreServicer) *GenreHandler {
	return &GenreHandler{service: service}
}

func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var req models.GenreRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	genre, err := h.service.CreateGenre(r.Context(), req.Name)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.Body{"message": "Genre created successfully", "genre": genre})
}

func (h *GenreHandler) ListMoviesByGenreAndUser(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListMoviesByGenreAndUser(r.Context(), chi.URLParam(r, "genreName"), chi.URLParam(r, "userId"), parsePage(r))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"movies": page.Movies, "pagination": page.Pagination})
}

func (h *GenreHandler) ListGenresForUser(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.ListGenresForUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"genres": genres})
}

func (h *GenreHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	var req models.GenreRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	genre, err := h.service.RenameGenre(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"message": "Genre updated successfully", "genre": genre})
}

func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGenre(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, err)
		return
	}
	response.NoContent(w)
}
