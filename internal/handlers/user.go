// Package handlers contains the HTTP handlers for the API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/service"
	"github.com/petermazzocco/movie-catalog-api/models"
	"github.com/petermazzocco/movie-catalog-api/pkg/response"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service service.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service service.UserServicer) *UserHandler {
	return &UserHandler{service: service}
}

// decodeJSON reads a JSON object body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.ClientInput("Invalid request body")
	}
	return nil
}

// CreateUser signs a user up, or returns the user already registered with
// the email.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	user, created, err := h.service.CreateOrFetch(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if !created {
		response.JSON(w, http.StatusOK, response.Body{"message": "User already exists.", "user": user})
		return
	}
	response.JSON(w, http.StatusCreated, response.Body{"message": "User created successfully!", "user": user})
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"user": user})
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"users": users})
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, "userId"), &req)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Body{"message": "User updated successfully", "user": user})
}

// DeleteUser answers 204 whether or not the user existed.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "userId")); err != nil {
		response.Error(w, r, err)
		return
	}
	response.NoContent(w)
}
