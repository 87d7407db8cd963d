package service

import (
	"context"
	"errors"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/repository"
	appvalidator "github.com/petermazzocco/movie-catalog-api/internal/validator"
	"github.com/petermazzocco/movie-catalog-api/models"

	"github.com/go-playground/validator/v10"
)

// UserService handles business logic for user operations.
type UserService struct {
	repo     repository.UserRepository
	images   ImageUploader
	validate *validator.Validate
}

// NewUserService creates a new UserService. images removes the hosted
// images of a deleted user's movies.
func NewUserService(repo repository.UserRepository, images ImageUploader) *UserService {
	return &UserService{
		repo:     repo,
		images:   images,
		validate: appvalidator.New(),
	}
}

// CreateOrFetch signs a user up, or returns the existing user when the
// email is already registered.
func (s *UserService) CreateOrFetch(ctx context.Context, req *models.CreateUserRequest) (*models.User, bool, error) {
	if err := s.check(req); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	user := &models.User{Name: req.Name, Email: req.Email}
	if err := s.repo.Create(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrEmailTaken) {
			return nil, false, err
		}
		// Lost a race with a concurrent signup for the same email.
		existing, err := s.repo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, apperrors.Internal(errors.New("user vanished after duplicate email"))
		}
		return existing, false, nil
	}
	return user, true, nil
}

// GetUser retrieves a user with their movies.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAllUsers retrieves every user. An empty table is reported as not found.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperrors.ErrUsersNotFound
	}
	return users, nil
}

// UpdateUser applies the provided fields of req.
func (s *UserService) UpdateUser(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteUser removes the user and their movies. Deleting an unknown user
// is not an error.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	movies, _, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range movies {
		removeImage(ctx, s.images, m.Image.PublicID)
	}
	return nil
}

// check maps validation failures onto client errors. Missing fields are
// reported before malformed ones.
func (s *UserService) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Internal(err)
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return apperrors.ErrUserFieldsRequired
		}
	}
	for _, fe := range fieldErrs {
		if fe.Field() == "Name" {
			return apperrors.ErrInvalidUsername
		}
	}
	return apperrors.ErrInvalidEmail
}
