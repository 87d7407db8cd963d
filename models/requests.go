package models

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=30"`
	Email string `json:"email" validate:"required,email_format"`
}

// UpdateUserRequest is a partial patch; nil fields are left unchanged.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=30"`
	Email *string `json:"email" validate:"omitempty,email_format"`
}

type GenreRequest struct {
	Name string `json:"name"`
}

// MovieInput is the normalized movie payload. Nil fields were absent from
// the request.
type MovieInput struct {
	Title       *string
	Year        *int
	Description *string
	Language    *string
	GenreID     *string
	// Image holds a URL or local path when no file part was uploaded.
	Image string
}

// MoviePatch lists the columns an update writes, keyed by column name.
type MoviePatch map[string]any
