package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize is the fixed number of movies returned per list page.
const PageSize = 4

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"size:30;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Movies    []Movie   `json:"movies" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Genre struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Movies    []Movie   `json:"movies" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// ImageRef points at an asset on the image host.
type ImageRef struct {
	PublicID  string `json:"public_id" gorm:"size:255"`
	SecureURL string `json:"secure_url" gorm:"size:1024"`
}

type Movie struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Year        int       `json:"year" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Language    string    `json:"language" gorm:"size:64;not null"`
	Image       ImageRef  `json:"image" gorm:"embedded;embeddedPrefix:image_"`
	GenreID     string    `json:"genre_id" gorm:"size:36;not null;index"`
	Genre       *Genre    `json:"genre,omitempty"`
	UserID      string    `json:"user_id" gorm:"size:36;not null;index"`
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Pagination describes one page of a paginated list.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalMovies int64 `json:"totalMovies"`
	TotalPages  int   `json:"totalPages"`
}

// NewPagination computes the page count for total items.
func NewPagination(page int, total int64) Pagination {
	return Pagination{
		CurrentPage: page,
		PageSize:    PageSize,
		TotalMovies: total,
		TotalPages:  int((total + PageSize - 1) / PageSize),
	}
}

// MaxPage is the last page whose offset fits in an int.
const MaxPage = math.MaxInt/PageSize + 1

// Offset is the number of rows to skip for page. Pages past MaxPage
// saturate at math.MaxInt so they select no rows.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		return math.MaxInt
	}
	return (page - 1) * PageSize
}

type MoviePage struct {
	Movies     []Movie    `json:"movies"`
	Pagination Pagination `json:"pagination"`
}
