// Package middleware holds request middleware specific to the movie API.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/petermazzocco/movie-catalog-api/internal/apperrors"
	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/models"
	"github.com/petermazzocco/movie-catalog-api/pkg/response"
)

// MaxBodyBytes bounds a movie request body, image part included.
const MaxBodyBytes = imagehost.DefaultMaxBytes + 1<<20

type movieInputKey struct{}

// requiredMovieFields must be present and non-empty when creating a movie.
var requiredMovieFields = []string{"title", "year", "genre", "language", "description"}

// MovieFields reads the movie payload from a JSON body or a multipart
// form, coerces it and stores the result in the request context. With
// requireAll every movie field must be present; otherwise only the fields
// present are coerced.
func MovieFields(requireAll bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields, err := readFields(w, r)
			if err != nil {
				response.Error(w, r, err)
				return
			}

			input, err := NormalizeMovieFields(fields, requireAll)
			if err != nil {
				response.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), movieInputKey{}, input)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MovieInputFromContext returns the payload stored by MovieFields.
func MovieInputFromContext(ctx context.Context) (models.MovieInput, bool) {
	input, ok := ctx.Value(movieInputKey{}).(models.MovieInput)
	return input, ok
}

func readFields(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(MaxBodyBytes); err != nil {
			return nil, bodyError(err)
		}
		return formFields(r.MultipartForm.Value), nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return formFields(r.PostForm), nil
	}

	fields := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, bodyError(err)
	}
	return fields, nil
}

func formFields(values map[string][]string) map[string]any {
	fields := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.ClientInput(fmt.Sprintf("Request body is too large (max %dMB)", MaxBodyBytes>>20))
	}
	return apperrors.ClientInput("Invalid request body")
}

// NormalizeMovieFields coerces a raw movie payload:
//   - language: must be a string, checked before any coercion
//   - year: strings are parsed, numbers truncated
//   - title, description, genre: scalars become strings; title and genre
//     are lowercased
//
// Absent and null fields stay nil in the result.
func NormalizeMovieFields(fields map[string]any, requireAll bool) (models.MovieInput, error) {
	var input models.MovieInput

	if requireAll {
		for _, name := range requiredMovieFields {
			if !truthy(fields[name]) {
				return input, apperrors.ErrMovieFieldsRequired
			}
		}
	}

	if v, ok := present(fields, "language"); ok {
		language, isString := v.(string)
		if !isString {
			return input, apperrors.ErrLanguageNotString
		}
		input.Language = &language
	}

	if v, ok := present(fields, "year"); ok {
		year, err := toInt(v)
		if err != nil {
			return input, err
		}
		input.Year = &year
	}

	if v, ok := present(fields, "title"); ok {
		title := strings.ToLower(toString(v))
		input.Title = &title
	}

	if v, ok := present(fields, "description"); ok {
		description := toString(v)
		input.Description = &description
	}

	if v, ok := present(fields, "genre"); ok {
		genre := strings.ToLower(toString(v))
		input.GenreID = &genre
	}

	if s, ok := fields["image"].(string); ok {
		input.Image = s
	}

	return input, nil
}

func present(fields map[string]any, name string) (any, bool) {
	v, ok := fields[name]
	return v, ok && v != nil
}

// truthy treats nil, "", 0 and false as missing.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// maxYearFloat is 2^63; float64 values at or past it do not fit an int64.
const maxYearFloat = 1 << 63

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || t >= maxYearFloat || t < -maxYearFloat {
			return 0, apperrors.ErrYearNotInteger
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, apperrors.ErrYearNotInteger
		}
		return n, nil
	default:
		return 0, apperrors.ErrYearNotInteger
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
