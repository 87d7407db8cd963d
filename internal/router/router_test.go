package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/petermazzocco/movie-catalog-api/internal/config"
	"github.com/petermazzocco/movie-catalog-api/internal/handlers"
	"github.com/petermazzocco/movie-catalog-api/internal/imagehost"
	"github.com/petermazzocco/movie-catalog-api/internal/observability"
	"github.com/petermazzocco/movie-catalog-api/internal/repository"
	"github.com/petermazzocco/movie-catalog-api/internal/service"
	"github.com/petermazzocco/movie-catalog-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUploader struct {
	mu      sync.Mutex
	count   int
	deleted []string
}

func (f *fakeUploader) Upload(ctx context.Context, src imagehost.Source) (*imagehost.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	id := fmt.Sprintf("movieImage/%d.png", f.count)
	return &imagehost.Asset{PublicID: id, SecureURL: "https://cdn.example.com/" + id}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return nil
}

type testAPI struct {
	server *httptest.Server
	db     *gorm.DB
	images *fakeUploader
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testutil.NewDB(t)
	images := &fakeUploader{}

	users := repository.NewUserRepository(db)
	movies := repository.NewMovieRepository(db)
	genres := repository.NewGenreRepository(db)

	cfg := &config.Config{App: config.AppConfig{RateLimitPerMinute: 10000}}
	r := New(cfg, testutil.DiscardLogger(), observability.NewMetrics(), Handlers{
		Users:  handlers.NewUserHandler(service.NewUserService(users, images)),
		Movies: handlers.NewMovieHandler(service.NewMovieService(movies, genres, users, images)),
		Genres: handlers.NewGenreHandler(service.NewGenreService(genres, movies)),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testAPI{server: srv, db: db, images: images}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return res.StatusCode, nil
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return res.StatusCode, out
}

func (a *testAPI) createUser(t *testing.T, name, email string) string {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/user", fmt.Sprintf(`{"name":%q,"email":%q}`, name, email))
	require.Equal(t, http.StatusCreated, status, body)
	return body["user"].(map[string]any)["id"].(string)
}

func (a *testAPI) createGenre(t *testing.T, name string) string {
	t.Helper()
	status, body := a.do(t, http.MethodPost, "/genres", fmt.Sprintf(`{"name":%q}`, name))
	require.Equal(t, http.StatusCreated, status, body)
	return body["genre"].(map[string]any)["id"].(string)
}

func (a *testAPI) createMovie(t *testing.T, userID, genreID, title string) string {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"year":"2001","genre":%q,"language":"en","description":"d","image":"https://example.com/p.png"}`, title, genreID)
	status, resp := a.do(t, http.MethodPost, "/movies/"+userID, body)
	require.Equal(t, http.StatusCreated, status, resp)
	return resp["movie"].(map[string]any)["id"].(string)
}

func TestWelcomeAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Welcome to the API world", body["message"])

	res, err := api.server.Client().Get(api.server.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(raw), "movies_http_requests_total")
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", body["status"])
}

func TestUserFlow(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(t, http.MethodGet, "/user", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Users not found", body["error"])

	id := api.createUser(t, "Ada", "ada@example.com")

	status, body = api.do(t, http.MethodPost, "/user", `{"name":"Ada","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User already exists.", body["message"])
	assert.Equal(t, id, body["user"].(map[string]any)["id"])

	status, body = api.do(t, http.MethodPost, "/user", `{"name":"Bob","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email format. Make sure it includes: '@', '.'", body["error"])

	status, body = api.do(t, http.MethodPut, "/user/"+id, `{"name":"Ada L"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada L", body["user"].(map[string]any)["name"])

	status, body = api.do(t, http.MethodGet, "/user", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["users"], 1)

	status, _ = api.do(t, http.MethodDelete, "/user/"+id, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = api.do(t, http.MethodGet, "/user/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteMissingEntities(t *testing.T) {
	api := newTestAPI(t)

	status, _ := api.do(t, http.MethodDelete, "/user/does-not-exist", "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body := api.do(t, http.MethodDelete, "/movies/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Movie not found", body["error"])

	status, body = api.do(t, http.MethodDelete, "/genres/drama/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Genre not found", body["error"])
}

func TestMovieFlow(t *testing.T) {
	api := newTestAPI(t)
	userID := api.createUser(t, "Ada", "ada@example.com")
	genreID := api.createGenre(t, "Crime")

	status, body := api.do(t, http.MethodPost, "/movies/"+userID,
		`{"title":"Heat","year":1995,"genre":"`+genreID+`","description":"a heist"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Please provide all required fields", body["error"])

	status, body = api.do(t, http.MethodPost, "/movies/"+userID,
		`{"title":"Heat","year":1995,"genre":"`+genreID+`","language":"en","description":"a heist"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Image is missing", body["error"])

	status, body = api.do(t, http.MethodPost, "/movies/"+userID,
		`{"title":"Heat","year":"1995","genre":"`+genreID+`","language":"en","description":7,"image":"https://example.com/heat.png"}`)
	require.Equal(t, http.StatusCreated, status, body)
	movie := body["movie"].(map[string]any)
	movieID := movie["id"].(string)
	assert.Equal(t, "heat", movie["title"])
	assert.Equal(t, float64(1995), movie["year"])
	assert.Equal(t, "7", movie["description"])
	assert.Equal(t, "crime", movie["genre"].(map[string]any)["name"])
	assert.Equal(t, "movieImage/1.png", movie["image"].(map[string]any)["public_id"])

	status, body = api.do(t, http.MethodPut, "/movies/"+movieID, `{"year":1996}`)
	require.Equal(t, http.StatusOK, status, body)
	movie = body["movie"].(map[string]any)
	assert.Equal(t, float64(1996), movie["year"])
	assert.Equal(t, "heat", movie["title"])
	assert.Equal(t, "en", movie["language"])
	assert.Equal(t, "7", movie["description"])
	assert.Equal(t, genreID, movie["genre_id"])

	status, body = api.do(t, http.MethodPut, "/movies/"+movieID, `{"image":"https://example.com/heat2.png"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "movieImage/2.png", body["movie"].(map[string]any)["image"].(map[string]any)["public_id"])
	assert.Equal(t, []string{"movieImage/1.png"}, api.images.deleted)

	status, body = api.do(t, http.MethodGet, "/movies/"+movieID, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, movieID, body["movie"].(map[string]any)["id"])

	status, _ = api.do(t, http.MethodDelete, "/movies/"+movieID, "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, []string{"movieImage/1.png", "movieImage/2.png"}, api.images.deleted)

	status, _ = api.do(t, http.MethodGet, "/movies/"+movieID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMoviePagination(t *testing.T) {
	api := newTestAPI(t)
	userID := api.createUser(t, "Ada", "ada@example.com")
	genreID := api.createGenre(t, "crime")
	for i := 0; i < 10; i++ {
		api.createMovie(t, userID, genreID, fmt.Sprintf("movie %d", i))
	}

	tests := []struct {
		query string
		page  float64
		items int
	}{
		{"", 1, 4},
		{"?page=2", 2, 4},
		{"?page=3", 3, 2},
		{"?page=4", 4, 0},
		{"?page=abc", 1, 4},
		{"?page=4611686018427387905", 4611686018427387905, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, body := api.do(t, http.MethodGet, "/movies"+tt.query, "")
			require.Equal(t, http.StatusOK, status)
			assert.Len(t, body["data"], tt.items)

			pagination := body["pagination"].(map[string]any)
			assert.Equal(t, tt.page, pagination["currentPage"])
			assert.Equal(t, float64(4), pagination["pageSize"])
			assert.Equal(t, float64(10), pagination["totalMovies"])
			assert.Equal(t, float64(3), pagination["totalPages"])
		})
	}
}

func TestGenreFlow(t *testing.T) {
	api := newTestAPI(t)
	userID := api.createUser(t, "Ada", "ada@example.com")
	dramaID := api.createGenre(t, "Drama")
	comedyID := api.createGenre(t, "comedy")

	status, body := api.do(t, http.MethodPost, "/genres", `{"name":"DRAMA"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Genre already exists", body["error"])

	for i := 0; i < 5; i++ {
		api.createMovie(t, userID, dramaID, fmt.Sprintf("drama %d", i))
	}

	status, body = api.do(t, http.MethodGet, "/genres/DRAMA/"+userID+"?page=2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["movies"], 1)
	assert.Equal(t, float64(2), body["pagination"].(map[string]any)["totalPages"])

	status, body = api.do(t, http.MethodGet, "/genres/comedy/"+userID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["movies"], 0)
	assert.Equal(t, float64(0), body["pagination"].(map[string]any)["totalMovies"])

	status, _ = api.do(t, http.MethodGet, "/genres/western/"+userID, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(t, http.MethodGet, "/genres/"+userID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["genres"], 2)

	otherID := api.createUser(t, "Bob", "bob@example.com")
	status, body = api.do(t, http.MethodGet, "/genres/"+otherID, "")
	require.Equal(t, http.StatusOK, status)
	for _, g := range body["genres"].([]any) {
		movies, ok := g.(map[string]any)["movies"]
		require.True(t, ok, "genre without movies key: %v", g)
		assert.Equal(t, []any{}, movies)
	}

	status, body = api.do(t, http.MethodPut, "/genres/comedy/"+comedyID, `{"name":"Satire"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "satire", body["genre"].(map[string]any)["name"])

	status, body = api.do(t, http.MethodDelete, "/genres/drama/"+dramaID, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Genre still has movies", body["error"])

	status, _ = api.do(t, http.MethodDelete, "/genres/satire/"+comedyID, "")
	assert.Equal(t, http.StatusNoContent, status)
}
