package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reellog/reellog-server/internal/metadata/tmdb"
)

// newTMDBStub serves canned TMDB responses for the metadata handlers.
func newTMDBStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page": 1,
			"total_pages": 1,
			"total_results": 1,
			"results": [
				{"id": 603, "title": "The Matrix", "poster_path": "/matrix.jpg", "release_date": "1999-03-31", "vote_average": 8.2}
			]
		}`))
	})
	listPage := func(id int64, title string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("api_key") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{
				"page": 1,
				"total_pages": 1,
				"total_results": 1,
				"results": [
					{"id": %d, "title": %q, "poster_path": "/list.jpg", "release_date": "2026-07-01", "vote_average": 7.5}
				]
			}`, id, title)
		}
	}
	mux.HandleFunc("/movie/popular", listPage(100, "Popular Pick"))
	mux.HandleFunc("/movie/now_playing", listPage(200, "In Theaters"))
	mux.HandleFunc("/movie/upcoming", listPage(300, "Coming Soon"))
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"original_title": "The Matrix",
			"poster_path": "/matrix.jpg",
			"release_date": "1999-03-31",
			"overview": "A hacker discovers reality is a simulation.",
			"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
			"runtime": 136,
			"vote_average": 8.2,
			"vote_count": 26000,
			"original_language": "en"
		}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchCatalog(t *testing.T) {
	stub := newTMDBStub(t)
	ts := setupTestServer(t, stub.URL)
	token, _ := ts.registerAccount(t, "searcher", "searcher@example.com")

	resp := ts.api.Get("/api/v1/metadata/search?query=matrix", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var page tmdb.SearchPage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))

	assert.Equal(t, 1, page.TotalResults)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(603), page.Results[0].TmdbID)
	assert.Equal(t, "The Matrix", page.Results[0].Title)
	// Poster paths come back as full image URLs.
	require.NotNil(t, page.Results[0].PosterPath)
	assert.Contains(t, *page.Results[0].PosterPath, "/matrix.jpg")
}

func TestSearchCatalog_EmptyQuery(t *testing.T) {
	stub := newTMDBStub(t)
	ts := setupTestServer(t, stub.URL)
	token, _ := ts.registerAccount(t, "lazy", "lazy@example.com")

	resp := ts.api.Get("/api/v1/metadata/search?query=", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "query is required", apiErr.Message)
}

func TestCatalogLists(t *testing.T) {
	stub := newTMDBStub(t)
	ts := setupTestServer(t, stub.URL)
	token, _ := ts.registerAccount(t, "lister", "lister@example.com")

	tests := []struct {
		path   string
		tmdbID int64
		title  string
	}{
		{"/api/v1/metadata/popular", 100, "Popular Pick"},
		{"/api/v1/metadata/now-playing", 200, "In Theaters"},
		{"/api/v1/metadata/upcoming", 300, "Coming Soon"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := ts.api.Get(tt.path, "Authorization: Bearer "+token)
			assert.Equal(t, http.StatusOK, resp.Code)

			var page tmdb.SearchPage
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))

			require.Len(t, page.Results, 1)
			assert.Equal(t, tt.tmdbID, page.Results[0].TmdbID)
			assert.Equal(t, tt.title, page.Results[0].Title)
			require.NotNil(t, page.Results[0].PosterPath)
			assert.Contains(t, *page.Results[0].PosterPath, "/list.jpg")
		})
	}
}

func TestCatalogLists_RequireAuth(t *testing.T) {
	stub := newTMDBStub(t)
	ts := setupTestServer(t, stub.URL)

	resp := ts.api.Get("/api/v1/metadata/popular")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetCatalogMovie(t *testing.T) {
	stub := newTMDBStub(t)
	ts := setupTestServer(t, stub.URL)
	token, _ := ts.registerAccount(t, "detailer", "detailer@example.com")

	resp := ts.api.Get("/api/v1/metadata/movies/603", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var details tmdb.MovieDetails
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &details))

	assert.Equal(t, int64(603), details.TmdbID)
	assert.Equal(t, "The Matrix", details.Title)
	assert.Equal(t, 136, details.Runtime)
	require.Len(t, details.Genres, 2)
	assert.Equal(t, "Action", details.Genres[0].Name)
}

func TestGetCatalogMovie_NotFound(t *testing.T) {
	stub := newTMDBStub(t)
	ts := setupTestServer(t, stub.URL)
	token, _ := ts.registerAccount(t, "misser", "misser@example.com")

	resp := ts.api.Get("/api/v1/metadata/movies/999999", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "movie not found in catalog", apiErr.Message)
}

func TestMetadata_RequiresAuth(t *testing.T) {
	stub := newTMDBStub(t)
	ts := setupTestServer(t, stub.URL)

	resp := ts.api.Get("/api/v1/metadata/search?query=matrix")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
