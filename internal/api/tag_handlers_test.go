package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTags_EmptyInitially(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.registerAccount(t, "taglist", "taglist@example.com")

	resp := ts.api.Get("/api/v1/tags", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var body ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Empty(t, body.Tags)
}

func TestListTags_GlobalVocabulary(t *testing.T) {
	ts := setupTestServer(t, "")
	aliceToken, _ := ts.registerAccount(t, "alice", "alice@example.com")
	bobToken, _ := ts.registerAccount(t, "bob", "bob@example.com")

	ts.logMovie(t, aliceToken, map[string]any{"title": "Hers", "tags": []string{"romance"}})
	ts.logMovie(t, bobToken, map[string]any{"title": "His", "tags": []string{"horror"}})

	// Both accounts see the shared vocabulary, sorted by name.
	resp := ts.api.Get("/api/v1/tags", "Authorization: Bearer "+aliceToken)
	assert.Equal(t, http.StatusOK, resp.Code)

	var body ListTagsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Tags, 2)
	assert.Equal(t, "horror", body.Tags[0].Name)
	assert.Equal(t, "romance", body.Tags[1].Name)
}

func TestAttachTag_NormalizesInput(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.registerAccount(t, "normalizer", "norm@example.com")
	movie := ts.logMovie(t, token, map[string]any{"title": "Tag Target"})

	tests := []struct {
		input    string
		expected string
	}{
		{"Slow Burn", "slow burn"},
		{"FOUND FAMILY", "found family"},
		{"   enemies  to   lovers   ", "enemies to lovers"},
		{"sci-fi", "sci-fi"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			resp := ts.api.Post(fmt.Sprintf("/api/v1/movies/%d/tags", movie.ID),
				map[string]any{"name": tt.input},
				"Authorization: Bearer "+token)
			require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

			var tag TagResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))
			assert.Equal(t, tt.expected, tag.Name)
		})
	}
}

func TestAttachTag_Idempotent(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.registerAccount(t, "repeater", "repeat@example.com")
	movie := ts.logMovie(t, token, map[string]any{"title": "Repeat"})

	resp := ts.api.Post(fmt.Sprintf("/api/v1/movies/%d/tags", movie.ID),
		map[string]any{"name": "favourite"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	var first TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))

	// Same tag again, and with different casing: same row, no error.
	resp = ts.api.Post(fmt.Sprintf("/api/v1/movies/%d/tags", movie.ID),
		map[string]any{"name": "FAVOURITE"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	var second TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID)

	// Movie carries the tag exactly once.
	getResp := ts.api.Get(fmt.Sprintf("/api/v1/movies/%d", movie.ID), "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, getResp.Code)
	var got MovieResponse
	require.NoError(t, json.Unmarshal(getResp.Body.Bytes(), &got))
	assert.Equal(t, []string{"favourite"}, got.Tags)
}

func TestAttachTag_MovieNotFound(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.registerAccount(t, "hopeless", "hopeless@example.com")

	resp := ts.api.Post("/api/v1/movies/99999/tags",
		map[string]any{"name": "orphan"},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAttachTag_CrossAccount(t *testing.T) {
	ts := setupTestServer(t, "")
	ownerToken, _ := ts.registerAccount(t, "towner", "towner@example.com")
	otherToken, _ := ts.registerAccount(t, "tother", "tother@example.com")

	movie := ts.logMovie(t, ownerToken, map[string]any{"title": "Not Yours"})

	resp := ts.api.Post(fmt.Sprintf("/api/v1/movies/%d/tags", movie.ID),
		map[string]any{"name": "graffiti"},
		"Authorization: Bearer "+otherToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAttachTag_BlankName(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.registerAccount(t, "blanktag", "blanktag@example.com")
	movie := ts.logMovie(t, token, map[string]any{"title": "Blank"})

	// Whitespace passes minLength but normalizes to nothing.
	resp := ts.api.Post(fmt.Sprintf("/api/v1/movies/%d/tags", movie.ID),
		map[string]any{"name": "   "},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "tag name is required", apiErr.Message)
}

func TestDetachTag_Idempotent(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.registerAccount(t, "detacher", "detacher@example.com")
	movie := ts.logMovie(t, token, map[string]any{"title": "Detach"})

	resp := ts.api.Post(fmt.Sprintf("/api/v1/movies/%d/tags", movie.ID),
		map[string]any{"name": "temporary"},
		"Authorization: Bearer "+token)
	require.Equal(t, http.StatusCreated, resp.Code)

	var tag TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tag))

	// First detach removes the association.
	resp = ts.api.Delete(fmt.Sprintf("/api/v1/movies/%d/tags/%d", movie.ID, tag.ID),
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Second detach succeeds too.
	resp = ts.api.Delete(fmt.Sprintf("/api/v1/movies/%d/tags/%d", movie.ID, tag.ID),
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	// The tag survives in the global vocabulary.
	listResp := ts.api.Get("/api/v1/tags", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, listResp.Code)
	var body ListTagsResponse
	require.NoError(t, json.Unmarshal(listResp.Body.Bytes(), &body))
	require.Len(t, body.Tags, 1)
	assert.Equal(t, "temporary", body.Tags[0].Name)
}

func TestDetachTag_MovieNotFound(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.registerAccount(t, "detachless", "detachless@example.com")

	resp := ts.api.Delete("/api/v1/movies/99999/tags/1", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
