package modrinth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/project/fabric-api", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "P7dR8mSH",
			"slug": "fabric-api",
			"title": "Fabric API",
			"description": "Core library for the Fabric toolchain",
			"project_type": "mod",
			"categories": ["library"],
			"loaders": ["fabric"],
			"versions": ["1.20.1", "1.21"],
			"downloads": 9000000,
			"followers": 20000
		}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	project, err := client.GetProject(context.Background(), "fabric-api")

	require.NoError(t, err)
	assert.Equal(t, "P7dR8mSH", project.ID)
	assert.Equal(t, "Fabric API", project.Title)
	assert.Equal(t, []string{"fabric"}, project.Loaders)
	assert.Equal(t, 9000000, project.Downloads)
}

func TestClient_GetProject_EmptyID(t *testing.T) {
	client := NewClient(nil)

	_, err := client.GetProject(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestClient_GetProject_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","description":"the requested project does not exist"}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	_, err := client.GetProject(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.ErrorMsg)
}
