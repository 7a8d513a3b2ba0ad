package modrinth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const versionsResponse = `[
	{
		"id": "rAfhHfow",
		"project_id": "AANobbMI",
		"name": "Sodium 0.5.11",
		"version_number": "mc1.21-0.5.11",
		"version_type": "release",
		"game_versions": ["1.21"],
		"loaders": ["fabric"],
		"dependencies": [
			{"project_id": "P7dR8mSH", "dependency_type": "required"},
			{"project_id": "mOgUt4GM", "dependency_type": "optional"}
		],
		"files": [
			{"url": "https://cdn.modrinth.com/sodium-0.5.11.jar", "filename": "sodium-0.5.11.jar", "primary": true, "size": 1048576}
		],
		"downloads": 500000,
		"date_published": "2024-06-13T15:00:00Z"
	},
	{
		"id": "xkzyJGpd",
		"project_id": "AANobbMI",
		"name": "Sodium 0.6.0 Beta",
		"version_number": "mc1.21-0.6.0-beta.1",
		"version_type": "beta",
		"game_versions": ["1.21"],
		"loaders": ["fabric", "neoforge"],
		"dependencies": [],
		"files": [
			{"url": "https://cdn.modrinth.com/sodium-0.6.0.jar", "filename": "sodium-0.6.0.jar", "primary": false, "size": 2097152}
		],
		"downloads": 1000,
		"date_published": "2024-07-01T00:00:00Z"
	}
]`

func TestClient_GetVersions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/project/AANobbMI/version", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(versionsResponse))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	list, err := client.GetVersions(context.Background(), "AANobbMI")

	require.NoError(t, err)
	require.Len(t, list.Versions, 2)
	assert.Positive(t, list.Elapsed)

	first := list.Versions[0]
	assert.Equal(t, "mc1.21-0.5.11", first.VersionNumber)
	assert.Equal(t, "release", first.VersionType)
	assert.Equal(t, []string{"1.21"}, first.GameVersions)
	assert.Equal(t, []string{"fabric"}, first.Loaders)
	require.Len(t, first.Files, 1)
	assert.Equal(t, int64(1048576), first.Files[0].Size)
}

func TestClient_GetVersions_EmptyProjectID(t *testing.T) {
	client := NewClient(nil)

	_, err := client.GetVersions(context.Background(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "project ID")
}

func TestClient_GetVersions_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","description":"the requested project does not exist"}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL})

	_, err := client.GetVersions(context.Background(), "nope")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestGetPrimaryFile(t *testing.T) {
	tests := []struct {
		name         string
		version      *Version
		expectedFile string
		expectError  bool
	}{
		{
			name: "primary file marked",
			version: &Version{
				Files: []File{
					{Filename: "mod-sources.jar", Primary: false},
					{Filename: "mod.jar", Primary: true},
				},
			},
			expectedFile: "mod.jar",
		},
		{
			name: "no primary falls back to first",
			version: &Version{
				Files: []File{
					{Filename: "first.jar", Primary: false},
					{Filename: "second.jar", Primary: false},
				},
			},
			expectedFile: "first.jar",
		},
		{
			name:        "no files",
			version:     &Version{VersionNumber: "1.0.0"},
			expectError: true,
		},
		{
			name:        "nil version",
			version:     nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := GetPrimaryFile(tt.version)

			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedFile, file.Filename)
		})
	}
}
