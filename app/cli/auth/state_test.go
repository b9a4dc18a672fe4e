package auth

import (
	"net/http"
	"path/filepath"
	"testing"

	"socialmedia/app/cli/fs"
	shared "socialmedia/app/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withAuthPath(t *testing.T) {
	t.Helper()
	prev := fs.HomeAuthPath
	fs.HomeAuthPath = filepath.Join(t.TempDir(), "auth.json")
	t.Cleanup(func() {
		fs.HomeAuthPath = prev
		Current = nil
	})
}

func TestLoadCurrentMissingFile(t *testing.T) {
	withAuthPath(t)

	require.NoError(t, LoadCurrent())
	assert.Nil(t, Current)
}

func TestSetLoadClear(t *testing.T) {
	withAuthPath(t)

	err := SetAuth(&shared.ClientAuth{Host: "http://localhost:8000", Email: "a@b.com", Token: "tok"})
	require.NoError(t, err)

	Current = nil
	require.NoError(t, LoadCurrent())
	require.NotNil(t, Current)
	assert.Equal(t, "http://localhost:8000", Current.Host)
	assert.Equal(t, "tok", Current.Token)

	require.NoError(t, ClearAuth())
	assert.Nil(t, Current)
	require.NoError(t, LoadCurrent())
	assert.Nil(t, Current)

	// removing twice is fine
	require.NoError(t, ClearAuth())
}

func TestSetAuthHeader(t *testing.T) {
	withAuthPath(t)

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	SetAuthHeader(req)
	assert.Empty(t, req.Header.Get("Authorization"))

	Current = &shared.ClientAuth{Token: "abc"}
	SetAuthHeader(req)
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
}
