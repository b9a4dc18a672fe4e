package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"socialmedia/app/cli/auth"
	shared "socialmedia/app/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Setenv("SOCIALCTL_API_HOST", "")
	auth.Current = &shared.ClientAuth{Host: srv.URL, Email: "a@b.com", Token: "tok"}
	t.Cleanup(func() {
		srv.Close()
		auth.Current = nil
	})
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestSignIn(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req shared.TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "secret", req.Password)

		writeJSON(w, http.StatusOK, shared.TokenResponse{AccessToken: "jwt", TokenType: "bearer"})
	})

	res, apiErr := Client.SignIn(srv.URL+"/", shared.TokenRequest{Email: "a@b.com", Password: "secret"})
	require.Nil(t, apiErr)
	assert.Equal(t, "jwt", res.AccessToken)
}

func TestListPostsSendsSortingAndToken(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/post", r.URL.Path)
		assert.Equal(t, "most_likes", r.URL.Query().Get("sorting"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, []*shared.PostWithLikes{
			{Post: shared.Post{Id: 2, Body: "second"}, Likes: 3},
			{Post: shared.Post{Id: 1, Body: "first"}, Likes: 1},
		})
	})

	posts, apiErr := Client.ListPosts(shared.PostSortingMostLikes)
	require.Nil(t, apiErr)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].Id)
	assert.Equal(t, 3, posts[0].Likes)
}

func TestCreatePostPrompt(t *testing.T) {
	var seen []bool
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Has("prompt"))
		writeJSON(w, http.StatusCreated, shared.Post{Id: 1, Body: "hi"})
	})

	_, apiErr := Client.CreatePost(shared.CreatePostRequest{Body: "hi"}, nil)
	require.Nil(t, apiErr)

	empty := ""
	_, apiErr = Client.CreatePost(shared.CreatePostRequest{Body: "hi"}, &empty)
	require.Nil(t, apiErr)

	assert.Equal(t, []bool{false, true}, seen)
}

func TestApiErrorDecoded(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, shared.ApiError{
			Type:   shared.ApiErrorTypeAlreadyExists,
			Status: http.StatusConflict,
			Msg:    "You already liked this post",
		})
	})

	_, apiErr := Client.LikePost(shared.LikePostRequest{PostId: 1})
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeAlreadyExists, apiErr.Type)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
}

func TestPlainTextError(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	})

	_, apiErr := Client.GetPost(5)
	require.NotNil(t, apiErr)
	assert.Equal(t, shared.ApiErrorTypeOther, apiErr.Type)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal server error", apiErr.Msg)
}

func TestUpload(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pic.png", header.Filename)
		assert.Equal(t, "not really a png", string(data))

		writeJSON(w, http.StatusCreated, shared.UploadResponse{Detail: "File uploaded", FileUrl: "http://files/x/pic.png"})
	})

	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, []byte("not really a png"), 0600))

	res, apiErr := Client.Upload(path)
	require.Nil(t, apiErr)
	assert.Equal(t, "http://files/x/pic.png", res.FileUrl)
}

func TestUploadMissingFile(t *testing.T) {
	newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, apiErr := Client.Upload(filepath.Join(t.TempDir(), "missing.png"))
	require.NotNil(t, apiErr)
	assert.Contains(t, apiErr.Msg, "error opening file")
}
