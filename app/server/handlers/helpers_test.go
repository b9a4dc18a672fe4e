package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"socialmedia/app/server/auth"
	"socialmedia/app/server/cache"
	"socialmedia/app/server/db"
	"socialmedia/app/server/storage"
	"socialmedia/app/server/tasks"
	shared "socialmedia/app/shared"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const testPassword = "1234"

type sentMessage struct {
	To, Subject, Body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMessage{to, subject, body})
	return nil
}

func (m *recordingMailer) messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.sent...)
}

type fakeGenerator struct {
	url string
	err error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.url, g.err
}

type mapCache struct {
	mu         sync.Mutex
	generation int64
	entries    map[shared.PostSorting][]*shared.PostWithLikes
}

func (c *mapCache) Get(ctx context.Context, sorting shared.PostSorting) ([]*shared.PostWithLikes, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	posts, ok := c.entries[sorting]
	return posts, ok
}

func (c *mapCache) Generation(ctx context.Context) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *mapCache) Set(ctx context.Context, sorting shared.PostSorting, generation int64, posts []*shared.PostWithLikes) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	c.entries[sorting] = posts
}

func (c *mapCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.entries = map[shared.PostSorting][]*shared.PostWithLikes{}
}

func (c *mapCache) Close() error { return nil }

type testEnv struct {
	t         *testing.T
	h         *Handler
	router    *mux.Router
	store     *db.MemoryStore
	mailer    *recordingMailer
	generator *fakeGenerator
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	issuer, err := auth.NewIssuer("test", "HS256")
	require.NoError(t, err)

	store := db.NewMemoryStore()
	mailer := &recordingMailer{}
	generator := &fakeGenerator{url: "https://img.example/cat.jpg"}

	uploadDir := t.TempDir()
	bucket, err := storage.NewLocalBucket(uploadDir, "http://test/uploads")
	require.NoError(t, err)

	queue := tasks.NewQueue(1, 10)
	t.Cleanup(func() { queue.Shutdown(context.Background()) })

	h := &Handler{
		Store:  store,
		Issuer: issuer,
		Queue:  queue,
		Runner: &tasks.Runner{
			Store:     store,
			Mailer:    mailer,
			Generator: generator,
			Cache:     cache.Noop{},
		},
		Bucket:         bucket,
		Cache:          cache.Noop{},
		PublicUrl:      "http://test",
		DefaultPrompt:  "A cat is sitting on chair",
		MaxUploadBytes: 1024,
	}

	return &testEnv{
		t:         t,
		h:         h,
		router:    testRouter(h),
		store:     store,
		mailer:    mailer,
		generator: generator,
		uploadDir: uploadDir,
	}
}

func testRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/register", h.RegisterHandler).Methods("POST")
	r.HandleFunc("/confirm/{token}", h.ConfirmEmailHandler).Methods("GET")
	r.HandleFunc("/token", h.TokenHandler).Methods("POST")
	r.HandleFunc("/post", h.CreatePostHandler).Methods("POST")
	r.HandleFunc("/post", h.ListPostsHandler).Methods("GET")
	r.HandleFunc("/post/{postId:[0-9]+}", h.GetPostHandler).Methods("GET")
	r.HandleFunc("/post/{postId:[0-9]+}/comment", h.ListCommentsHandler).Methods("GET")
	r.HandleFunc("/comment", h.CreateCommentHandler).Methods("POST")
	r.HandleFunc("/like", h.LikePostHandler).Methods("POST")
	r.HandleFunc("/upload", h.UploadHandler).Methods("POST")
	return r
}

func (e *testEnv) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) waitForTasks() {
	e.t.Helper()
	require.Eventually(e.t, func() bool { return e.h.Queue.NumActive() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func (e *testEnv) register(email string) shared.RegisterResponse {
	e.t.Helper()
	rec := e.do("POST", "/register", shared.RegisterRequest{Email: email, Password: testPassword}, "")
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	var res shared.RegisterResponse
	decodeBody(e.t, rec, &res)
	return res
}

// confirmedToken registers and confirms a user and returns an access token.
func (e *testEnv) confirmedToken(email string) string {
	e.t.Helper()
	e.register(email)
	require.NoError(e.t, e.store.ConfirmUser(context.Background(), email))

	rec := e.do("POST", "/token", shared.TokenRequest{Email: email, Password: testPassword}, "")
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	var res shared.TokenResponse
	decodeBody(e.t, rec, &res)
	return res.AccessToken
}

func (e *testEnv) createPost(token, body string) *shared.Post {
	e.t.Helper()
	rec := e.do("POST", "/post", shared.CreatePostRequest{Body: body}, token)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	var post shared.Post
	decodeBody(e.t, rec, &post)
	return &post
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func apiError(t *testing.T, rec *httptest.ResponseRecorder) shared.ApiError {
	t.Helper()
	var apiErr shared.ApiError
	decodeBody(t, rec, &apiErr)
	return apiErr
}
