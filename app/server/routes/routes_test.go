package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"socialmedia/app/server/auth"
	"socialmedia/app/server/cache"
	"socialmedia/app/server/db"
	"socialmedia/app/server/handlers"
	"socialmedia/app/server/hooks"
	"socialmedia/app/server/notify"
	"socialmedia/app/server/tasks"
	shared "socialmedia/app/shared"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, uploadDir string) *mux.Router {
	t.Helper()
	issuer, err := auth.NewIssuer("test", "HS256")
	require.NoError(t, err)

	queue := tasks.NewQueue(1, 1)
	t.Cleanup(func() { queue.Shutdown(context.Background()) })

	h := &handlers.Handler{
		Store:  db.NewMemoryStore(),
		Issuer: issuer,
		Queue:  queue,
		Runner: &tasks.Runner{},
		Cache:  cache.Noop{},
	}
	return New(h, Options{Version: "1.2.3", LocalUploadDir: uploadDir})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestHealthAndVersion(t *testing.T) {
	r := newTestRouter(t, "")

	rec := get(r, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = get(r, "/version")
	assert.Equal(t, "1.2.3", rec.Body.String())

	hooks.RegisterHook(hooks.HealthCheck, func(hooks.HookParams) *shared.ApiError {
		return &shared.ApiError{Status: http.StatusServiceUnavailable, Msg: "db down"}
	})
	defer hooks.UnregisterHook(hooks.HealthCheck)

	rec = get(r, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	r := newTestRouter(t, "")
	get(r, "/post")

	rec := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/post",status="200"}`)
}

func TestServesLocalUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "abc"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc", "x.txt"), []byte("hi"), 0644))

	r := newTestRouter(t, dir)
	rec := get(r, "/uploads/abc/x.txt")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hi", rec.Body.String())
}

func TestNotFoundAndRecover(t *testing.T) {
	r := newTestRouter(t, "")

	rec := get(r, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"not_found"`))

	rec = get(r, "/post/abc")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var reported []notify.Failure
	notify.RegisterReporter(func(f notify.Failure) { reported = append(reported, f) })
	defer notify.RegisterReporter(nil)

	HandleRouteFn(r, "/panic", func(w http.ResponseWriter, r *http.Request) { panic("boom") })
	rec = get(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, reported, 1)
	assert.Equal(t, notify.SourceHandler, reported[0].Source)
	assert.Equal(t, "/panic", reported[0].Name)
	assert.True(t, reported[0].Panic)
}
