package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialmedia/app/server/cache"
	"socialmedia/app/server/config"
	"socialmedia/app/server/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithTestConfig(t *testing.T) {
	t.Setenv("TEST_LOCAL_UPLOAD_DIR", t.TempDir())
	cfg, err := config.LoadForState(config.EnvTest)
	require.NoError(t, err)

	app, err := Build(context.Background(), cfg, "test")
	require.NoError(t, err)
	defer app.Close()
	defer app.Handler.Queue.Shutdown(context.Background())

	assert.IsType(t, &db.MemoryStore{}, app.Handler.Store)
	assert.IsType(t, cache.Noop{}, app.Handler.Cache)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest("GET", "/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Body.String())
}

func TestInitCacheFallsBackToNoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	c := InitCache(ctx, &config.Config{RedisAddr: "127.0.0.1:1"})
	assert.IsType(t, cache.Noop{}, c)
}
