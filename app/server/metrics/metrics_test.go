package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/post/{postId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods("GET")

	before := testutil.ToFloat64(HttpRequests.WithLabelValues("/post/{postId}", "GET", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/post/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	after := testutil.ToFloat64(HttpRequests.WithLabelValues("/post/{postId}", "GET", "404"))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesCollectors(t *testing.T) {
	Tasks.WithLabelValues("test", "ok").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tasks_total")
}
