package routes

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"socialmedia/app/server/handlers"
	"socialmedia/app/server/hooks"
	"socialmedia/app/server/metrics"
	"socialmedia/app/server/notify"
	"socialmedia/app/server/storage"
	shared "socialmedia/app/shared"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HandlerFn func(w http.ResponseWriter, r *http.Request)
type HandleFn func(router *mux.Router, path string, handler HandlerFn) *mux.Route

// HandleRouteFn wraps every route registration. A deployment can swap it to
// add auth proxies, tracing or rate limiting around all handlers.
var HandleRouteFn HandleFn = DefaultHandleFn

func RegisterHandleFn(fn HandleFn) {
	HandleRouteFn = fn
}

func DefaultHandleFn(router *mux.Router, path string, handler HandlerFn) *mux.Route {
	return router.HandleFunc(path, withRecover(handler))
}

func withRecover(handler HandlerFn) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.L().Error("panic in handler",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				notify.Report(notify.Failure{Source: notify.SourceHandler, Name: r.URL.Path, Err: notify.Recovered(rec), Panic: true})
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		handler(w, r)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

type Options struct {
	Version string
	// LocalUploadDir is served under /uploads when set.
	LocalUploadDir string
}

func New(h *handlers.Handler, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.Middleware, logRequests)
	r.NotFoundHandler = http.HandlerFunc(notFound)

	AddHealthRoutes(r, opts.Version)
	AddApiRoutes(r, h)

	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	if opts.LocalUploadDir != "" {
		r.PathPrefix(storage.LocalUrlPrefix + "/").Handler(
			http.StripPrefix(storage.LocalUrlPrefix+"/", http.FileServer(http.Dir(opts.LocalUploadDir))),
		).Methods("GET")
	}

	return r
}

func AddHealthRoutes(r *mux.Router, version string) {
	HandleRouteFn(r, "/health", func(w http.ResponseWriter, r *http.Request) {
		apiErr := hooks.ExecHook(hooks.HealthCheck, hooks.HookParams{})
		if apiErr != nil {
			zap.L().Warn("health check hook failed", zap.String("msg", apiErr.Msg))
			http.Error(w, apiErr.Msg, apiErr.Status)
			return
		}
		fmt.Fprint(w, "OK")
	}).Methods("GET")

	HandleRouteFn(r, "/version", func(w http.ResponseWriter, r *http.Request) {
		if version == "" {
			http.Error(w, "Error getting version", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, version)
	}).Methods("GET")
}

func AddApiRoutes(r *mux.Router, h *handlers.Handler) {
	HandleRouteFn(r, "/register", h.RegisterHandler).Methods("POST")
	HandleRouteFn(r, "/confirm/{token}", h.ConfirmEmailHandler).Methods("GET")
	HandleRouteFn(r, "/token", h.TokenHandler).Methods("POST")

	HandleRouteFn(r, "/post", h.CreatePostHandler).Methods("POST")
	HandleRouteFn(r, "/post", h.ListPostsHandler).Methods("GET")
	HandleRouteFn(r, "/post/{postId:[0-9]+}", h.GetPostHandler).Methods("GET")
	HandleRouteFn(r, "/post/{postId:[0-9]+}/comment", h.ListCommentsHandler).Methods("GET")

	HandleRouteFn(r, "/comment", h.CreateCommentHandler).Methods("POST")
	HandleRouteFn(r, "/like", h.LikePostHandler).Methods("POST")
	HandleRouteFn(r, "/upload", h.UploadHandler).Methods("POST")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `{"type":%q,"status":404,"msg":"Not found"}`, shared.ApiErrorTypeNotFound)
}
