package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"socialmedia/app/server/db"
	"socialmedia/app/server/hooks"
	"socialmedia/app/server/notify"
	"socialmedia/app/server/tasks"
	shared "socialmedia/app/shared"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (h *Handler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for CreatePostHandler")

	auth := h.authenticate(w, r)
	if auth == nil {
		return
	}

	var req shared.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeInvalidRequest(w, "Post body is required")
		return
	}

	post := &db.Post{
		Body:   req.Body,
		UserId: auth.User.Id,
	}

	if apiErr := hooks.ExecHook(hooks.WillCreatePost, hooks.HookParams{User: auth.User, Post: post}); apiErr != nil {
		writeApiError(w, *apiErr)
		return
	}

	if err := h.Store.CreatePost(r.Context(), post); err != nil {
		writeServerError(w, "Error creating post", err)
		return
	}

	h.Cache.Invalidate(r.Context())

	query := r.URL.Query()
	if query.Has("prompt") {
		prompt := strings.TrimSpace(query.Get("prompt"))
		if prompt == "" {
			prompt = h.DefaultPrompt
		}

		err := h.Queue.Enqueue(tasks.TaskGenerateImage, h.Runner.GenerateAndAddToPost(auth.User.Email, post.Id, prompt))
		if err != nil {
			zap.L().Error("error queueing image generation", zap.Int64("postId", post.Id), zap.Error(err))
			notify.Report(notify.Failure{Source: notify.SourceQueue, Name: tasks.TaskGenerateImage, Err: err})
		}
	}

	zap.L().Info("Successfully created post", zap.Int64("postId", post.Id))

	writeJSON(w, http.StatusCreated, post.ToApi())
}

func (h *Handler) ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for ListPostsHandler")

	sorting, ok := shared.ParsePostSorting(r.URL.Query().Get("sorting"))
	if !ok {
		writeInvalidRequest(w, "Invalid sorting, expected one of: new, old, most_likes")
		return
	}

	if cached, ok := h.Cache.Get(r.Context(), sorting); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	generation := h.Cache.Generation(r.Context())

	posts, err := h.Store.ListPostsWithLikes(r.Context(), sorting)
	if err != nil {
		writeServerError(w, "Error listing posts", err)
		return
	}

	apiPosts := make([]*shared.PostWithLikes, 0, len(posts))
	for _, post := range posts {
		apiPosts = append(apiPosts, post.ToApi())
	}

	h.Cache.Set(r.Context(), sorting, generation, apiPosts)

	zap.L().Debug("Successfully listed posts", zap.Int("count", len(apiPosts)), zap.String("sorting", string(sorting)))

	writeJSON(w, http.StatusOK, apiPosts)
}

func (h *Handler) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for GetPostHandler")

	postId, ok := postIdVar(w, r)
	if !ok {
		return
	}

	post, err := h.Store.GetPostWithLikes(r.Context(), postId)
	if err != nil {
		writeServerError(w, "Error getting post", err)
		return
	}
	if post == nil {
		zap.L().Debug("no post", zap.Int64("postId", postId))
		writeNotFound(w, "Post not found")
		return
	}

	comments, err := h.Store.ListComments(r.Context(), postId)
	if err != nil {
		writeServerError(w, "Error listing comments", err)
		return
	}

	writeJSON(w, http.StatusOK, shared.PostWithCommentsResponse{
		Post:     post.ToApi(),
		Comments: commentsToApi(comments),
	})
}

func postIdVar(w http.ResponseWriter, r *http.Request) (int64, bool) {
	postId, err := strconv.ParseInt(mux.Vars(r)["postId"], 10, 64)
	if err != nil {
		writeInvalidRequest(w, "Invalid post id")
		return 0, false
	}
	return postId, true
}

// postExists writes a 404 and returns false when the post is missing.
func (h *Handler) postExists(w http.ResponseWriter, r *http.Request, postId int64) bool {
	post, err := h.Store.GetPost(r.Context(), postId)
	if err != nil {
		writeServerError(w, "Error getting post", err)
		return false
	}
	if post == nil {
		writeNotFound(w, "Post not found")
		return false
	}
	return true
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrNotFound)
}
