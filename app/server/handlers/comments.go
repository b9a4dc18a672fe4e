package handlers

import (
	"net/http"
	"strings"

	"socialmedia/app/server/db"
	shared "socialmedia/app/shared"

	"go.uber.org/zap"
)

func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for CreateCommentHandler")

	auth := h.authenticate(w, r)
	if auth == nil {
		return
	}

	var req shared.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeInvalidRequest(w, "Comment body is required")
		return
	}
	if req.PostId <= 0 {
		writeInvalidRequest(w, "post_id is required")
		return
	}

	if !h.postExists(w, r, req.PostId) {
		return
	}

	comment := &db.Comment{
		Body:   req.Body,
		PostId: req.PostId,
		UserId: auth.User.Id,
	}

	if err := h.Store.CreateComment(r.Context(), comment); err != nil {
		if isNotFound(err) {
			writeNotFound(w, "Post not found")
			return
		}
		writeServerError(w, "Error creating comment", err)
		return
	}

	zap.L().Info("Successfully created comment", zap.Int64("commentId", comment.Id), zap.Int64("postId", comment.PostId))

	writeJSON(w, http.StatusCreated, comment.ToApi())
}

func (h *Handler) ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for ListCommentsHandler")

	postId, ok := postIdVar(w, r)
	if !ok {
		return
	}

	comments, err := h.Store.ListComments(r.Context(), postId)
	if err != nil {
		writeServerError(w, "Error listing comments", err)
		return
	}

	writeJSON(w, http.StatusOK, commentsToApi(comments))
}

func commentsToApi(comments []*db.Comment) []*shared.Comment {
	res := make([]*shared.Comment, 0, len(comments))
	for _, c := range comments {
		res = append(res, c.ToApi())
	}
	return res
}
