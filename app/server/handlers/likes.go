package handlers

import (
	"errors"
	"net/http"

	"socialmedia/app/server/db"
	shared "socialmedia/app/shared"

	"go.uber.org/zap"
)

func (h *Handler) LikePostHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for LikePostHandler")

	auth := h.authenticate(w, r)
	if auth == nil {
		return
	}

	var req shared.LikePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PostId <= 0 {
		writeInvalidRequest(w, "post_id is required")
		return
	}

	like := &db.Like{
		PostId: req.PostId,
		UserId: auth.User.Id,
	}

	err := h.Store.CreateLike(r.Context(), like)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			writeNotFound(w, "Post not found")
		case errors.Is(err, db.ErrDuplicate):
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeAlreadyExists,
				Status: http.StatusConflict,
				Msg:    "Post already liked",
			})
		default:
			writeServerError(w, "Error liking post", err)
		}
		return
	}

	h.Cache.Invalidate(r.Context())

	zap.L().Info("Successfully liked post", zap.Int64("postId", like.PostId), zap.Int64("userId", like.UserId))

	writeJSON(w, http.StatusCreated, like.ToApi())
}
