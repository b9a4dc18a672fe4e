package handlers

import (
	"errors"
	"net/http"
	"strings"

	"socialmedia/app/server/auth"
	"socialmedia/app/server/types"
	shared "socialmedia/app/shared"

	"go.uber.org/zap"
)

func unauthorized(w http.ResponseWriter, msg string) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeInvalidToken,
		Status: http.StatusUnauthorized,
		Msg:    msg,
	})
}

// authenticate resolves the bearer token to a user. It writes the error
// response itself and returns nil when the request can't proceed.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	zap.L().Debug("authenticating request")

	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		zap.L().Debug("no auth header")
		unauthorized(w, "Not authenticated")
		return nil
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		zap.L().Debug("invalid auth header")
		unauthorized(w, "Not authenticated")
		return nil
	}

	// strip off the "Bearer " prefix
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	email, err := h.Issuer.SubjectForTokenType(token, auth.TokenTypeAccess)
	if err != nil {
		var tokenErr *auth.TokenError
		if errors.As(err, &tokenErr) {
			zap.L().Debug("rejected token", zap.String("reason", tokenErr.Msg), zap.Error(tokenErr.Err))
			unauthorized(w, tokenErr.Msg)
			return nil
		}
		writeServerError(w, "Error validating token", err)
		return nil
	}

	user, err := h.Store.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeServerError(w, "Error getting user", err)
		return nil
	}

	if user == nil {
		unauthorized(w, "Could not find user for this token")
		return nil
	}

	zap.L().Debug("authenticated", zap.Int64("userId", user.Id), zap.String("email", shared.MaskEmail(user.Email)))

	return &types.ServerAuth{
		User:  user,
		Token: token,
	}
}
