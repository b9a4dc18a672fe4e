package handlers

import (
	"mime"
	"net/http"

	"socialmedia/app/server/auth"
	shared "socialmedia/app/shared"

	"go.uber.org/zap"
)

// TokenHandler accepts a JSON body or an OAuth2 password-flow form
// (username/password).
func (h *Handler) TokenHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for TokenHandler")

	var req shared.TokenRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			writeInvalidRequest(w, "Invalid form body: "+err.Error())
			return
		}
		req.Email = r.FormValue("username")
		req.Password = r.FormValue("password")
	default:
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	email, ok := shared.NormalizeEmail(req.Email)
	if !ok || req.Password == "" {
		badCredentials(w)
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeServerError(w, "Error getting user", err)
		return
	}

	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		badCredentials(w)
		return
	}

	if !user.Confirmed {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeUnconfirmed,
			Status: http.StatusUnauthorized,
			Msg:    "User has not confirmed email",
		})
		return
	}

	token, err := h.Issuer.CreateAccessToken(user.Email)
	if err != nil {
		writeServerError(w, "Error creating access token", err)
		return
	}

	zap.L().Info("Successfully signed in user", zap.Int64("userId", user.Id))

	writeJSON(w, http.StatusOK, shared.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func badCredentials(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeInvalidToken,
		Status: http.StatusUnauthorized,
		Msg:    "Incorrect email or password",
	})
}
