package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"socialmedia/app/server/auth"
	"socialmedia/app/server/db"
	"socialmedia/app/server/hooks"
	"socialmedia/app/server/notify"
	"socialmedia/app/server/tasks"
	shared "socialmedia/app/shared"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for RegisterHandler")

	var req shared.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email, ok := shared.NormalizeEmail(req.Email)
	if !ok {
		writeInvalidRequest(w, "Invalid email address")
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		writeInvalidRequest(w, "Password is required")
		return
	}

	existing, err := h.Store.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeServerError(w, "Error getting user", err)
		return
	}
	if existing != nil {
		alreadyRegistered(w)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeServerError(w, "Error hashing password", err)
		return
	}

	user, err := h.Store.CreateUser(r.Context(), email, hash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			alreadyRegistered(w)
			return
		}
		writeServerError(w, "Error creating user", err)
		return
	}

	if apiErr := hooks.ExecHook(hooks.CreateAccount, hooks.HookParams{User: user}); apiErr != nil {
		// a rejected signup must not keep the email reserved
		if err := h.Store.DeleteUser(r.Context(), user.Id); err != nil {
			zap.L().Error("error removing user rejected by create_account hook", zap.Int64("userId", user.Id), zap.Error(err))
		}
		writeApiError(w, *apiErr)
		return
	}

	token, err := h.Issuer.CreateConfirmationToken(user.Email)
	if err != nil {
		writeServerError(w, "Error creating confirmation token", err)
		return
	}

	confirmationUrl := h.PublicUrl + "/confirm/" + url.PathEscape(token)

	err = h.Queue.Enqueue(tasks.TaskRegistrationEmail, h.Runner.SendRegistrationEmail(user.Email, confirmationUrl))
	if err != nil {
		zap.L().Error("error queueing registration email", zap.Int64("userId", user.Id), zap.Error(err))
		notify.Report(notify.Failure{Source: notify.SourceQueue, Name: tasks.TaskRegistrationEmail, Err: err})
	}

	zap.L().Info("Successfully registered user", zap.Int64("userId", user.Id))

	writeJSON(w, http.StatusCreated, shared.RegisterResponse{
		Detail:          "User registered successfully. Please confirm your email.",
		ConfirmationUrl: confirmationUrl,
	})
}

func alreadyRegistered(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeAlreadyExists,
		Status: http.StatusBadRequest,
		Msg:    "Email already registered",
	})
}

func (h *Handler) ConfirmEmailHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for ConfirmEmailHandler")

	token := mux.Vars(r)["token"]

	email, err := h.Issuer.SubjectForTokenType(token, auth.TokenTypeConfirmation)
	if err != nil {
		var tokenErr *auth.TokenError
		if errors.As(err, &tokenErr) {
			unauthorized(w, tokenErr.Msg)
			return
		}
		writeServerError(w, "Error validating token", err)
		return
	}

	err = h.Store.ConfirmUser(r.Context(), email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			unauthorized(w, "Could not find user for this token")
			return
		}
		writeServerError(w, "Error confirming user", err)
		return
	}

	zap.L().Info("Successfully confirmed user", zap.String("email", shared.MaskEmail(email)))

	writeJSON(w, http.StatusOK, shared.DetailResponse{Detail: "User confirmed"})
}
