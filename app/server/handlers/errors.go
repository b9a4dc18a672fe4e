package handlers

import (
	"encoding/json"
	"net/http"

	shared "socialmedia/app/shared"

	"go.uber.org/zap"
)

func writeApiError(w http.ResponseWriter, apiErr shared.ApiError) {
	bytes, err := json.Marshal(apiErr)
	if err != nil {
		zap.L().Error("error marshalling api error", zap.Error(err))
		http.Error(w, apiErr.Msg, apiErr.Status)
		return
	}

	if apiErr.Type == shared.ApiErrorTypeInvalidToken {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	w.Write(bytes)
}

// writeServerError logs err and responds with a generic 500 so internals
// aren't leaked to clients.
func writeServerError(w http.ResponseWriter, msg string, err error) {
	zap.L().Error(msg, zap.Error(err))
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeOther,
		Status: http.StatusInternalServerError,
		Msg:    msg,
	})
}

func writeInvalidRequest(w http.ResponseWriter, msg string) {
	zap.L().Debug("invalid request", zap.String("msg", msg))
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeInvalidRequest,
		Status: http.StatusUnprocessableEntity,
		Msg:    msg,
	})
}

func writeNotFound(w http.ResponseWriter, msg string) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeNotFound,
		Status: http.StatusNotFound,
		Msg:    msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		writeServerError(w, "Error marshalling response", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		writeInvalidRequest(w, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
