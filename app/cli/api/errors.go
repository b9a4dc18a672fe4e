package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	shared "socialmedia/app/shared"
)

func HandleApiError(r *http.Response, errBody []byte) *shared.ApiError {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return &shared.ApiError{
			Type:   shared.ApiErrorTypeOther,
			Status: r.StatusCode,
			Msg:    strings.TrimSpace(string(errBody)),
		}
	}

	var apiError shared.ApiError
	if err := json.Unmarshal(errBody, &apiError); err != nil {
		log.Printf("Error unmarshalling JSON: %v\n", err)
		return &shared.ApiError{
			Type:   shared.ApiErrorTypeOther,
			Status: r.StatusCode,
			Msg:    strings.TrimSpace(string(errBody)),
		}
	}

	if apiError.Status == 0 {
		apiError.Status = r.StatusCode
	}
	if apiError.Type == "" {
		apiError.Type = shared.ApiErrorTypeOther
	}

	log.Printf("API error: %s (%d): %s\n", apiError.Type, apiError.Status, apiError.Msg)

	return &apiError
}

func otherError(msg string, err error) *shared.ApiError {
	return &shared.ApiError{Type: shared.ApiErrorTypeOther, Msg: msg + ": " + err.Error()}
}
