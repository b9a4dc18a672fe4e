package imagegen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"socialmedia/app/server/config"
	"socialmedia/app/server/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key-123", r.Header.Get("api-key"))
		assert.Equal(t, "A cat is sitting on chair", r.FormValue("text"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","output_url":"https://img.example/cat.jpg"}`))
	}))
	defer srv.Close()

	url, err := NewDeepAI("key-123", srv.URL).Generate(context.Background(), "A cat is sitting on chair")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/cat.jpg", url)
}

func TestDeepAIFailures(t *testing.T) {
	tcs := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"status", http.StatusInternalServerError, `{}`, "API request failed with status code 500"},
		{"bad json", http.StatusOK, `not json`, "API response with parsing failed"},
		{"missing url", http.StatusOK, `{"id":"1"}`, "API response with parsing failed"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewDeepAI("key", srv.URL).Generate(context.Background(), "prompt")
			require.Error(t, err)

			var apiErr *types.APIResponseError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.want, apiErr.Error())
		})
	}
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":1,"data":[{"url":"https://img.example/dog.png"}]}`))
	}))
	defer srv.Close()

	url, err := NewOpenAI("sk-test", srv.URL).Generate(context.Background(), "a dog")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/dog.png", url)
}

func TestOpenAIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad prompt","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI("sk-test", srv.URL).Generate(context.Background(), "a dog")
	var apiErr *types.APIResponseError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestNew(t *testing.T) {
	g, err := New(&config.Config{ImageProvider: config.ImageProviderDeepAI})
	require.NoError(t, err)
	assert.IsType(t, &DeepAI{}, g)

	g, err = New(&config.Config{ImageProvider: config.ImageProviderOpenAI})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, g)

	_, err = New(&config.Config{ImageProvider: "paint"})
	assert.Error(t, err)
}
