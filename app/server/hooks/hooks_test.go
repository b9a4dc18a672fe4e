package hooks

import (
	"net/http"
	"testing"

	"socialmedia/app/server/db"
	shared "socialmedia/app/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecHook(t *testing.T) {
	assert.Nil(t, ExecHook(WillCreatePost, HookParams{}))

	RegisterHook(WillCreatePost, func(params HookParams) *shared.ApiError {
		if params.Post.Body == "spam" {
			return &shared.ApiError{Type: shared.ApiErrorTypeInvalidRequest, Status: http.StatusUnprocessableEntity, Msg: "spam"}
		}
		return nil
	})
	defer UnregisterHook(WillCreatePost)

	assert.Nil(t, ExecHook(WillCreatePost, HookParams{Post: &db.Post{Body: "hello"}}))

	apiErr := ExecHook(WillCreatePost, HookParams{Post: &db.Post{Body: "spam"}})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
}
