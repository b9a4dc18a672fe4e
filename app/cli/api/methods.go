package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	shared "socialmedia/app/shared"
)

func (a *Api) Register(host string, req shared.RegisterRequest) (*shared.RegisterResponse, *shared.ApiError) {
	serverUrl := strings.TrimRight(host, "/") + "/register"
	return doJSON[shared.RegisterResponse](unauthenticatedClient, http.MethodPost, serverUrl, req)
}

func (a *Api) Confirm(host, token string) (*shared.DetailResponse, *shared.ApiError) {
	serverUrl := fmt.Sprintf("%s/confirm/%s", strings.TrimRight(host, "/"), url.PathEscape(token))
	return doJSON[shared.DetailResponse](unauthenticatedClient, http.MethodGet, serverUrl, nil)
}

func (a *Api) SignIn(host string, req shared.TokenRequest) (*shared.TokenResponse, *shared.ApiError) {
	serverUrl := strings.TrimRight(host, "/") + "/token"
	return doJSON[shared.TokenResponse](unauthenticatedClient, http.MethodPost, serverUrl, req)
}

// CreatePost asks the server to generate an image for the post when prompt
// is non-nil. An empty prompt selects the server's default prompt.
func (a *Api) CreatePost(req shared.CreatePostRequest, prompt *string) (*shared.Post, *shared.ApiError) {
	serverUrl := GetApiHost() + "/post"
	if prompt != nil {
		serverUrl += "?" + url.Values{"prompt": {*prompt}}.Encode()
	}
	return doJSON[shared.Post](authenticatedFastClient, http.MethodPost, serverUrl, req)
}

func (a *Api) ListPosts(sorting shared.PostSorting) ([]*shared.PostWithLikes, *shared.ApiError) {
	serverUrl := GetApiHost() + "/post"
	if sorting != "" {
		serverUrl += "?" + url.Values{"sorting": {string(sorting)}}.Encode()
	}

	res, apiErr := doJSON[[]*shared.PostWithLikes](authenticatedFastClient, http.MethodGet, serverUrl, nil)
	if apiErr != nil {
		return nil, apiErr
	}
	return *res, nil
}

func (a *Api) GetPost(postId int64) (*shared.PostWithCommentsResponse, *shared.ApiError) {
	serverUrl := fmt.Sprintf("%s/post/%d", GetApiHost(), postId)
	return doJSON[shared.PostWithCommentsResponse](authenticatedFastClient, http.MethodGet, serverUrl, nil)
}

func (a *Api) ListComments(postId int64) ([]*shared.Comment, *shared.ApiError) {
	serverUrl := fmt.Sprintf("%s/post/%d/comment", GetApiHost(), postId)

	res, apiErr := doJSON[[]*shared.Comment](authenticatedFastClient, http.MethodGet, serverUrl, nil)
	if apiErr != nil {
		return nil, apiErr
	}
	return *res, nil
}

func (a *Api) CreateComment(req shared.CreateCommentRequest) (*shared.Comment, *shared.ApiError) {
	serverUrl := GetApiHost() + "/comment"
	return doJSON[shared.Comment](authenticatedFastClient, http.MethodPost, serverUrl, req)
}

func (a *Api) LikePost(req shared.LikePostRequest) (*shared.Like, *shared.ApiError) {
	serverUrl := GetApiHost() + "/like"
	return doJSON[shared.Like](authenticatedFastClient, http.MethodPost, serverUrl, req)
}

func doJSON[T any](client *http.Client, method, serverUrl string, body any) (*T, *shared.ApiError) {
	var reqBody io.Reader
	if body != nil {
		reqBytes, err := json.Marshal(body)
		if err != nil {
			return nil, otherError("error marshalling request", err)
		}
		reqBody = bytes.NewReader(reqBytes)
	}

	req, err := http.NewRequest(method, serverUrl, reqBody)
	if err != nil {
		return nil, otherError("error creating request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, otherError("error sending request", err)
	}
	defer resp.Body.Close()

	return decodeResponse[T](resp)
}

func decodeResponse[T any](resp *http.Response) (*T, *shared.ApiError) {
	if resp.StatusCode >= 400 {
		errorBody, _ := io.ReadAll(resp.Body)
		return nil, HandleApiError(resp, errorBody)
	}

	var res T
	err := json.NewDecoder(resp.Body).Decode(&res)
	if err != nil {
		return nil, otherError("error decoding response", err)
	}

	return &res, nil
}
