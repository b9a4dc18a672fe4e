package shared

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Detail          string `json:"detail"`
	ConfirmationUrl string `json:"confirmation_url"`
}

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type CreatePostRequest struct {
	Body string `json:"body"`
}

type CreateCommentRequest struct {
	Body   string `json:"body"`
	PostId int64  `json:"post_id"`
}

type LikePostRequest struct {
	PostId int64 `json:"post_id"`
}

type PostWithCommentsResponse struct {
	Post     *PostWithLikes `json:"post"`
	Comments []*Comment     `json:"comments"`
}

type UploadResponse struct {
	Detail  string `json:"detail"`
	FileUrl string `json:"file_url"`
}
