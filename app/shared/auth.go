package shared

type ApiErrorType string

const (
	ApiErrorTypeInvalidToken    ApiErrorType = "invalid_token"
	ApiErrorTypeInvalidRequest  ApiErrorType = "invalid_request"
	ApiErrorTypeNotFound        ApiErrorType = "not_found"
	ApiErrorTypeAlreadyExists   ApiErrorType = "already_exists"
	ApiErrorTypeUnconfirmed     ApiErrorType = "unconfirmed_email"
	ApiErrorTypeTooLarge        ApiErrorType = "too_large"
	ApiErrorTypeUnsupportedFile ApiErrorType = "unsupported_file"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`
}

func (e *ApiError) Error() string {
	return e.Msg
}

// ClientAuth is what the CLI persists between invocations.
type ClientAuth struct {
	Host  string `json:"host"`
	Email string `json:"email"`
	Token string `json:"token"`
}
