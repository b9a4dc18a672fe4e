package types

import "fmt"

// APIResponseError is returned when a third-party HTTP API (mail, image
// generation) answers with a failure or a body we can't use.
type APIResponseError struct {
	StatusCode int
	Msg        string
	Err        error
}

func NewStatusCodeError(statusCode int, err error) *APIResponseError {
	return &APIResponseError{
		StatusCode: statusCode,
		Msg:        fmt.Sprintf("API request failed with status code %d", statusCode),
		Err:        err,
	}
}

func NewParsingError(err error) *APIResponseError {
	return &APIResponseError{
		Msg: "API response with parsing failed",
		Err: err,
	}
}

func (e *APIResponseError) Error() string { return e.Msg }
func (e *APIResponseError) Unwrap() error { return e.Err }
