package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	shared "socialmedia/app/shared"
)

// Upload streams the file at path as the multipart "file" field without
// buffering it in memory.
func (a *Api) Upload(path string) (*shared.UploadResponse, *shared.ApiError) {
	file, err := os.Open(path)
	if err != nil {
		return nil, otherError("error opening file", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	defer pr.Close()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	serverUrl := GetApiHost() + "/upload"
	req, err := http.NewRequest(http.MethodPost, serverUrl, pr)
	if err != nil {
		return nil, otherError("error creating request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := authenticatedSlowClient.Do(req)
	if err != nil {
		return nil, otherError(fmt.Sprintf("error uploading %s", filepath.Base(path)), err)
	}
	defer resp.Body.Close()

	return decodeResponse[shared.UploadResponse](resp)
}
