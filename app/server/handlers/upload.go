package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"socialmedia/app/server/storage"
	shared "socialmedia/app/shared"

	"go.uber.org/zap"
)

// UploadHandler streams the "file" part to a temp file in fixed-size chunks
// so large uploads never sit in memory, then hands it to the bucket.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	zap.L().Info("Received request for UploadHandler")

	auth := h.authenticate(w, r)
	if auth == nil {
		return
	}

	// leave room for multipart framing around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+uploadChunkSize)

	mr, err := r.MultipartReader()
	if err != nil {
		writeInvalidRequest(w, "Expected a multipart/form-data body")
		return
	}

	part, err := nextFilePart(mr)
	if err != nil {
		if isTooLarge(err) {
			tooLarge(w, h.MaxUploadBytes)
			return
		}
		writeInvalidRequest(w, err.Error())
		return
	}
	defer part.Close()

	filename := storage.SafeName(part.FileName())

	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		writeServerError(w, "Error creating temp file", err)
		return
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	zap.L().Debug("saving upload to temp file", zap.String("path", tmp.Name()))

	buf := make([]byte, uploadChunkSize)
	n, err := io.CopyBuffer(tmp, io.LimitReader(part, h.MaxUploadBytes+1), buf)
	if err != nil {
		if isTooLarge(err) {
			tooLarge(w, h.MaxUploadBytes)
			return
		}
		writeServerError(w, "Error reading upload", err)
		return
	}
	if n > h.MaxUploadBytes {
		tooLarge(w, h.MaxUploadBytes)
		return
	}

	contentType := part.Header.Get("Content-Type")
	format, isImage := storage.ImageFormat(tmp)
	if isImage {
		contentType = storage.ImageContentType(format)
	} else if h.UploadImagesOnly {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeUnsupportedFile,
			Status: http.StatusUnsupportedMediaType,
			Msg:    "Only image uploads are allowed",
		})
		return
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		writeServerError(w, "Error reading upload", err)
		return
	}

	key, err := storage.ObjectKey(filename)
	if err != nil {
		writeServerError(w, "Error naming upload", err)
		return
	}

	fileUrl, err := h.Bucket.Upload(r.Context(), key, tmp, contentType)
	if err != nil {
		writeServerError(w, "Error uploading file", err)
		return
	}

	zap.L().Info("Successfully uploaded file",
		zap.String("key", key),
		zap.Int64("bytes", n),
		zap.Int64("userId", auth.User.Id),
	)

	writeJSON(w, http.StatusCreated, shared.UploadResponse{
		Detail:  "Successfully uploaded " + filename,
		FileUrl: fileUrl,
	})
}

func nextFilePart(mr *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, errors.New("file is required")
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == "file" {
			return part, nil
		}
		part.Close()
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func tooLarge(w http.ResponseWriter, max int64) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeTooLarge,
		Status: http.StatusRequestEntityTooLarge,
		Msg:    fmt.Sprintf("File exceeds the %d byte upload limit", max),
	})
}
