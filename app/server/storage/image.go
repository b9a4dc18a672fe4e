package storage

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageFormat reports the decoded format name ("png", "webp", ...) or false
// when r doesn't hold a supported image. r is rewound before returning.
func ImageFormat(r io.ReadSeeker) (string, bool) {
	defer r.Seek(0, io.SeekStart)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", false
	}

	_, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", false
	}
	return format, true
}

func ImageContentType(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	}
	return "application/octet-stream"
}
