package service

import (
	"path/filepath"
	"strings"
)

// MaxImageBytes is the upload size ceiling for venue and event images.
const MaxImageBytes = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageUpload carries the metadata and content of an uploaded file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ValidateImage checks an upload against the image rules: non-empty
// content, an allowed extension, a declared image/* content type and at
// most MaxImageBytes. The check is metadata-only; file contents are
// never inspected, so a mislabeled file can pass. It returns a
// ValidationError describing the first failing rule, or nil.
func ValidateImage(img ImageUpload) error {
	if len(img.Data) == 0 {
		return NewValidationError("image file is empty")
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if !allowedImageExts[ext] {
		return NewValidationError("only jpg, jpeg, png, gif or webp images are allowed")
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return NewValidationError("file must be an image")
	}
	if len(img.Data) > MaxImageBytes {
		return NewValidationError("image must be 5MB or smaller")
	}
	return nil
}
