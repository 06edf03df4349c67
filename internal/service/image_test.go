package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		img         ImageUpload
		expectedErr string
	}{
		{
			name:        "valid jpeg",
			img:         ImageUpload{Filename: "venue.jpg", ContentType: "image/jpeg", Data: []byte("fake-jpeg")},
			expectedErr: "",
		},
		{
			name:        "valid webp with upper-case extension",
			img:         ImageUpload{Filename: "BANNER.WEBP", ContentType: "image/webp", Data: []byte("fake-webp")},
			expectedErr: "",
		},
		{
			name:        "empty file",
			img:         ImageUpload{Filename: "venue.jpg", ContentType: "image/jpeg"},
			expectedErr: "image file is empty",
		},
		{
			name:        "executable extension",
			img:         ImageUpload{Filename: "malware.exe", ContentType: "image/png", Data: []byte("x")},
			expectedErr: "only jpg, jpeg, png, gif or webp images are allowed",
		},
		{
			name:        "no extension",
			img:         ImageUpload{Filename: "photo", ContentType: "image/png", Data: []byte("x")},
			expectedErr: "only jpg, jpeg, png, gif or webp images are allowed",
		},
		{
			name:        "non-image content type",
			img:         ImageUpload{Filename: "doc.png", ContentType: "application/pdf", Data: []byte("x")},
			expectedErr: "file must be an image",
		},
		{
			name:        "exactly at the size limit",
			img:         ImageUpload{Filename: "big.png", ContentType: "image/png", Data: bytes.Repeat([]byte("a"), MaxImageBytes)},
			expectedErr: "",
		},
		{
			name:        "one byte over the size limit",
			img:         ImageUpload{Filename: "big.png", ContentType: "image/png", Data: bytes.Repeat([]byte("a"), MaxImageBytes+1)},
			expectedErr: "image must be 5MB or smaller",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.img)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expectedErr)
			assert.True(t, IsValidation(err))
		})
	}
}
