package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyKeepsExtension(t *testing.T) {
	key := NewKey("Venue Photo.JPG")
	assert.True(t, len(key) > len(".jpg"))
	assert.Equal(t, ".jpg", key[len(key)-4:])
	assert.NotEqual(t, key, NewKey("Venue Photo.JPG"), "keys must be unique per upload")
}

func TestNewKeyWithoutExtension(t *testing.T) {
	key := NewKey("photo")
	assert.NotContains(t, key, ".")
	assert.NotEmpty(t, key)
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"full object url", "http://storage:9000/event-images/abc-123.png", "abc-123.png"},
		{"url with query", "https://storage/event-images/abc.jpg?X-Amz-Signature=zzz", "abc.jpg"},
		{"bare key", "abc.jpg", "abc.jpg"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFromURL(tt.url))
		})
	}
}
