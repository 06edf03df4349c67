package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventease/eventease/internal/config"
)

func runThrough(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"hello": "world"})
	})
	require.NoError(t, h(c))
	return rec
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	rec := runThrough(t, mw)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "world")
	assert.Empty(t, rec.Header().Get("X-Cache"), "a pass-through adds no cache header")
}

func TestCacheWithoutRedisIsPassThrough(t *testing.T) {
	// Redis being down at startup yields a nil client; the cache must
	// degrade to a no-op rather than break requests.
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	rec := runThrough(t, mw)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "world")
}

func TestCaptureWriterRespectsLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	_, err := cw.Write([]byte("abcdef"))
	require.NoError(t, err)

	assert.Equal(t, "abcdef", rec.Body.String(), "the client always gets the full body")
	assert.Zero(t, cw.buf.Len(), "an oversized body is not buffered for the cache")
	assert.Greater(t, cw.size, cw.limit)
}

func TestCaptureWriterRecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 1024}

	cw.WriteHeader(http.StatusNotFound)
	_, err := cw.Write([]byte(`{"error":"missing"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, cw.status)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `{"error":"missing"}`, cw.buf.String())
}
