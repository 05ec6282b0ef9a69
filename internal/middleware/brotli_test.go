package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brotliEngine(body string) *gin.Engine {
	r := gin.New()
	r.Use(Brotli("/api/"))
	r.GET("/page", func(c *gin.Context) { c.String(http.StatusOK, body) })
	r.GET("/api/data", func(c *gin.Context) { c.String(http.StatusOK, body) })
	return r
}

func request(r http.Handler, path, acceptEncoding string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBrotli_CompressesLargeBodies(t *testing.T) {
	body := strings.Repeat("<p>application form</p>", 200)
	w := request(brotliEngine(body), "/page", "gzip, br;q=0.9")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))

	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))
}

func TestBrotli_PassThrough(t *testing.T) {
	large := strings.Repeat("x", 4096)

	tests := []struct {
		name           string
		body           string
		path           string
		acceptEncoding string
	}{
		{"short body", "ok", "/page", "br"},
		{"client without br", large, "/page", "gzip"},
		{"skipped prefix", large, "/api/data", "br"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(brotliEngine(tt.body), tt.path, tt.acceptEncoding)
			assert.Empty(t, w.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestAcceptsBrotli(t *testing.T) {
	for header, want := range map[string]bool{
		"br":                  true,
		"gzip, deflate, br":   true,
		"BR;q=0.5":            true,
		"gzip":                false,
		"":                    false,
		"brotli-experimental": false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", header)
		assert.Equal(t, want, acceptsBrotli(req), header)
	}
}
