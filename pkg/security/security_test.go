package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(handler gin.HandlerFunc, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handler)
	router.Handle(http.MethodGet, "/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSAllowlist(t *testing.T) {
	handler := CORS([]string{"https://exam.example.com"})

	// 白名单内的来源回显并带 Credentials
	w := performRequest(handler, http.MethodGet, "https://exam.example.com")
	assert.Equal(t, "https://exam.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	// 白名单外的来源不放行
	w = performRequest(handler, http.MethodGet, "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWildcard(t *testing.T) {
	handler := CORS([]string{"*"})

	// 任意来源放行，但不带 Credentials
	w := performRequest(handler, http.MethodGet, "https://anywhere.example.com")
	assert.Equal(t, "https://anywhere.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"https://exam.example.com"})

	w := performRequest(handler, http.MethodOptions, "https://exam.example.com")
	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}
