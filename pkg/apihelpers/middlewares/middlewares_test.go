package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"client": c.GetString(API_CLIENT_KEY)})
	})
	r.POST("/test", handlers...)
	return r
}

func TestHasValidAPIKey(t *testing.T) {
	r := newTestRouter(HasValidAPIKey(map[string]string{"key-1": "editor"}))

	tests := []struct {
		name     string
		keys     []string
		expected int
	}{
		{name: "missing", keys: nil, expected: http.StatusUnauthorized},
		{name: "wrong", keys: []string{"other"}, expected: http.StatusUnauthorized},
		{name: "valid", keys: []string{"key-1"}, expected: http.StatusOK},
		{name: "one of many", keys: []string{"other", "key-1"}, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			for _, k := range tt.keys {
				req.Header.Add(API_KEY_HEADER, k)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.expected {
				t.Errorf("unexpected status: %d", w.Code)
			}
			if tt.expected == http.StatusOK && !strings.Contains(w.Body.String(), "editor") {
				t.Errorf("client name not set: %s", w.Body.String())
			}
		})
	}
}

func TestRequirePayload(t *testing.T) {
	r := newTestRouter(RequirePayload())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unexpected status: %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":1}`)))
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status: %d", w.Code)
	}
}
