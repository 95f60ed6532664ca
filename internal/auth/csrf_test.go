package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

var testCSRFSecret = []byte("test-secret-key-32-bytes-long!!!")

func setupCSRFRouter() *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testCSRFSecret, false))
	router.GET("/cars", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	router.POST("/cars", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	router.POST("/api/cars", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	return router
}

func TestCSRFMiddleware_AllowsGET(t *testing.T) {
	router := setupCSRFRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cars", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for GET, got %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected a CSRF token for templates")
	}
}

func TestCSRFMiddleware_RejectsPostWithoutToken(t *testing.T) {
	router := setupCSRFRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/cars", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "created") {
		t.Error("handler ran despite CSRF failure")
	}
}

func TestCSRFMiddleware_FormFailureRedirectsToReferer(t *testing.T) {
	router := setupCSRFRouter()

	req := httptest.NewRequest(http.MethodPost, "/cars", strings.NewReader("model=Golf"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://localhost/cars")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "http://localhost/cars?error=") {
		t.Errorf("Location = %q", loc)
	}
}

func TestCSRFMiddleware_AcceptsValidToken(t *testing.T) {
	router := setupCSRFRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cars", nil))
	token := w.Body.String()
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected CSRF cookie on GET")
	}

	form := url.Values{CSRFFieldName: {token}, "model": {"Golf"}}
	req := httptest.NewRequest(http.MethodPost, "/cars", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201 with valid token, got %d: %s", w.Code, w.Body.String())
	}
}
