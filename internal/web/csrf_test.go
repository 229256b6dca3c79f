package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

var csrfTestSecret = []byte("01234567890123456789012345678901")

func newCSRFTestRouter(handled *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CSRFMiddleware(csrfTestSecret, false))
	router.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	router.POST("/form", func(c *gin.Context) {
		*handled++
		c.String(http.StatusOK, "saved")
	})
	return router
}

func TestCSRFMiddleware_RejectsPostWithoutToken(t *testing.T) {
	handled := 0
	router := newCSRFTestRouter(&handled)

	form := url.Values{"name": {"Jane Austen"}}
	req, _ := http.NewRequest("POST", "/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", w.Code)
	}
	// The route handler must not run on a rejected request
	if handled != 0 {
		t.Errorf("expected handler not to run on CSRF failure, ran %d times", handled)
	}
}

func TestCSRFMiddleware_RejectionRedirectsToReferer(t *testing.T) {
	handled := 0
	router := newCSRFTestRouter(&handled)

	req, _ := http.NewRequest("POST", "/form", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "/form")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "error=") {
		t.Errorf("expected error in redirect location, got %q", loc)
	}
	if handled != 0 {
		t.Errorf("expected handler not to run on CSRF failure, ran %d times", handled)
	}
}

func TestCSRFMiddleware_AllowsSafeMethods(t *testing.T) {
	handled := 0
	router := newCSRFTestRouter(&handled)

	req, _ := http.NewRequest("GET", "/form", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() == "" {
		t.Error("expected a CSRF token to be issued on GET")
	}
}

func TestCSRFMiddleware_AcceptsSameOriginPlainHTTP(t *testing.T) {
	handled := 0
	router := newCSRFTestRouter(&handled)

	getReq := httptest.NewRequest("GET", "http://example.com/form", nil)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)

	token := getW.Body.String()

	// Browsers send a same-origin Origin header on form posts; over plain
	// HTTP this must still validate.
	form := url.Values{"gorilla.csrf.Token": {token}}
	req := httptest.NewRequest("POST", "http://example.com/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	for _, cookie := range getW.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if handled != 1 {
		t.Errorf("expected handler to run once, ran %d times", handled)
	}
}

func TestCSRFMiddleware_AcceptsValidToken(t *testing.T) {
	handled := 0
	router := newCSRFTestRouter(&handled)

	// Fetch a token plus the CSRF cookie it is bound to
	getReq, _ := http.NewRequest("GET", "/form", nil)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)

	token := getW.Body.String()
	if token == "" {
		t.Fatal("expected a CSRF token from GET")
	}

	form := url.Values{"gorilla.csrf.Token": {token}}
	req, _ := http.NewRequest("POST", "/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range getW.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if handled != 1 {
		t.Errorf("expected handler to run once, ran %d times", handled)
	}
}
