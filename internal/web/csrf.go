package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// csrfTokenContextKey is the Gin context key the middleware stores the
// per-request CSRF token under, for templates to embed in forms.
const csrfTokenContextKey = "csrf_token"

// CSRFMiddleware creates a Gin middleware protecting the catalog's form
// posts. Safe methods (GET, HEAD, OPTIONS, TRACE) pass through unchecked.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		// Without this, origin validation assumes https and rejects every
		// same-origin form post served over plain HTTP.
		if !secure {
			c.Request = csrf.PlaintextHTTPRequest(c.Request)
		}

		passed := false
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Store the token in the context for templates, and replace
			// the request so the CSRF context survives into the handler.
			passed = true
			c.Set(csrfTokenContextKey, csrf.Token(r))
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)

		// On rejection gorilla/csrf writes the response itself and never
		// calls the inner handler; stop gin from running the route handler
		// on top of that.
		if !passed {
			c.Abort()
		}
	}
}

// csrfErrorHandler handles CSRF validation failures by sending form posts
// back to the page they came from with a user-visible error.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	referer := r.Referer()
	if referer != "" {
		separator := "?"
		if strings.Contains(referer, "?") {
			separator = "&"
		}
		http.Redirect(w, r, referer+separator+"error=Form+expired.+Please+try+again.", http.StatusSeeOther)
		return
	}

	http.Error(w, "Form expired. Please go back and try again.", http.StatusForbidden)
}

// GetCSRFToken retrieves the CSRF token from the Gin context. Returns an
// empty string when the middleware is not installed.
func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get(csrfTokenContextKey); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// GenerateCSRFSecret returns a random 32-byte secret, hex encoded.
func GenerateCSRFSecret() (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return hex.EncodeToString(secret), nil
}
