package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		value    string
		wantID   uint
		wantOK   bool
		wantCode int
	}{
		{"valid", "123", 123, true, http.StatusOK},
		{"zero", "0", 0, true, http.StatusOK},
		{"negative", "-5", 0, false, http.StatusBadRequest},
		{"non-numeric", "abc", 0, false, http.StatusBadRequest},
		{"empty", "", 0, false, http.StatusBadRequest},
		{"overflow", "99999999999999999999", 0, false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := parseIDParam(c, "id")

			if ok != tt.wantOK {
				t.Errorf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if id != tt.wantID {
				t.Errorf("expected id=%d, got %d", tt.wantID, id)
			}
			if !tt.wantOK && w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}
