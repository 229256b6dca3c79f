package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/database"
	"bookcatalog/internal/entities"
)

func setupHealthTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_health_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func healthRequest(t *testing.T, controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy with catalog counts", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		bookStore := &mockBookStore{books: []entities.Book{{ID: 1, Title: "Emma", ISBN: "1"}}}
		authorStore := &mockAuthorStore{authors: []entities.Author{
			{ID: 1, Name: "Jane Austen"},
			{ID: 2, Name: "Leo Tolstoy"},
		}}
		controller := NewHealthController(db, bookStore, authorStore, "1.0.0")

		w, response := healthRequest(t, controller)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok", response.Checks["catalog"])
		assert.NotEmpty(t, response.Time)

		require.NotNil(t, response.Stats)
		assert.Equal(t, int64(1), response.Stats.TotalBooks)
		assert.Equal(t, int64(2), response.Stats.TotalAuthors)
	})

	t.Run("reports missing database without failing", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		controller := NewHealthController(nil, nil, nil, "1.0.0")

		w, response := healthRequest(t, controller)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "not configured", response.Checks["database"])
		assert.Nil(t, response.Stats)
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		db.Close()

		controller := NewHealthController(db, &mockBookStore{}, &mockAuthorStore{}, "1.0.0")

		w, response := healthRequest(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
		assert.Nil(t, response.Stats)
	})

	t.Run("returns unhealthy when counting fails", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		bookStore := &mockBookStore{countErr: errors.New("database is locked")}
		controller := NewHealthController(db, bookStore, &mockAuthorStore{}, "1.0.0")

		w, response := healthRequest(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Contains(t, response.Checks["catalog"], "error")
		assert.Nil(t, response.Stats)
	})
}
