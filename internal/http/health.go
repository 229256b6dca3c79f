package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/database"
)

// CatalogStats carries the catalog totals reported alongside the health
// checks.
type CatalogStats struct {
	TotalBooks   int64 `json:"total_books"`
	TotalAuthors int64 `json:"total_authors"`
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Stats   *CatalogStats     `json:"stats,omitempty"`
}

// HealthController reports database connectivity and catalog totals.
type HealthController struct {
	db      *database.Database
	books   BookStore
	authors AuthorStore
	version string
}

func NewHealthController(db *database.Database, books BookStore, authors AuthorStore, version string) *HealthController {
	return &HealthController{
		db:      db,
		books:   books,
		authors: authors,
		version: version,
	}
}

// Status responds 200 with catalog totals while the database is reachable,
// 503 once any check fails.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	healthy := h.checkDatabase(checks)

	var stats *CatalogStats
	if healthy {
		stats = h.catalogStats(checks, &healthy)
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
		Stats:   stats,
	})
}

func (h *HealthController) checkDatabase(checks map[string]string) bool {
	if h.db == nil {
		checks["database"] = "not configured"
		return true
	}

	sqlDB, err := h.db.DB.DB()
	if err != nil {
		checks["database"] = "error: " + err.Error()
		return false
	}
	if err := sqlDB.Ping(); err != nil {
		checks["database"] = "error: " + err.Error()
		return false
	}

	checks["database"] = "ok"
	return true
}

// catalogStats counts books and authors. A failing count marks the catalog
// check unhealthy since the connectivity ping already passed.
func (h *HealthController) catalogStats(checks map[string]string, healthy *bool) *CatalogStats {
	if h.books == nil || h.authors == nil {
		return nil
	}

	totalBooks, err := h.books.CountBooks()
	if err != nil {
		checks["catalog"] = "error: " + err.Error()
		*healthy = false
		return nil
	}
	totalAuthors, err := h.authors.CountAuthors()
	if err != nil {
		checks["catalog"] = "error: " + err.Error()
		*healthy = false
		return nil
	}

	checks["catalog"] = "ok"
	return &CatalogStats{
		TotalBooks:   totalBooks,
		TotalAuthors: totalAuthors,
	}
}
