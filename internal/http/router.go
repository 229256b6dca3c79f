package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(web.SecurityHeadersMiddleware())

	// CSRF must run before the session middleware so the session context
	// is layered on top of the request CSRF replaces.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(web.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Load HTML templates
	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	// Create controllers
	health := NewHealthController(cfg.Database, cfg.BookStore, cfg.AuthorStore, cfg.Version)
	authorsController := NewAuthorsController(cfg.AuthorStore, cfg.SessionManager)
	booksController := NewBooksController(cfg.BookStore, cfg.AuthorStore, cfg.CoverLookup, cfg.SessionManager)
	apiController := NewAPIController(cfg.BookStore, cfg.AuthorStore)
	adminController := NewAdminController(cfg.TaskClient, cfg.AuthorStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog UI routes
	router.GET("/", booksController.HomePage)
	router.POST("/", booksController.SearchBooks)
	router.GET("/sort_by_title", booksController.SortByTitle)
	router.GET("/sort_by_author", booksController.SortByAuthor)
	router.GET("/add_author", authorsController.AddAuthorPage)
	router.POST("/add_author", authorsController.CreateAuthor)
	router.GET("/add_book", booksController.AddBookPage)
	router.POST("/add_book", booksController.CreateBook)
	router.POST("/book/:id/delete", booksController.DeleteBook)

	// JSON API endpoints
	router.GET("/api/books", apiController.ListBooks)
	router.GET("/api/books/:id", apiController.GetBook)
	router.GET("/api/authors", apiController.ListAuthors)
	router.GET("/api/authors/:id", apiController.GetAuthor)
	router.GET("/api/stats", apiController.Stats)

	// Maintenance endpoints
	router.POST("/api/admin/authors/sweep", adminController.SweepOrphanAuthors)

	return router
}
