package http

import (
	"bookcatalog/internal/database"
	"bookcatalog/internal/tasks"
	"bookcatalog/internal/web"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	AuthorStore AuthorStore
	BookStore   BookStore
	CoverLookup CoverLookup
	Database    *database.Database

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Flash-message sessions (optional)
	SessionManager *web.SessionManager

	// CSRF protection for form posts; disabled when the secret is empty
	CSRFSecret    []byte
	SecureCookies bool
}
