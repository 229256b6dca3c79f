package web

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// sessionKeyFlash holds the one-shot confirmation message shown after a
// successful form post (post/redirect/get).
const sessionKeyFlash = "flash"

// SessionManager wraps scs.SessionManager with flash-message helpers.
// Sessions exist only to carry confirmations across redirects; there is
// no user identity attached to them.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// catalog's SQLite database. The sqlDB parameter should be the underlying
// *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, lifetime time.Duration, secureCookies bool) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// Flash stores a one-shot message to display after the next redirect.
func (sm *SessionManager) Flash(r *http.Request, message string) {
	sm.Put(r.Context(), sessionKeyFlash, message)
}

// PopFlash removes and returns the pending flash message, or an empty
// string when none is set.
func (sm *SessionManager) PopFlash(r *http.Request) string {
	return sm.PopString(r.Context(), sessionKeyFlash)
}
