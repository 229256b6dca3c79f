package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/web"
)

// AuthorsController serves the add-author form.
type AuthorsController struct {
	store    AuthorStore
	sessions *web.SessionManager
}

func NewAuthorsController(store AuthorStore, sessions *web.SessionManager) *AuthorsController {
	return &AuthorsController{store: store, sessions: sessions}
}

// AddAuthorPage renders the add-author form.
// GET /add_author
func (ac *AuthorsController) AddAuthorPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_author", gin.H{
		"CSRFToken": web.GetCSRFToken(c),
		"Flash":     ac.popFlash(c),
		"Error":     c.Query("error"),
	})
}

// CreateAuthor validates the submitted form and inserts the author.
// POST /add_author
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	birthdate := strings.TrimSpace(c.PostForm("birthdate"))
	dateOfDeath := strings.TrimSpace(c.PostForm("date_of_death"))

	if name == "" {
		c.HTML(http.StatusBadRequest, "add_author", gin.H{
			"CSRFToken": web.GetCSRFToken(c),
			"Error":     "Name is required",
			"Birthdate": birthdate,
			"DateOfDeath": dateOfDeath,
		})
		return
	}

	author, err := ac.store.CreateAuthor(name, birthdate, dateOfDeath)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error saving author: %s", err.Error())
		return
	}

	if ac.sessions != nil {
		ac.sessions.Flash(c.Request, "Author \""+author.Name+"\" successfully added to the catalog")
	}
	c.Redirect(http.StatusSeeOther, "/add_author")
}

func (ac *AuthorsController) popFlash(c *gin.Context) string {
	if ac.sessions == nil {
		return ""
	}
	return ac.sessions.PopFlash(c.Request)
}
