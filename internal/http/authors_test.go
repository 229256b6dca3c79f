package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	authorsrepo "bookcatalog/internal/database/authors"
	"bookcatalog/internal/entities"
)

// Minimal templates covering the names the controllers render.
const testTemplates = `
{{define "home"}}{{if .NoResults}}No books found{{end}}{{range .Books}}[{{.Title}}]{{end}}{{end}}
{{define "add_author"}}{{.Error}}{{end}}
{{define "add_book"}}{{.Error}}{{range .Authors}}<option>{{.Name}}</option>{{end}}{{end}}
`

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type mockAuthorStore struct {
	authors    []entities.Author
	createErr  error
	sweepCalls int
	sweepCount int64
	sweepErr   error
}

func (m *mockAuthorStore) CreateAuthor(name, birthdate, dateOfDeath string) (*entities.Author, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	author := entities.Author{
		ID:          uint(len(m.authors) + 1),
		Name:        name,
		Birthdate:   birthdate,
		DateOfDeath: dateOfDeath,
	}
	m.authors = append(m.authors, author)
	return &author, nil
}

func (m *mockAuthorStore) GetAuthorByID(id uint) (*entities.Author, error) {
	for i := range m.authors {
		if m.authors[i].ID == id {
			return &m.authors[i], nil
		}
	}
	return nil, authorsrepo.ErrAuthorNotFound
}

func (m *mockAuthorStore) GetAllAuthors() ([]entities.Author, error) {
	return m.authors, nil
}

func (m *mockAuthorStore) CountAuthors() (int64, error) {
	return int64(len(m.authors)), nil
}

func (m *mockAuthorStore) DeleteOrphanAuthors() (int64, error) {
	m.sweepCalls++
	return m.sweepCount, m.sweepErr
}

func TestAddAuthorPage(t *testing.T) {
	store := &mockAuthorStore{}
	controller := NewAuthorsController(store, nil)

	router := newTestEngine()
	router.GET("/add_author", controller.AddAuthorPage)

	req, _ := http.NewRequest("GET", "/add_author", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestCreateAuthor(t *testing.T) {
	store := &mockAuthorStore{}
	controller := NewAuthorsController(store, nil)

	router := newTestEngine()
	router.POST("/add_author", controller.CreateAuthor)

	w := postForm(router, "/add_author", url.Values{
		"name":          {"Jane Austen"},
		"birthdate":     {"1775"},
		"date_of_death": {"1817"},
	})

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/add_author" {
		t.Errorf("expected redirect to /add_author, got %q", loc)
	}
	if len(store.authors) != 1 {
		t.Fatalf("expected 1 author created, got %d", len(store.authors))
	}
	if store.authors[0].Name != "Jane Austen" {
		t.Errorf("unexpected author name: %q", store.authors[0].Name)
	}
	if store.authors[0].Birthdate != "1775" || store.authors[0].DateOfDeath != "1817" {
		t.Errorf("unexpected lifespan: %q - %q", store.authors[0].Birthdate, store.authors[0].DateOfDeath)
	}
}

func TestCreateAuthor_MissingName(t *testing.T) {
	store := &mockAuthorStore{}
	controller := NewAuthorsController(store, nil)

	router := newTestEngine()
	router.POST("/add_author", controller.CreateAuthor)

	w := postForm(router, "/add_author", url.Values{
		"birthdate": {"1775"},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Name is required") {
		t.Errorf("expected validation message in body, got %q", w.Body.String())
	}
	if len(store.authors) != 0 {
		t.Error("expected no author to be created")
	}
}

func TestCreateAuthor_TrimsWhitespace(t *testing.T) {
	store := &mockAuthorStore{}
	controller := NewAuthorsController(store, nil)

	router := newTestEngine()
	router.POST("/add_author", controller.CreateAuthor)

	w := postForm(router, "/add_author", url.Values{
		"name": {"  Leo Tolstoy  "},
	})

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status 303, got %d", w.Code)
	}
	if store.authors[0].Name != "Leo Tolstoy" {
		t.Errorf("expected trimmed name, got %q", store.authors[0].Name)
	}
}
