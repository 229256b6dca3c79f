package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authorsrepo "bookcatalog/internal/database/authors"
	booksrepo "bookcatalog/internal/database/books"
	"bookcatalog/internal/entities"
)

// APIController exposes read-only JSON views over the catalog.
type APIController struct {
	books   BookStore
	authors AuthorStore
}

func NewAPIController(books BookStore, authors AuthorStore) *APIController {
	return &APIController{books: books, authors: authors}
}

// ListBooks returns all books as JSON, optionally filtered by ?q= (title
// substring) and ordered by ?sort=title|author.
// GET /api/books
func (api *APIController) ListBooks(c *gin.Context) {
	var (
		books []entities.Book
		err   error
	)

	if query := c.Query("q"); query != "" {
		books, err = api.books.SearchBooks(query)
	} else {
		switch c.Query("sort") {
		case "title":
			books, err = api.books.SortedByTitle()
		case "author":
			books, err = api.books.SortedByAuthor()
		case "":
			books, err = api.books.GetAllBooks()
		default:
			respondBadRequest(c, "sort must be 'title' or 'author'")
			return
		}
	}

	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}

// GetBook returns a single book with its author.
// GET /api/books/:id
func (api *APIController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := api.books.GetBookByID(id)
	if err != nil {
		if errors.Is(err, booksrepo.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// GetAuthor returns a single author with their books.
// GET /api/authors/:id
func (api *APIController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := api.authors.GetAuthorByID(id)
	if err != nil {
		if errors.Is(err, authorsrepo.ErrAuthorNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author")
		return
	}

	c.JSON(http.StatusOK, author)
}

// ListAuthors returns all authors as JSON, ordered by name.
// GET /api/authors
func (api *APIController) ListAuthors(c *gin.Context) {
	authors, err := api.authors.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authors": authors,
		"count":   len(authors),
	})
}

// Stats returns catalog totals.
// GET /api/stats
func (api *APIController) Stats(c *gin.Context) {
	totalBooks, err := api.books.CountBooks()
	if err != nil {
		respondInternalError(c, err, "count books")
		return
	}
	totalAuthors, err := api.authors.CountAuthors()
	if err != nil {
		respondInternalError(c, err, "count authors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_books":   totalBooks,
		"total_authors": totalAuthors,
	})
}
