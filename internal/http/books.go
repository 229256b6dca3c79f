package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	booksrepo "bookcatalog/internal/database/books"
	"bookcatalog/internal/entities"
	"bookcatalog/internal/web"
)

// BooksController serves the book listing, the add-book form and book
// deletion.
type BooksController struct {
	books    BookStore
	authors  AuthorStore
	covers   CoverLookup
	sessions *web.SessionManager
}

func NewBooksController(books BookStore, authors AuthorStore, covers CoverLookup, sessions *web.SessionManager) *BooksController {
	return &BooksController{
		books:    books,
		authors:  authors,
		covers:   covers,
		sessions: sessions,
	}
}

// HomePage lists all books.
// GET /
func (bc *BooksController) HomePage(c *gin.Context) {
	books, err := bc.books.GetAllBooks()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}
	bc.renderHome(c, books, "")
}

// SearchBooks filters books by a case-insensitive title substring. Zero
// matches is a distinct state, not an empty listing.
// POST /
func (bc *BooksController) SearchBooks(c *gin.Context) {
	search := strings.TrimSpace(c.PostForm("search"))
	if search == "" {
		bc.HomePage(c)
		return
	}

	books, err := bc.books.SearchBooks(search)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error searching books: %s", err.Error())
		return
	}
	bc.renderHome(c, books, search)
}

// SortByTitle lists all books in title order.
// GET /sort_by_title
func (bc *BooksController) SortByTitle(c *gin.Context) {
	books, err := bc.books.SortedByTitle()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}
	bc.renderHome(c, books, "")
}

// SortByAuthor lists books ordered by their author's name.
// GET /sort_by_author
func (bc *BooksController) SortByAuthor(c *gin.Context) {
	books, err := bc.books.SortedByAuthor()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}
	bc.renderHome(c, books, "")
}

// AddBookPage renders the add-book form with the author dropdown.
// GET /add_book
func (bc *BooksController) AddBookPage(c *gin.Context) {
	authors, err := bc.authors.GetAllAuthors()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading authors: %s", err.Error())
		return
	}
	c.HTML(http.StatusOK, "add_book", gin.H{
		"Authors":   authors,
		"CSRFToken": web.GetCSRFToken(c),
		"Flash":     bc.popFlash(c),
		"Error":     c.Query("error"),
	})
}

// CreateBook validates the form, fetches a cover thumbnail and inserts the
// book. Lookup failures are logged and stored as an empty image URL; they
// never fail the creation.
// POST /add_book
func (bc *BooksController) CreateBook(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	isbn := strings.TrimSpace(c.PostForm("isbn"))

	if title == "" || isbn == "" {
		bc.renderAddBookError(c, "Title and ISBN are required")
		return
	}

	var year int
	if yearStr := strings.TrimSpace(c.PostForm("publication_year")); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			bc.renderAddBookError(c, "Publication year must be a number")
			return
		}
		year = parsed
	}

	var authorID *uint
	if idStr := strings.TrimSpace(c.PostForm("author_id")); idStr != "" {
		parsed, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			bc.renderAddBookError(c, "Invalid author")
			return
		}
		id := uint(parsed)
		authorID = &id
	}

	imageURL := ""
	if bc.covers != nil {
		result, err := bc.covers.Lookup(c.Request.Context(), title, isbn)
		switch {
		case err != nil:
			log.Printf("Cover lookup failed for %q (%s): %v", title, isbn, err)
		case result.Found:
			imageURL = result.ThumbnailURL
		}
	}

	book := &entities.Book{
		Title:           title,
		ISBN:            isbn,
		PublicationYear: year,
		AuthorID:        authorID,
		ImageURL:        imageURL,
	}
	if err := bc.books.CreateBook(book); err != nil {
		c.String(http.StatusInternalServerError, "Error saving book: %s", err.Error())
		return
	}

	if bc.sessions != nil {
		bc.sessions.Flash(c.Request, "Book \""+book.Title+"\" successfully added to the catalog")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteBook removes a book and then sweeps authors left without books.
// The sweep is a separate commit from the delete; the narrow race with a
// concurrent insert is accepted.
// POST /book/:id/delete
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.books.DeleteBook(id); err != nil {
		if errors.Is(err, booksrepo.ErrBookNotFound) {
			c.String(http.StatusNotFound, "No book found with ID %d", id)
			return
		}
		c.String(http.StatusInternalServerError, "Error deleting book: %s", err.Error())
		return
	}
	log.Printf("Book with ID %d deleted", id)

	swept, err := bc.authors.DeleteOrphanAuthors()
	if err != nil {
		log.Printf("Orphan author sweep after deleting book %d failed: %v", id, err)
	} else if swept > 0 {
		log.Printf("Swept %d orphan authors after deleting book %d", swept, id)
	}

	if bc.sessions != nil {
		bc.sessions.Flash(c.Request, "Book deleted")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (bc *BooksController) renderHome(c *gin.Context, books []entities.Book, search string) {
	c.HTML(http.StatusOK, "home", gin.H{
		"Books":       books,
		"NoResults":   search != "" && len(books) == 0,
		"SearchQuery": search,
		"CSRFToken":   web.GetCSRFToken(c),
		"Flash":       bc.popFlash(c),
	})
}

func (bc *BooksController) renderAddBookError(c *gin.Context, message string) {
	authors, err := bc.authors.GetAllAuthors()
	if err != nil {
		authors = nil
	}
	c.HTML(http.StatusBadRequest, "add_book", gin.H{
		"Authors":   authors,
		"CSRFToken": web.GetCSRFToken(c),
		"Error":     message,
	})
}

func (bc *BooksController) popFlash(c *gin.Context) string {
	if bc.sessions == nil {
		return ""
	}
	return bc.sessions.PopFlash(c.Request)
}
