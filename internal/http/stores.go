package http

import (
	"context"

	"bookcatalog/internal/covers"
	"bookcatalog/internal/entities"
)

// AuthorStore defines the author database operations the controllers need.
type AuthorStore interface {
	CreateAuthor(name, birthdate, dateOfDeath string) (*entities.Author, error)
	GetAuthorByID(id uint) (*entities.Author, error)
	GetAllAuthors() ([]entities.Author, error)
	CountAuthors() (int64, error)
	DeleteOrphanAuthors() (int64, error)
}

// BookStore defines the book database operations the controllers need.
type BookStore interface {
	CreateBook(book *entities.Book) error
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
	SearchBooks(query string) ([]entities.Book, error)
	SortedByTitle() ([]entities.Book, error)
	SortedByAuthor() ([]entities.Book, error)
	CountBooks() (int64, error)
	DeleteBook(id uint) error
}

// CoverLookup supplies a cover thumbnail for a (title, isbn) pair.
type CoverLookup interface {
	Lookup(ctx context.Context, title, isbn string) (covers.Result, error)
}
