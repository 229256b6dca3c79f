// Package books provides database operations for the book catalog:
// creation, listing with search and sort, and deletion.
//
// All query methods return fully materialized result sets with the Author
// relation preloaded; nothing is lazily resolved after a method returns.
package books

import (
	"errors"

	"gorm.io/gorm"

	"bookcatalog/internal/entities"
)

// ErrBookNotFound signals a lookup or delete against a book ID that does
// not exist.
var ErrBookNotFound = errors.New("book not found")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBook inserts a new book. book.AuthorID is not validated against
// the authors table; a dangling reference is stored as-is.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetBookByID retrieves a single book with its author.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAllBooks retrieves all books with their authors, in insertion order.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Find(&books).Error
	return books, err
}

// SearchBooks returns books whose title contains the query,
// case-insensitively.
func (r *Repository) SearchBooks(query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + query + "%"
	err := r.db.Preload("Author").
		Where("LOWER(title) LIKE LOWER(?)", searchPattern).
		Find(&books).Error
	return books, err
}

// SortedByTitle returns all books in non-decreasing title order.
func (r *Repository) SortedByTitle() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Order("title ASC").Find(&books).Error
	return books, err
}

// SortedByAuthor returns books ordered by their author's name, resolved
// through an explicit join. Books without an author are excluded, matching
// the inner-join listing semantics.
func (r *Repository) SortedByAuthor() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").
		Joins("INNER JOIN authors ON authors.id = books.author_id").
		Order("authors.name ASC, books.title ASC").
		Find(&books).Error
	return books, err
}

// CountBooks returns the total number of books.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// DeleteBook removes a book by ID. Returns ErrBookNotFound when no row
// was deleted.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
