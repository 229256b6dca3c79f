package entities

import (
	"fmt"
	"time"
)

// Author is a catalog author. Birthdate and DateOfDeath are free-form
// text (e.g. "1775" or "1775-12-16") since source data is rarely uniform.
type Author struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"index;size:256;not null" json:"name"`
	Birthdate   string `gorm:"size:32" json:"birthdate,omitempty"`
	DateOfDeath string `gorm:"size:32" json:"date_of_death,omitempty"`

	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Book is a catalog entry. AuthorID is nullable and not enforced at the
// schema level: a book may carry a dangling author reference.
type Book struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	ISBN            string  `gorm:"index;size:20;not null" json:"isbn"`
	Title           string  `gorm:"index;size:512;not null" json:"title"`
	PublicationYear int     `json:"publication_year,omitempty"`
	AuthorID        *uint   `gorm:"index" json:"author_id,omitempty"`
	Author          *Author `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ImageURL        string  `gorm:"size:2048" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

// Lifespan renders the author's dates for display, e.g. "1775-1817".
func (a Author) Lifespan() string {
	if a.Birthdate == "" && a.DateOfDeath == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s", a.Birthdate, a.DateOfDeath)
}

// AuthorName returns the joined author's name or an empty string when the
// book has no (or a dangling) author reference.
func (b Book) AuthorName() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.Name
}
