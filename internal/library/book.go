package library

import "math"

// Rating bounds accepted by Book.Rate.
const (
	MinRating = 1
	MaxRating = 5
)

// Book is a single title. BorrowedBy is non-empty iff the book is borrowed.
type Book struct {
	title           string
	author          string
	publicationYear int
	rating          float64
	borrowed        bool
	borrowedBy      string

	events *emitter
}

// BookView is a read-only snapshot of a Book for output.
type BookView struct {
	Title           string  `json:"title" yaml:"title"`
	Author          string  `json:"author" yaml:"author"`
	PublicationYear int     `json:"publication_year" yaml:"publication_year"`
	Rating          float64 `json:"rating" yaml:"rating"`
	Borrowed        bool    `json:"borrowed" yaml:"borrowed"`
	BorrowedBy      string  `json:"borrowed_by,omitempty" yaml:"borrowed_by,omitempty"`
}

// NewBook creates a book that is not borrowed. The initial rating is taken
// as given; only Rate validates.
func NewBook(title, author string, publicationYear int, rating float64) *Book {
	return &Book{
		title:           title,
		author:          author,
		publicationYear: publicationYear,
		rating:          rating,
	}
}

func (b *Book) Title() string        { return b.title }
func (b *Book) Author() string       { return b.author }
func (b *Book) PublicationYear() int { return b.publicationYear }
func (b *Book) Rating() float64      { return b.rating }
func (b *Book) Borrowed() bool       { return b.borrowed }

// BorrowedBy returns the borrower, or "" when the book is on the shelf.
func (b *Book) BorrowedBy() string { return b.borrowedBy }

// View returns a snapshot of the book.
func (b *Book) View() BookView {
	return BookView{
		Title:           b.title,
		Author:          b.author,
		PublicationYear: b.publicationYear,
		Rating:          b.rating,
		Borrowed:        b.borrowed,
		BorrowedBy:      b.borrowedBy,
	}
}

// Borrow marks the book as borrowed by user.
func (b *Book) Borrow(user string) error {
	if b.borrowed {
		return newAlreadyBorrowedError(b.title)
	}
	b.borrowed = true
	b.borrowedBy = user
	b.events.emit(Event{Kind: EventBookBorrowed, Title: b.title, User: user})
	return nil
}

// Return puts a borrowed book back.
func (b *Book) Return() error {
	if !b.borrowed {
		return newNotBorrowedError(b.title)
	}
	b.borrowed = false
	b.borrowedBy = ""
	b.events.emit(Event{Kind: EventBookReturned, Title: b.title})
	return nil
}

// Rate sets the rating. NaN is rejected along with values outside
// [MinRating, MaxRating]; the previous rating is kept on failure.
func (b *Book) Rate(rating float64) error {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return newInvalidRatingError(b.title, rating)
	}
	b.rating = rating
	b.events.emit(Event{Kind: EventBookRated, Title: b.title, Rating: rating})
	return nil
}
