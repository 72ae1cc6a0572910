package library

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes library failures.
type ErrorCode string

const (
	// CodeAlreadyBorrowed indicates Borrow on a book that is already out.
	CodeAlreadyBorrowed ErrorCode = "ALREADY_BORROWED"

	// CodeNotBorrowed indicates Return on a book that is not out.
	CodeNotBorrowed ErrorCode = "NOT_BORROWED"

	// CodeInvalidRating indicates a rating outside [MinRating, MaxRating].
	CodeInvalidRating ErrorCode = "INVALID_RATING"

	// CodeShelfFull indicates AddBook on a shelf at MaxBooksPerShelf.
	CodeShelfFull ErrorCode = "SHELF_FULL"

	// CodeBookNotFound indicates no book with the requested title.
	CodeBookNotFound ErrorCode = "BOOK_NOT_FOUND"

	// CodeInvalidCriterion indicates an unknown sort criterion.
	CodeInvalidCriterion ErrorCode = "INVALID_CRITERION"

	// CodeTooManyShelves indicates CreateBookshelf at MaxBookshelves.
	CodeTooManyShelves ErrorCode = "TOO_MANY_SHELVES"
)

// Error is returned by every failing library operation.
//
// Two errors are equal under errors.Is when their codes match, so callers
// can compare against the package sentinels:
//
//	if errors.Is(err, library.ErrShelfFull) { ... }
type Error struct {
	// Code identifies the failure kind.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Title is the book involved, if any.
	Title string

	// Shelf is the bookshelf involved, if any.
	Shelf string
}

// Sentinels for errors.Is comparisons.
var (
	ErrAlreadyBorrowed  = &Error{Code: CodeAlreadyBorrowed}
	ErrNotBorrowed      = &Error{Code: CodeNotBorrowed}
	ErrInvalidRating    = &Error{Code: CodeInvalidRating}
	ErrShelfFull        = &Error{Code: CodeShelfFull}
	ErrBookNotFound     = &Error{Code: CodeBookNotFound}
	ErrInvalidCriterion = &Error{Code: CodeInvalidCriterion}
	ErrTooManyShelves   = &Error{Code: CodeTooManyShelves}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain,
// or "" if there is none.
func CodeOf(err error) ErrorCode {
	var le *Error
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

func newAlreadyBorrowedError(title string) *Error {
	return &Error{
		Code:    CodeAlreadyBorrowed,
		Message: fmt.Sprintf("%s is already borrowed", title),
		Title:   title,
	}
}

func newNotBorrowedError(title string) *Error {
	return &Error{
		Code:    CodeNotBorrowed,
		Message: fmt.Sprintf("%s is not borrowed", title),
		Title:   title,
	}
}

func newInvalidRatingError(title string, rating float64) *Error {
	return &Error{
		Code:    CodeInvalidRating,
		Message: fmt.Sprintf("rating %v must be between %d and %d", rating, MinRating, MaxRating),
		Title:   title,
	}
}

func newShelfFullError(shelf string) *Error {
	return &Error{
		Code:    CodeShelfFull,
		Message: fmt.Sprintf("%s is already full (%d books)", shelf, MaxBooksPerShelf),
		Shelf:   shelf,
	}
}

func newBookNotFoundError(title, shelf string) *Error {
	where := "the library"
	if shelf != "" {
		where = shelf
	}
	return &Error{
		Code:    CodeBookNotFound,
		Message: fmt.Sprintf("book %q not found in %s", title, where),
		Title:   title,
		Shelf:   shelf,
	}
}

func newInvalidCriterionError(shelf string, criterion SortCriterion) *Error {
	return &Error{
		Code:    CodeInvalidCriterion,
		Message: fmt.Sprintf("invalid sorting criterion %q: must be one of %v", criterion, SortCriteria),
		Shelf:   shelf,
	}
}

func newTooManyShelvesError() *Error {
	return &Error{
		Code:    CodeTooManyShelves,
		Message: fmt.Sprintf("maximum number of bookshelves (%d) reached", MaxBookshelves),
	}
}
