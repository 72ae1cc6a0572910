package library

import "slices"

// MaxBooksPerShelf is the capacity of a Bookshelf.
const MaxBooksPerShelf = 10

// Bookshelf holds up to MaxBooksPerShelf books in insertion order.
// Titles are expected to be unique within a shelf; lookups return the
// first match.
type Bookshelf struct {
	name  string
	books []*Book

	events *emitter
}

func newBookshelf(name string, events *emitter) *Bookshelf {
	return &Bookshelf{
		name:   name,
		books:  make([]*Book, 0, MaxBooksPerShelf),
		events: events,
	}
}

// Name returns the shelf name.
func (s *Bookshelf) Name() string { return s.name }

// Len returns the number of books on the shelf.
func (s *Bookshelf) Len() int { return len(s.books) }

// Books returns the books in current shelf order. The slice is a copy;
// the books are not.
func (s *Bookshelf) Books() []*Book {
	out := make([]*Book, len(s.books))
	copy(out, s.books)
	return out
}

// Titles returns the titles in current shelf order.
func (s *Bookshelf) Titles() []string {
	titles := make([]string, len(s.books))
	for i, b := range s.books {
		titles[i] = b.title
	}
	return titles
}

// AddBook appends book to the end of the shelf.
//
// The same *Book may be added to more than one shelf; the shelf it was
// added to last reports its borrow, return and rate events.
func (s *Bookshelf) AddBook(book *Book) error {
	if len(s.books) >= MaxBooksPerShelf {
		return newShelfFullError(s.name)
	}
	s.books = append(s.books, book)
	if s.events != nil {
		book.events = s.events
	}
	s.events.emit(Event{Kind: EventBookAdded, Shelf: s.name, Title: book.title})
	return nil
}

// RemoveBook removes the first book titled title and returns it.
func (s *Bookshelf) RemoveBook(title string) (*Book, error) {
	i := s.index(title)
	if i < 0 {
		return nil, newBookNotFoundError(title, s.name)
	}
	removed := s.books[i]
	s.books = slices.Delete(s.books, i, i+1)
	s.events.emit(Event{Kind: EventBookRemoved, Shelf: s.name, Title: removed.title})
	return removed, nil
}

// Find returns the first book titled title.
func (s *Bookshelf) Find(title string) (*Book, bool) {
	i := s.index(title)
	if i < 0 {
		return nil, false
	}
	return s.books[i], true
}

// SortBooks reorders the shelf by criterion. The sort is stable.
func (s *Bookshelf) SortBooks(criterion SortCriterion) error {
	if !criterion.IsValid() {
		return newInvalidCriterionError(s.name, criterion)
	}
	slices.SortStableFunc(s.books, compareFunc(criterion))
	s.events.emit(Event{Kind: EventShelfSorted, Shelf: s.name, Criterion: criterion})
	return nil
}

func (s *Bookshelf) index(title string) int {
	return slices.IndexFunc(s.books, func(b *Book) bool { return b.title == title })
}
