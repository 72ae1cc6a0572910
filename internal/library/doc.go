// Package library models books on bookshelves in a small library.
//
// A Library owns up to MaxBookshelves shelves, each Bookshelf owns up to
// MaxBooksPerShelf books. Books are created standalone with NewBook and
// then added to a shelf.
//
// All operations are synchronous and validate before mutating: a failed
// call leaves state untouched and returns an *Error whose Code names the
// failure. Compare with the package sentinels through errors.Is.
//
// Successful mutations are reported to an optional Notifier, stamped with a
// sequence number from the library's Sequencer:
//
//	lib := library.New(library.WithNotifier(library.NewZapNotifier(logger)))
//	fantasy, _ := lib.CreateBookshelf("Fantasy")
//	hobbit := library.NewBook("The Hobbit", "J.R.R. Tolkien", 1937, 4.5)
//	_ = fantasy.AddBook(hobbit)
//	_ = hobbit.Borrow("John")
//
// The types are not safe for concurrent use.
package library
