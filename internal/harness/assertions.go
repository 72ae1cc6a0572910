package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/shelves/internal/library"
)

// AssertionContext gives assertions access to the final state of a run.
type AssertionContext struct {
	Library *library.Library

	// Books are the books created by new_book steps, keyed by title.
	Books map[string]*library.Book
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertShelfOrder:
			err = assertShelfOrder(actx, assertion)
		case AssertShelfCount:
			err = assertShelfCount(actx, assertion)
		case AssertBorrowed:
			err = assertBorrowed(actx, assertion)
		case AssertRating:
			err = assertRating(actx, assertion)
		case AssertEventCount:
			err = assertEventCount(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

func lookupShelf(actx *AssertionContext, name string) (*library.Bookshelf, error) {
	if actx == nil || actx.Library == nil {
		return nil, fmt.Errorf("shelf assertions require a library")
	}
	shelf, ok := actx.Library.Bookshelf(name)
	if !ok {
		return nil, fmt.Errorf("shelf %q does not exist", name)
	}
	return shelf, nil
}

func lookupBook(actx *AssertionContext, title string) (*library.Book, error) {
	if actx == nil {
		return nil, fmt.Errorf("book assertions require a library")
	}
	book, ok := actx.Books[title]
	if !ok {
		return nil, fmt.Errorf("book %q was not created", title)
	}
	return book, nil
}

func assertShelfOrder(actx *AssertionContext, a Assertion) error {
	shelf, err := lookupShelf(actx, a.Shelf)
	if err != nil {
		return err
	}
	got := shelf.Titles()
	if !slices.Equal(got, a.Titles) {
		return &AssertionError{
			Type:     AssertShelfOrder,
			Expected: fmt.Sprintf("%s holds %q", a.Shelf, a.Titles),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}

func assertShelfCount(actx *AssertionContext, a Assertion) error {
	shelf, err := lookupShelf(actx, a.Shelf)
	if err != nil {
		return err
	}
	if shelf.Len() != a.Count {
		return &AssertionError{
			Type:     AssertShelfCount,
			Expected: fmt.Sprintf("%s holds %d books", a.Shelf, a.Count),
			Actual:   fmt.Sprintf("%d books", shelf.Len()),
		}
	}
	return nil
}

func assertBorrowed(actx *AssertionContext, a Assertion) error {
	book, err := lookupBook(actx, a.Title)
	if err != nil {
		return err
	}
	if book.BorrowedBy() == a.By && book.Borrowed() == (a.By != "") {
		return nil
	}

	expected := fmt.Sprintf("%s borrowed by %s", a.Title, a.By)
	if a.By == "" {
		expected = fmt.Sprintf("%s not borrowed", a.Title)
	}
	actual := "not borrowed"
	if book.Borrowed() {
		actual = "borrowed by " + book.BorrowedBy()
	}
	return &AssertionError{Type: AssertBorrowed, Expected: expected, Actual: actual}
}

func assertRating(actx *AssertionContext, a Assertion) error {
	book, err := lookupBook(actx, a.Title)
	if err != nil {
		return err
	}
	if book.Rating() != a.Rating {
		return &AssertionError{
			Type:     AssertRating,
			Expected: fmt.Sprintf("%s rated %v", a.Title, a.Rating),
			Actual:   fmt.Sprintf("%v", book.Rating()),
		}
	}
	return nil
}

func assertEventCount(result *Result, a Assertion) error {
	got := result.CountEvents(a.Kind)
	if got != a.Count {
		return &AssertionError{
			Type:     AssertEventCount,
			Expected: fmt.Sprintf("%d %s events", a.Count, a.Kind),
			Actual:   fmt.Sprintf("%d", got),
		}
	}
	return nil
}
