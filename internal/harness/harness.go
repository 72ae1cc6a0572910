package harness

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/roach88/shelves/internal/library"
	"github.com/roach88/shelves/internal/sieve"
	"github.com/roach88/shelves/internal/testutil"
)

// Options configures a run.
type Options struct {
	// Logger receives a debug line per library event. Nil discards.
	Logger *zap.Logger
}

// Harness executes one scenario against a fresh library.
type Harness struct {
	lib    *library.Library
	books  map[string]*library.Book
	clock  *testutil.DeterministicClock
	result *Result
	logger *zap.Logger
}

// Run executes a scenario with default options.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithOptions(scenario, Options{})
}

// RunWithOptions executes a scenario and returns its result.
//
// Each run gets a new library and a deterministic clock starting at 0, so
// the same scenario always yields the same trace. Step failures that the
// scenario did not expect, and failed assertions, are reported in
// Result.Errors. An error is returned only when the scenario itself is
// broken, e.g. a step refers to a shelf that was never created.
func RunWithOptions(scenario *Scenario, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Harness{
		books:  make(map[string]*library.Book),
		clock:  testutil.NewDeterministicClock(),
		result: NewResult(testutil.NewFixedRunID(scenario.RunID).Generate()),
		logger: logger.With(zap.String("scenario", scenario.Name)),
	}
	h.lib = library.New(
		library.WithClock(h.clock),
		library.WithNotifier(library.NotifierFunc(h.record)),
	)

	for i, step := range scenario.Steps {
		if err := h.execute(i, step); err != nil {
			return nil, fmt.Errorf("failed to execute steps: %w", err)
		}
	}

	for _, msg := range EvaluateAssertions(h.result, scenario.Assertions, &AssertionContext{
		Library: h.lib,
		Books:   h.books,
	}) {
		h.result.AddError("%s", msg)
	}

	h.logger.Debug("scenario finished",
		zap.Bool("pass", h.result.Pass),
		zap.Int64("last_seq", h.clock.Current()),
		zap.Int("errors", len(h.result.Errors)))
	return h.result, nil
}

// record appends a library event to the trace.
func (h *Harness) record(ev library.Event) {
	h.logger.Debug(ev.Message(), zap.Int64("seq", ev.Seq), zap.String("kind", string(ev.Kind)))
	h.result.addEvent(ev.Seq, string(ev.Kind), ev.Message())
}

// execute runs a single step, traces it and checks its expectation.
func (h *Harness) execute(index int, st Step) error {
	h.result.addInvoke(h.clock.Next(), st.Op, stepArgs(st))

	out, err := h.apply(st)
	var le *library.Error
	if err != nil && !errors.As(err, &le) {
		return fmt.Errorf("steps[%d] (%s): %w", index, st.Op, err)
	}

	outcome := OutcomeOK
	if le != nil {
		outcome = string(le.Code)
		out = nil
	}
	h.result.addComplete(h.clock.Next(), outcome, out)

	h.checkExpect(index, st, le, out)
	return nil
}

// apply performs the step. Non-library errors mean the scenario is broken.
func (h *Harness) apply(st Step) (map[string]any, error) {
	switch st.Op {
	case OpCreateShelf:
		_, err := h.lib.CreateBookshelf(st.Shelf)
		return nil, err

	case OpNewBook:
		if _, exists := h.books[st.Title]; exists {
			return nil, fmt.Errorf("book %q already created", st.Title)
		}
		h.books[st.Title] = library.NewBook(st.Title, st.Author, st.Year, st.Rating)
		return nil, nil

	case OpAddBook:
		shelf, err := h.shelf(st.Shelf)
		if err != nil {
			return nil, err
		}
		book, err := h.book(st.Title)
		if err != nil {
			return nil, err
		}
		return nil, shelf.AddBook(book)

	case OpRemoveBook:
		shelf, err := h.shelf(st.Shelf)
		if err != nil {
			return nil, err
		}
		_, err = shelf.RemoveBook(st.Title)
		return nil, err

	case OpBorrow:
		book, err := h.book(st.Title)
		if err != nil {
			return nil, err
		}
		return nil, book.Borrow(st.User)

	case OpReturn:
		book, err := h.book(st.Title)
		if err != nil {
			return nil, err
		}
		return nil, book.Return()

	case OpRate:
		book, err := h.book(st.Title)
		if err != nil {
			return nil, err
		}
		return nil, book.Rate(st.Rating)

	case OpSort:
		shelf, err := h.shelf(st.Shelf)
		if err != nil {
			return nil, err
		}
		if err := shelf.SortBooks(library.SortCriterion(st.By)); err != nil {
			return nil, err
		}
		return map[string]any{"order": shelf.Titles()}, nil

	case OpSearch:
		book, err := h.lib.SearchBook(st.Title)
		if err != nil {
			return nil, err
		}
		out := map[string]any{"author": book.Author(), "borrowed": book.Borrowed()}
		if book.Borrowed() {
			out["borrowed_by"] = book.BorrowedBy()
		}
		return out, nil

	case OpPrimes:
		primes := sieve.FindPrimes(st.Limit)
		return map[string]any{"count": len(primes), "primes": primes}, nil

	default:
		return nil, fmt.Errorf("unknown op %q", st.Op)
	}
}

func (h *Harness) checkExpect(index int, st Step, le *library.Error, out map[string]any) {
	expect := st.Expect
	if expect == nil {
		expect = &Expect{}
	}

	if le != nil {
		if expect.Error == "" {
			h.result.AddError("steps[%d] (%s): unexpected error: %v", index, st.Op, le)
		} else if string(le.Code) != expect.Error {
			h.result.AddError("steps[%d] (%s): expected error %s, got %s", index, st.Op, expect.Error, le.Code)
		}
		return
	}
	if expect.Error != "" {
		h.result.AddError("steps[%d] (%s): expected error %s, got ok", index, st.Op, expect.Error)
		return
	}

	if expect.Order != nil {
		got, _ := out["order"].([]string)
		if !slices.Equal(expect.Order, got) {
			h.result.AddError("steps[%d] (%s): expected order %q, got %q", index, st.Op, expect.Order, got)
		}
	}
	if expect.Primes != nil {
		got, _ := out["primes"].([]int)
		if !slices.Equal(expect.Primes, got) {
			h.result.AddError("steps[%d] (%s): expected primes %v, got %v", index, st.Op, expect.Primes, got)
		}
	}
	if expect.Author != "" {
		if got, _ := out["author"].(string); got != expect.Author {
			h.result.AddError("steps[%d] (%s): expected author %q, got %q", index, st.Op, expect.Author, got)
		}
	}
}

func (h *Harness) shelf(name string) (*library.Bookshelf, error) {
	shelf, ok := h.lib.Bookshelf(name)
	if !ok {
		return nil, fmt.Errorf("shelf %q was not created", name)
	}
	return shelf, nil
}

func (h *Harness) book(title string) (*library.Book, error) {
	book, ok := h.books[title]
	if !ok {
		return nil, fmt.Errorf("book %q was not created with new_book", title)
	}
	return book, nil
}

// stepArgs returns the fields of st that its op reads, for the trace.
func stepArgs(st Step) map[string]any {
	switch st.Op {
	case OpCreateShelf:
		return map[string]any{"shelf": st.Shelf}
	case OpNewBook:
		return map[string]any{"title": st.Title, "author": st.Author, "year": st.Year, "rating": st.Rating}
	case OpAddBook, OpRemoveBook:
		return map[string]any{"shelf": st.Shelf, "title": st.Title}
	case OpBorrow:
		return map[string]any{"title": st.Title, "user": st.User}
	case OpReturn, OpSearch:
		return map[string]any{"title": st.Title}
	case OpRate:
		return map[string]any{"title": st.Title, "rating": st.Rating}
	case OpSort:
		return map[string]any{"shelf": st.Shelf, "by": st.By}
	case OpPrimes:
		return map[string]any{"limit": st.Limit}
	default:
		return nil
	}
}
