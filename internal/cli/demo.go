package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/shelves/internal/library"
)

// DemoResult is the JSON payload of the demo command.
type DemoResult struct {
	Found   library.BookView    `json:"found"`
	Shelves map[string][]string `json:"shelves"`
	Events  int64               `json:"events"`
}

// walkFunc drives a library and returns the book to report.
type walkFunc func(lib *library.Library) (*library.Book, error)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the reference library walkthrough",
		Long: `Run the reference library walkthrough.

Creates the Fantasy, Mystery and Science Fiction shelves, shelves three
books, lends two of them, returns one, rates one, sorts Mystery by rating
and searches for Harry Potter. Each step is logged; the found book is
printed.

Example:
  shelves demo
  shelves demo --format json -v`,
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd, walkthrough)
		},
	}
}

func runDemo(opts *RootOptions, cmd *cobra.Command, walk walkFunc) error {
	runID := uuid.Must(uuid.NewV7()).String()
	logger := opts.logger().With(zap.String("run_id", runID))

	f := opts.formatter(cmd)
	f.RunID = runID

	clock := library.NewClock()
	lib := library.New(
		library.WithClock(clock),
		library.WithNotifier(library.NewZapNotifier(logger)),
	)
	found, err := walk(lib)
	if err != nil {
		code := string(library.CodeOf(err))
		if code == "" {
			code = "E_DEMO_FAILED"
		}
		logger.Error("demo failed", zap.Error(err))
		return outputError(f, ExitFailure, code, "demo failed", err)
	}

	shelves := make(map[string][]string)
	for _, shelf := range lib.Bookshelves() {
		shelves[shelf.Name()] = shelf.Titles()
	}

	f.VerboseLog("run %s: %d events", runID, clock.Current())
	return f.Success(DemoResult{
		Found:   found.View(),
		Shelves: shelves,
		Events:  clock.Current(),
	}, describeBook(found.View()))
}

// walkthrough performs the reference sequence of operations on lib and
// returns the book found by the final search.
func walkthrough(lib *library.Library) (*library.Book, error) {
	fantasy, err := lib.CreateBookshelf("Fantasy")
	if err != nil {
		return nil, err
	}
	mystery, err := lib.CreateBookshelf("Mystery")
	if err != nil {
		return nil, err
	}
	if _, err := lib.CreateBookshelf("Science Fiction"); err != nil {
		return nil, err
	}

	hobbit := library.NewBook("The Hobbit", "J.R.R. Tolkien", 1937, 4.5)
	potter := library.NewBook("Harry Potter and the Philosopher's Stone", "J.K. Rowling", 1997, 4.8)
	davinci := library.NewBook("The Da Vinci Code", "Dan Brown", 2003, 3.9)

	steps := []func() error{
		func() error { return fantasy.AddBook(hobbit) },
		func() error { return mystery.AddBook(potter) },
		func() error { return mystery.AddBook(davinci) },
		func() error { return hobbit.Borrow("John") },
		func() error { return potter.Borrow("Emily") },
		potter.Return,
		func() error { return hobbit.Rate(5) },
		func() error { return mystery.SortBooks(library.SortByRating) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return lib.SearchBook("Harry Potter and the Philosopher's Stone")
}

// describeBook renders a one-line summary of a book.
func describeBook(b library.BookView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s by %s (%d), rated %v", b.Title, b.Author, b.PublicationYear, b.Rating)
	if b.Borrowed {
		fmt.Fprintf(&sb, ", borrowed by %s", b.BorrowedBy)
	} else {
		sb.WriteString(", available")
	}
	return sb.String()
}
