package library

// MaxBookshelves is the capacity of a Library.
const MaxBookshelves = 5

// Library owns up to MaxBookshelves shelves in creation order.
type Library struct {
	shelves []*Bookshelf
	events  *emitter
}

// Option configures a Library.
type Option func(*Library)

// WithNotifier reports every successful mutation to n.
func WithNotifier(n Notifier) Option {
	return func(l *Library) {
		l.events.notifier = n
	}
}

// WithClock stamps events with sequence numbers from seq instead of a
// private Clock.
func WithClock(seq Sequencer) Option {
	return func(l *Library) {
		l.events.clock = seq
	}
}

// New creates an empty library.
func New(opts ...Option) *Library {
	l := &Library{
		shelves: make([]*Bookshelf, 0, MaxBookshelves),
		events:  &emitter{clock: NewClock()},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateBookshelf appends a new empty shelf and returns it.
func (l *Library) CreateBookshelf(name string) (*Bookshelf, error) {
	if len(l.shelves) >= MaxBookshelves {
		return nil, newTooManyShelvesError()
	}
	shelf := newBookshelf(name, l.events)
	l.shelves = append(l.shelves, shelf)
	l.events.emit(Event{Kind: EventShelfCreated, Shelf: name})
	return shelf, nil
}

// SearchBook returns the first book titled title, scanning shelves in
// creation order and each shelf in its current order.
func (l *Library) SearchBook(title string) (*Book, error) {
	for _, shelf := range l.shelves {
		if b, ok := shelf.Find(title); ok {
			return b, nil
		}
	}
	return nil, newBookNotFoundError(title, "")
}

// Bookshelf returns the first shelf called name.
func (l *Library) Bookshelf(name string) (*Bookshelf, bool) {
	for _, shelf := range l.shelves {
		if shelf.name == name {
			return shelf, true
		}
	}
	return nil, false
}

// Bookshelves returns the shelves in creation order.
func (l *Library) Bookshelves() []*Bookshelf {
	out := make([]*Bookshelf, len(l.shelves))
	copy(out, l.shelves)
	return out
}
