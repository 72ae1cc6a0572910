package library

import (
	"strconv"

	"go.uber.org/zap"
)

// EventKind names a library state change.
type EventKind string

const (
	EventShelfCreated EventKind = "shelf_created"
	EventBookAdded    EventKind = "book_added"
	EventBookRemoved  EventKind = "book_removed"
	EventBookBorrowed EventKind = "book_borrowed"
	EventBookReturned EventKind = "book_returned"
	EventBookRated    EventKind = "book_rated"
	EventShelfSorted  EventKind = "shelf_sorted"
)

// Event describes a successful mutation. Only the fields relevant to Kind
// are set.
type Event struct {
	Seq       int64         `json:"seq"`
	Kind      EventKind     `json:"kind"`
	Shelf     string        `json:"shelf,omitempty"`
	Title     string        `json:"title,omitempty"`
	User      string        `json:"user,omitempty"`
	Rating    float64       `json:"rating,omitempty"`
	Criterion SortCriterion `json:"criterion,omitempty"`
}

// Notifier receives events after the mutation has been applied.
// Notifiers must not call back into the library.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(ev).
func (f NotifierFunc) Notify(ev Event) { f(ev) }

// ZapNotifier logs every event at info level.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier returns a notifier writing to logger.
// A nil logger is replaced with zap.NewNop().
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *ZapNotifier) Notify(ev Event) {
	fields := []zap.Field{
		zap.Int64("seq", ev.Seq),
		zap.String("kind", string(ev.Kind)),
	}
	if ev.Shelf != "" {
		fields = append(fields, zap.String("shelf", ev.Shelf))
	}
	if ev.Title != "" {
		fields = append(fields, zap.String("title", ev.Title))
	}
	if ev.User != "" {
		fields = append(fields, zap.String("user", ev.User))
	}
	if ev.Kind == EventBookRated {
		fields = append(fields, zap.Float64("rating", ev.Rating))
	}
	if ev.Criterion != "" {
		fields = append(fields, zap.String("criterion", string(ev.Criterion)))
	}
	n.logger.Info(ev.Message(), fields...)
}

// Message renders the event as a sentence.
func (ev Event) Message() string {
	switch ev.Kind {
	case EventShelfCreated:
		return "bookshelf " + ev.Shelf + " has been created"
	case EventBookAdded:
		return ev.Title + " has been added to " + ev.Shelf
	case EventBookRemoved:
		return ev.Title + " has been removed from " + ev.Shelf
	case EventBookBorrowed:
		return ev.Title + " has been borrowed by " + ev.User
	case EventBookReturned:
		return ev.Title + " has been returned"
	case EventBookRated:
		return ev.Title + " has been rated as " + strconv.FormatFloat(ev.Rating, 'g', -1, 64)
	case EventShelfSorted:
		return "books in " + ev.Shelf + " have been sorted by " + string(ev.Criterion)
	default:
		return string(ev.Kind)
	}
}

// emitter stamps events with a sequence number and forwards them.
// A nil emitter drops events.
type emitter struct {
	notifier Notifier
	clock    Sequencer
}

func (e *emitter) emit(ev Event) {
	if e == nil || e.notifier == nil {
		return
	}
	if e.clock != nil {
		ev.Seq = e.clock.Next()
	}
	e.notifier.Notify(ev)
}
