package harness

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Trace event types.
const (
	TypeInvoke   = "invoke"
	TypeEvent    = "event"
	TypeComplete = "complete"
)

// OutcomeOK is the completion outcome of a step that returned no error.
const OutcomeOK = "ok"

// TraceEvent is one line of a scenario trace: a step invocation, a
// library notification raised by that step, or the step's completion.
type TraceEvent struct {
	Seq     int64          `json:"seq"`
	Type    string         `json:"type"`
	Op      string         `json:"op,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
	Outcome string         `json:"outcome,omitempty"`
	Result  map[string]any `json:"result,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// RunID identifies the run in the trace header.
	RunID string `json:"run_id"`

	// Trace holds invocations, events and completions in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists failed expectations and assertions.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with an empty trace.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

func (r *Result) addInvoke(seq int64, op string, args map[string]any) {
	r.Trace = append(r.Trace, TraceEvent{Seq: seq, Type: TypeInvoke, Op: op, Args: args})
}

func (r *Result) addEvent(seq int64, kind, message string) {
	r.Trace = append(r.Trace, TraceEvent{Seq: seq, Type: TypeEvent, Kind: kind, Message: message})
}

func (r *Result) addComplete(seq int64, outcome string, result map[string]any) {
	r.Trace = append(r.Trace, TraceEvent{Seq: seq, Type: TypeComplete, Outcome: outcome, Result: result})
}

// CountEvents returns how many library events of kind the trace holds.
func (r *Result) CountEvents(kind string) int {
	n := 0
	for _, ev := range r.Trace {
		if ev.Type == TypeEvent && ev.Kind == kind {
			n++
		}
	}
	return n
}

// FormatTrace renders a result as the line-oriented text stored in golden
// files. Map keys are sorted so the output is deterministic:
//
//	scenario: borrow_twice
//	run: test-run-default
//	1 invoke create_shelf shelf="Fantasy"
//	2 event shelf_created "bookshelf Fantasy has been created"
//	3 complete ok
func FormatTrace(scenarioName string, result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", scenarioName)
	fmt.Fprintf(&buf, "run: %s\n", result.RunID)

	for _, ev := range result.Trace {
		switch ev.Type {
		case TypeInvoke:
			fmt.Fprintf(&buf, "%d invoke %s%s\n", ev.Seq, ev.Op, formatFields(ev.Args))
		case TypeEvent:
			fmt.Fprintf(&buf, "%d event %s %s\n", ev.Seq, ev.Kind, strconv.Quote(ev.Message))
		case TypeComplete:
			fmt.Fprintf(&buf, "%d complete %s%s\n", ev.Seq, ev.Outcome, formatFields(ev.Result))
		}
	}
	return buf.Bytes()
}

// formatFields renders m as " k1=v1 k2=v2" with keys sorted.
func formatFields(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatValue(m[k]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []int:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = strconv.Itoa(n)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}
