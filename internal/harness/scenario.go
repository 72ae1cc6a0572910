package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/shelves/internal/library"
)

// Scenario is a scripted run against a fresh library.
// Steps execute in order; assertions are checked against the final state
// and the recorded trace.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID pins the run identifier written into the trace header.
	// Defaults to testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// Steps are the operations to execute.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final library state and trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one operation. Which fields are read depends on Op.
type Step struct {
	Op     string  `yaml:"op"`
	Shelf  string  `yaml:"shelf,omitempty"`
	Title  string  `yaml:"title,omitempty"`
	Author string  `yaml:"author,omitempty"`
	Year   int     `yaml:"year,omitempty"`
	Rating float64 `yaml:"rating,omitempty"`
	User   string  `yaml:"user,omitempty"`
	By     string  `yaml:"by,omitempty"`
	Limit  int     `yaml:"limit,omitempty"`

	// Expect validates the step outcome. Without it the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the outcome a step should produce.
type Expect struct {
	// Error is the expected library.ErrorCode, e.g. "SHELF_FULL".
	Error string `yaml:"error,omitempty"`

	// Order is the expected shelf order after a sort step.
	Order []string `yaml:"order,omitempty"`

	// Primes is the expected output of a primes step.
	Primes []int `yaml:"primes,omitempty"`

	// Author is the expected author of the book found by a search step.
	Author string `yaml:"author,omitempty"`
}

// Step operations.
const (
	OpCreateShelf = "create_shelf"
	OpNewBook     = "new_book"
	OpAddBook     = "add_book"
	OpRemoveBook  = "remove_book"
	OpBorrow      = "borrow"
	OpReturn      = "return"
	OpRate        = "rate"
	OpSort        = "sort"
	OpSearch      = "search"
	OpPrimes      = "primes"
)

// Assertion validates state after all steps have run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	Shelf  string   `yaml:"shelf,omitempty"`
	Title  string   `yaml:"title,omitempty"`
	Titles []string `yaml:"titles,omitempty"`

	// By is the expected borrower for "borrowed"; empty means on the shelf.
	By string `yaml:"by,omitempty"`

	Rating float64 `yaml:"rating,omitempty"`
	Kind   string  `yaml:"kind,omitempty"`
	Count  int     `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertShelfOrder = "shelf_order"
	AssertShelfCount = "shelf_count"
	AssertBorrowed   = "borrowed"
	AssertRating     = "rating"
	AssertEventCount = "event_count"
)

// LoadScenario reads and validates a scenario YAML file.
// Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, st *Step) error {
	need := func(field, value string) error {
		if value == "" {
			return fmt.Errorf("steps[%d]: %s is required for %s", index, field, st.Op)
		}
		return nil
	}

	var err error
	switch st.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpCreateShelf:
		err = need("shelf", st.Shelf)
	case OpNewBook:
		if err = need("title", st.Title); err == nil {
			err = need("author", st.Author)
		}
	case OpAddBook, OpRemoveBook:
		if err = need("shelf", st.Shelf); err == nil {
			err = need("title", st.Title)
		}
	case OpBorrow:
		if err = need("title", st.Title); err == nil {
			err = need("user", st.User)
		}
	case OpReturn, OpRate, OpSearch:
		err = need("title", st.Title)
	case OpSort:
		// An empty or unknown "by" is allowed so scenarios can exercise
		// INVALID_CRITERION.
		err = need("shelf", st.Shelf)
	case OpPrimes:
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}
	if err != nil {
		return err
	}

	if st.Expect != nil && st.Expect.Error != "" && !isKnownCode(st.Expect.Error) {
		return fmt.Errorf("steps[%d].expect: unknown error code %q", index, st.Expect.Error)
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertShelfOrder:
		if a.Shelf == "" {
			return fmt.Errorf("assertions[%d]: shelf is required for shelf_order", index)
		}
	case AssertShelfCount:
		if a.Shelf == "" {
			return fmt.Errorf("assertions[%d]: shelf is required for shelf_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for shelf_count", index)
		}
	case AssertBorrowed:
		if a.Title == "" {
			return fmt.Errorf("assertions[%d]: title is required for borrowed", index)
		}
	case AssertRating:
		if a.Title == "" {
			return fmt.Errorf("assertions[%d]: title is required for rating", index)
		}
	case AssertEventCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for event_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

var knownCodes = []library.ErrorCode{
	library.CodeAlreadyBorrowed,
	library.CodeNotBorrowed,
	library.CodeInvalidRating,
	library.CodeShelfFull,
	library.CodeBookNotFound,
	library.CodeInvalidCriterion,
	library.CodeTooManyShelves,
}

func isKnownCode(code string) bool {
	for _, c := range knownCodes {
		if string(c) == code {
			return true
		}
	}
	return false
}
