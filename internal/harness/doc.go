// Package harness runs scripted scenarios against the library model and
// the prime sieve.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: borrow_twice
//	description: "A borrowed book cannot be borrowed again"
//	steps:
//	  - op: create_shelf
//	    shelf: Fantasy
//	  - op: new_book
//	    title: The Hobbit
//	    author: J.R.R. Tolkien
//	    year: 1937
//	    rating: 4.5
//	  - op: add_book
//	    shelf: Fantasy
//	    title: The Hobbit
//	  - op: borrow
//	    title: The Hobbit
//	    user: John
//	  - op: borrow
//	    title: The Hobbit
//	    user: Emily
//	    expect:
//	      error: ALREADY_BORROWED
//	assertions:
//	  - type: borrowed
//	    title: The Hobbit
//	    by: John
//
// Ops: create_shelf, new_book, add_book, remove_book, borrow, return, rate,
// sort, search, primes. Books are created with new_book and then referred
// to by title; they need not be on a shelf to be borrowed or rated.
//
// A step without an expect clause must succeed. expect.error names the
// library.ErrorCode the step must fail with; expect.order, expect.primes
// and expect.author check sort, primes and search results.
//
// # Assertion Types
//
//   - shelf_order: the shelf holds exactly titles, in order
//   - shelf_count: the shelf holds count books
//   - borrowed: the book is borrowed by "by", or not borrowed if by is empty
//   - rating: the book's rating equals rating
//   - event_count: the trace holds count library events of kind
//
// # Deterministic Traces
//
// Every run uses a fresh library, a testutil.DeterministicClock and a fixed
// run ID, so FormatTrace output is byte-identical across runs and can be
// compared with golden files.
package harness
