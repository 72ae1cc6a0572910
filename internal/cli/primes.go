package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/shelves/internal/sieve"
)

// DefaultPrimeLimit is used when primes is called without a limit.
const DefaultPrimeLimit = 1000

// PrimesResult is the JSON payload of the primes command.
type PrimesResult struct {
	Limit  int   `json:"limit"`
	Count  int   `json:"count"`
	Primes []int `json:"primes,omitempty"`
}

// PrimesOptions holds flags for the primes command.
type PrimesOptions struct {
	*RootOptions
	CountOnly bool // report only how many primes there are
}

// NewPrimesCommand creates the primes command.
func NewPrimesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrimesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "primes [limit]",
		Short: "List primes up to limit",
		Long: `List every prime up to and including limit (default 1000) using the
Sieve of Eratosthenes. A limit below 2 prints nothing.

Examples:
  shelves primes
  shelves primes 50 --format json
  shelves primes 10000 --count`,
		Args:          commandArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := DefaultPrimeLimit
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return outputError(opts.formatter(cmd), ExitCommandError,
						"E_INVALID_LIMIT", fmt.Sprintf("invalid limit %q", args[0]), err)
				}
				limit = n
			}
			return runPrimes(opts, limit, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.CountOnly, "count", false, "print only the number of primes")

	return cmd
}

func runPrimes(opts *PrimesOptions, limit int, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if opts.CountOnly {
		count := sieve.Count(limit)
		opts.logger().Debug("sieve finished", zap.Int("limit", limit), zap.Int("count", count))
		return f.Success(PrimesResult{Limit: limit, Count: count}, strconv.Itoa(count))
	}

	primes := sieve.FindPrimes(limit)
	opts.logger().Debug("sieve finished", zap.Int("limit", limit), zap.Int("count", len(primes)))
	f.VerboseLog("%d primes up to %d", len(primes), limit)

	words := make([]string, len(primes))
	for i, p := range primes {
		words[i] = strconv.Itoa(p)
	}
	return f.Success(PrimesResult{
		Limit:  limit,
		Count:  len(primes),
		Primes: primes,
	}, strings.Join(words, " "))
}
