// Package sieve finds primes with the Sieve of Eratosthenes.
package sieve

// FindPrimes returns every prime p with 2 <= p <= limit in ascending order.
// A limit below 2 yields an empty, non-nil slice.
func FindPrimes(limit int) []int {
	primes := []int{}
	if limit < 2 {
		return primes
	}

	composite := make([]bool, limit+1)
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		// Smaller multiples were crossed off by smaller factors.
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}

	for i := 2; i <= limit; i++ {
		if !composite[i] {
			primes = append(primes, i)
		}
	}
	return primes
}

// Count returns len(FindPrimes(limit)).
func Count(limit int) int {
	return len(FindPrimes(limit))
}
