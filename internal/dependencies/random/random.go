package random

import (
	"math/rand"
)

// Random is the randomness source used for choice draws and match IDs.
// It is injected so tests can substitute a deterministic sequence.
type Random interface {
	// Intn returns a uniformly distributed int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// Source implements Random with math/rand's auto-seeded global generator,
// which is safe for concurrent use.
type Source struct{}

// New creates a new Source
func New() *Source {
	return &Source{}
}

// Intn returns a uniformly distributed int in [0, n), or 0 if n <= 0
func (r *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}

// String generates a random string of the given length from the given alphabet
func (r *Source) String(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}
