// Package rng provides the randomness abstraction used by the spawner and
// loot rolls.
package rng

import (
	cryptorand "crypto/rand"
	"math/big"
	"math/rand"
	"sync"
)

// Source is the randomness provider for spawns and loot.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Uniform draws a value in [lo, hi) from src.
//
// Precondition: lo <= hi.
// Postcondition: lo <= result < hi, or result == lo when lo == hi.
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Pick returns a random element of items.
//
// Precondition: len(items) > 0.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// seededSource is a deterministic Source for reproducible runs.
type seededSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded returns a deterministic Source; equal seeds yield equal streams.
func NewSeeded(seed int64) Source {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// float53 is 2^53, the resolution of a float64 mantissa.
const float53 = 1 << 53

// cryptoSource implements Source using crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns a non-reproducible Source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Float64() float64 {
	return float64(cryptoSource{}.Intn(float53)) / float53
}

// Intn panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Scripted replays a fixed list of Float64 values, cycling when exhausted.
// Intn derives from the same stream. Intended for tests and demos.
type Scripted struct {
	Values []float64
	next   int
}

// Float64 returns the next scripted value.
//
// Precondition: len(Values) > 0 and every value is in [0, 1).
func (s *Scripted) Float64() float64 {
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Intn scales the next scripted value into [0, n).
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(s.Float64() * float64(n))
}
