package env

import (
	"fmt"
	"math/rand"
	"time"
)

// ActionSpace describes the set of valid actions and how to sample one.
type ActionSpace interface {
	// N returns the number of distinct actions.
	N() int
	// Sample draws one action uniformly at random.
	Sample() int
	// Seed reseeds the space's random source for reproducible sampling.
	Seed(seed int64)
	// Contains reports whether the action is valid in this space.
	Contains(action int) bool
}

// DiscreteSpace is an action space of n actions numbered 0..n-1. It owns its
// random source; sampling never touches the process-wide math/rand state, so
// two seeded spaces cannot interfere with each other or with tests.
type DiscreteSpace struct {
	n   int
	rng *rand.Rand
}

// NewDiscreteSpace creates a discrete space with n actions. The space starts
// with a time-based seed; call Seed for reproducible sampling.
func NewDiscreteSpace(n int) *DiscreteSpace {
	if n <= 0 {
		panic(fmt.Sprintf("env: discrete space size must be positive, got %d", n))
	}
	return &DiscreteSpace{
		n:   n,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// N returns the number of actions.
func (s *DiscreteSpace) N() int { return s.n }

// Sample draws one action uniformly at random.
func (s *DiscreteSpace) Sample() int {
	return s.rng.Intn(s.n)
}

// Seed replaces the space's random source with a deterministic one.
func (s *DiscreteSpace) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Contains reports whether the action falls inside the space.
func (s *DiscreteSpace) Contains(action int) bool {
	return action >= 0 && action < s.n
}

func (s *DiscreteSpace) String() string {
	return fmt.Sprintf("Discrete(%d)", s.n)
}
