package forecaster

import (
	"math/rand"
	"sync"
	"time"
)

// Clock supplies the current wall-clock time. Injected so the engine
// stays pure and month labels are reproducible under test.
type Clock interface {
	Now() time.Time
}

// NoiseSource supplies uniform values in [0, 1).
type NoiseSource interface {
	Float64() float64
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// FixedNoise always returns the same value. A value of 0.5 makes the
// engine's noise contribution exactly zero.
type FixedNoise struct {
	V float64
}

func (s FixedNoise) Float64() float64 { return s.V }

// randNoise wraps math/rand behind a mutex so the engine can be called
// concurrently.
type randNoise struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandNoise creates a seeded noise source. A zero seed falls back to
// the current time.
func NewRandNoise(seed int64) NoiseSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randNoise{r: rand.New(rand.NewSource(seed))}
}

func (s *randNoise) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
