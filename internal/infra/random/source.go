package random

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-mindfulness-reminder/internal/domain"
)

// streamSalt separates the second PCG word from the seed.
const streamSalt = 0x9e3779b97f4a7c15

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a goroutine-safe uniform source. A zero seed derives
// one from the wall clock; any other seed yields a reproducible sequence.
func NewSource(seed uint64) domain.RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedSource{
		rng: rand.New(rand.NewPCG(seed, seed^streamSalt)),
	}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
