package providers

import (
	"luckypick/internal/generator"
	"luckypick/internal/structures"
	"math/rand/v2"
	"sync"
)

// lockedRand makes a *rand.Rand safe for the concurrent HTTP handlers.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}

// NewRandomProvider seeds from generator.seed when set, otherwise from runtime entropy.
func NewRandomProvider(conf *structures.Config) generator.Source {
	seed := conf.Generator.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedRand{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
