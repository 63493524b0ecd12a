package types

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Rand is the single source of randomness used by the engines:
// action sampling, start state sampling and value initialisation
// all draw from it. Seeding it makes a run reproducible.
type Rand struct {
	src rand.Source
	rnd *rand.Rand
}

// NewRand returns a generator seeded with seed
func NewRand(seed uint64) *Rand {
	src := rand.NewSource(seed)
	return &Rand{
		src: src,
		rnd: rand.New(src),
	}
}

// the process-wide generator draws from a locked source so that
// concurrent runs without their own generator can share it
var (
	globalSource = newLockedSource(uint64(time.Now().UnixNano()))
	globalRand   = &Rand{src: globalSource, rnd: rand.New(globalSource)}
)

func newLockedSource(seed uint64) *rand.LockedSource {
	src := &rand.LockedSource{}
	src.Seed(seed)
	return src
}

// GlobalRand returns the process-wide generator used when a config
// does not carry its own. It is safe for concurrent use.
func GlobalRand() *Rand {
	return globalRand
}

// Seed reseeds the process-wide generator in place, so environments and
// configs already holding it observe the new sequence
func Seed(seed uint64) {
	globalSource.Seed(seed)
}

// Derive returns an independent generator seeded from the process-wide one.
// Generators from NewRand are not safe for concurrent use.
func Derive() *Rand {
	return NewRand(globalRand.rnd.Uint64())
}

// OrGlobal returns r, or the process-wide generator when r is nil
func (r *Rand) OrGlobal() *Rand {
	if r == nil {
		return GlobalRand()
	}
	return r
}

// Intn returns a uniform draw from [0, n)
func (r *Rand) Intn(n int) int {
	return r.rnd.Intn(n)
}

// Float64 returns a uniform draw from [0, 1)
func (r *Rand) Float64() float64 {
	return r.rnd.Float64()
}

// Categorical draws an index with probability proportional to weights.
// Weights must be non-negative with a positive sum.
func (r *Rand) Categorical(weights []float64) int {
	i, ok := sampleuv.NewWeighted(weights, r.src).Take()
	if !ok {
		panic("types: categorical draw from a distribution without mass")
	}
	return i
}
