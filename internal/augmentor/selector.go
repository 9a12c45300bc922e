package augmentor

import (
	"math/rand"

	"augmentor/internal/augerr"
)

// AugmentCount is the number of units a rate selects out of n. A single unit
// is never selected by rate alone.
func AugmentCount(n int, rate float64) int {
	if n <= 1 {
		return 0
	}
	return int(rate * float64(n))
}

// IndexSelector picks the distinct positions that receive an augmentation.
// It advances the generator it is given and never reseeds it.
type IndexSelector struct {
	rng    *rand.Rand
	minAug int
	maxAug int
}

func NewIndexSelector(rng *rand.Rand, minAug, maxAug int) *IndexSelector {
	return &IndexSelector{rng: rng, minAug: minAug, maxAug: maxAug}
}

// Select returns AugmentCount(n, rate) distinct indices of [0, n), clamped to
// [minAug, maxAug] when clip is set, in the order they were drawn.
func (s *IndexSelector) Select(n int, rate float64, clip bool) ([]int, error) {
	count := AugmentCount(n, rate)
	if clip {
		count = min(max(count, s.minAug), s.maxAug)
	}
	if count < 0 || count > n {
		return nil, &augerr.InvalidSampleSizeError{Count: count, Population: n}
	}

	// partial Fisher-Yates: the first count slots end up holding the sample
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < count; i++ {
		j := i + s.rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count], nil
}
