package augmentor

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augmentor/internal/augerr"
)

func TestAugmentCount(t *testing.T) {
	tests := []struct {
		n    int
		rate float64
		want int
	}{
		{0, 0.5, 0},
		{1, 1.0, 0},
		{2, 0.3, 0},
		{10, 0.3, 3},
		{11, 0.3, 3},
		{10, 1.0, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AugmentCount(tt.n, tt.rate), "n=%d rate=%v", tt.n, tt.rate)
	}
}

func TestSelectDistinctInRange(t *testing.T) {
	s := NewIndexSelector(rand.New(rand.NewSource(3)), 1, 5)
	for n := 2; n < 40; n++ {
		idxs, err := s.Select(n, 0.5, false)
		require.NoError(t, err)
		assert.Len(t, idxs, AugmentCount(n, 0.5))
		seen := make(map[int]bool)
		for _, i := range idxs {
			assert.True(t, i >= 0 && i < n)
			assert.False(t, seen[i], "index %d drawn twice", i)
			seen[i] = true
		}
	}
}

func TestSelectClamps(t *testing.T) {
	s := NewIndexSelector(rand.New(rand.NewSource(3)), 2, 4)

	idxs, err := s.Select(100, 0.5, true)
	require.NoError(t, err)
	assert.Len(t, idxs, 4)

	idxs, err = s.Select(3, 0.1, true)
	require.NoError(t, err)
	assert.Len(t, idxs, 2)

	idxs, err = s.Select(100, 0.5, false)
	require.NoError(t, err)
	assert.Len(t, idxs, 50)
}

func TestSelectRejectsOversizedSample(t *testing.T) {
	s := NewIndexSelector(rand.New(rand.NewSource(3)), 3, 5)
	_, err := s.Select(2, 0.3, true)
	var se *augerr.InvalidSampleSizeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Count)
	assert.Equal(t, 2, se.Population)

	_, err = s.Select(0, 0.3, true)
	require.Error(t, err)
}

func TestSelectAdvancesGenerator(t *testing.T) {
	s := NewIndexSelector(rand.New(rand.NewSource(1)), 1, 5)
	first, err := s.Select(10, 0.5, false)
	require.NoError(t, err)
	second, err := s.Select(10, 0.5, false)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 7, 9, 3, 5}, first)
	assert.Equal(t, []int{8, 0, 6, 7, 4}, second)

	again := NewIndexSelector(rand.New(rand.NewSource(1)), 1, 5)
	replay, err := again.Select(10, 0.5, false)
	require.NoError(t, err)
	assert.Equal(t, first, replay)
}
