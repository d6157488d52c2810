package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	getHisto := func(K, Np int) (histo map[int]int) {
		pm := NewPartitionMap(Np, K)
		histo = make(map[int]int)
		for np := 0; np < pm.ParallelDegree; np++ {
			histo[pm.GetBucketDimension(np)]++
		}
		return
	}
	getTotal := func(histo map[int]int) (total int) {
		for key, count := range histo {
			total += key * count
		}
		return
	}
	assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
	assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
	assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
	for n := 64; n < 2000; n++ {
		var (
			keys   [2]float64
			keyNum int
		)
		histo := getHisto(n, 7)
		for key := range histo {
			keys[keyNum] = float64(key)
			keyNum++
		}
		if keyNum == 2 {
			assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of one cell
		}
		assert.Equal(t, n, getTotal(histo))
	}
	{ // Buckets are contiguous and cover every cell
		for NCells := 10; NCells < 300; NCells++ {
			pm := NewPartitionMap(5, NCells)
			next := 0
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				assert.Equal(t, next, kMin)
				next = kMax
			}
			assert.Equal(t, NCells, next)
		}
	}
	assert.Equal(t, 1, NewPartitionMap(0, 5).ParallelDegree)
}

func TestMathHelpers(t *testing.T) {
	dst := make([]float64, 3)
	ClipNonNegative(dst, []float64{-1, 0.5, -0})
	assert.Equal(t, []float64{0, 0.5, 0}, dst)
	assert.Panics(t, func() { ClipNonNegative(dst[:1], []float64{1, 2}) })

	assert.Equal(t, 8., POW(2, 3))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.InDelta(t, math.Pow(2.5, 1.7), POW(2.5, 1.7), 1e-14)
	assert.InDelta(t, math.Pow(3, 12), POW(3, 12), 1e-6)

	assert.True(t, IsFinite([]float64{1, 2}))
	assert.False(t, IsFinite([]float64{1, math.NaN()}))
	assert.False(t, IsFinite([][]float64{{1}, {math.Inf(1)}}))
	assert.False(t, IsFinite(math.Inf(-1)))
}
