package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-ml/orbit/internal/backend/cpu"
	"github.com/orbit-ml/orbit/internal/tensor"
)

func TestMakeCirclesDeterministic(t *testing.T) {
	a := MakeCircles(100, 0.05, 0.3, true, 42)
	b := MakeCircles(100, 0.05, 0.3, true, 42)

	require.Equal(t, a.NumSamples(), b.NumSamples())
	for i := range a.X {
		assert.Equal(t, a.X[i], b.X[i], "sample %d", i)
		assert.Equal(t, a.Y[i], b.Y[i], "label %d", i)
	}
}

func TestMakeCirclesSeedChangesData(t *testing.T) {
	a := MakeCircles(100, 0.05, 0.3, true, 1)
	b := MakeCircles(100, 0.05, 0.3, true, 2)

	same := true
	for i := range a.X {
		if a.X[i][0] != b.X[i][0] || a.X[i][1] != b.X[i][1] {
			same = false
			break
		}
	}
	assert.False(t, same, "different seeds must produce different data")
}

func TestMakeCirclesClassBalance(t *testing.T) {
	set := MakeCircles(750, 0.05, 0.3, true, 42)
	require.Equal(t, 750, set.NumSamples())
	require.Equal(t, 2, set.NumFeatures())

	ones := 0
	for _, y := range set.Y {
		require.True(t, y == 0 || y == 1, "labels must be binary")
		if y == 1 {
			ones++
		}
	}
	assert.Equal(t, 375, ones)
}

func TestMakeCirclesRadii(t *testing.T) {
	// Without noise every point sits exactly on its circle.
	set := MakeCircles(200, 0, 0.3, true, 7)

	for i, p := range set.X {
		r := math.Hypot(float64(p[0]), float64(p[1]))
		if set.Y[i] == 0 {
			assert.InDelta(t, 1.0, r, 1e-5, "outer sample %d", i)
		} else {
			assert.InDelta(t, 0.3, r, 1e-5, "inner sample %d", i)
		}
	}
}

func TestMakeCirclesNoShuffleKeepsClassOrder(t *testing.T) {
	set := MakeCircles(100, 0.05, 0.3, false, 42)

	for i, y := range set.Y {
		if i < 50 {
			assert.Equal(t, float32(0), y, "sample %d", i)
		} else {
			assert.Equal(t, float32(1), y, "sample %d", i)
		}
	}
}

func TestMakeCirclesValidation(t *testing.T) {
	assert.Panics(t, func() { MakeCircles(1, 0.05, 0.3, true, 0) })
	assert.Panics(t, func() { MakeCircles(100, 0.05, 0, true, 0) })
	assert.Panics(t, func() { MakeCircles(100, 0.05, 1.5, true, 0) })
}

func TestMakeMoonsDeterministic(t *testing.T) {
	a := MakeMoons(100, 0.1, true, 42)
	b := MakeMoons(100, 0.1, true, 42)

	require.Equal(t, a.NumSamples(), b.NumSamples())
	for i := range a.X {
		assert.Equal(t, a.X[i], b.X[i], "sample %d", i)
	}
}

func TestSplitSizes(t *testing.T) {
	set := MakeCircles(750, 0.05, 0.3, true, 42)
	train, val := set.Split(0.8)

	assert.Equal(t, 600, train.NumSamples())
	assert.Equal(t, 150, val.NumSamples())
}

func TestSplitIsContiguousPartition(t *testing.T) {
	set := MakeCircles(50, 0.05, 0.3, true, 3)
	train, val := set.Split(0.8)

	require.Equal(t, set.NumSamples(), train.NumSamples()+val.NumSamples())
	assert.Equal(t, set.X[0], train.X[0])
	assert.Equal(t, set.X[train.NumSamples()], val.X[0])
}

func TestSplitValidation(t *testing.T) {
	set := MakeCircles(10, 0, 0.5, true, 0)
	assert.Panics(t, func() { set.Split(-0.1) })
	assert.Panics(t, func() { set.Split(1.1) })
}

func TestBatches(t *testing.T) {
	set := MakeCircles(600, 0.05, 0.3, true, 42)
	batches := set.Batches(4)

	require.Len(t, batches, 150)
	for _, b := range batches {
		assert.Equal(t, 4, b.NumSamples())
	}
}

func TestBatchesRemainder(t *testing.T) {
	set := MakeCircles(10, 0, 0.5, true, 0)
	batches := set.Batches(4)

	require.Len(t, batches, 3)
	assert.Equal(t, 4, batches[0].NumSamples())
	assert.Equal(t, 4, batches[1].NumSamples())
	assert.Equal(t, 2, batches[2].NumSamples())
}

func TestTensors(t *testing.T) {
	backend := cpu.New()
	set := MakeCircles(8, 0.05, 0.3, true, 42)

	x, y, err := Tensors(set, backend)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{8, 2}, x.Shape())
	assert.Equal(t, tensor.Shape{8, 1}, y.Shape())

	// Row 0 of x matches sample 0.
	assert.Equal(t, set.X[0][0], x.At(0, 0))
	assert.Equal(t, set.X[0][1], x.At(0, 1))
	assert.Equal(t, set.Y[0], y.At(0, 0))
}

func TestTensorsEmptySet(t *testing.T) {
	backend := cpu.New()
	_, _, err := Tensors(&Set{}, backend)
	assert.Error(t, err)
}
