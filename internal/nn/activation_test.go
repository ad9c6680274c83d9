package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-ml/orbit/internal/backend/cpu"
	"github.com/orbit-ml/orbit/internal/tensor"
)

func TestReLUForward(t *testing.T) {
	backend := cpu.New()
	relu := NewReLU[*cpu.CPUBackend]()

	input, err := tensor.FromSlice([]float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5}, backend)
	require.NoError(t, err)

	output := relu.Forward(input)
	assert.Equal(t, []float32{0, 0, 0, 0.5, 2}, output.Data())
	assert.Empty(t, relu.Parameters())
}

func TestSigmoidForward(t *testing.T) {
	backend := cpu.New()
	sigmoid := NewSigmoid[*cpu.CPUBackend]()

	input, err := tensor.FromSlice([]float32{0, 2, -2}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	output := sigmoid.Forward(input)
	got := output.Data()

	expected := []float64{0.5, 1.0 / (1.0 + math.Exp(-2)), 1.0 / (1.0 + math.Exp(2))}
	for i := range expected {
		assert.InDelta(t, expected[i], float64(got[i]), 1e-6)
	}
	assert.Empty(t, sigmoid.Parameters())
}

func TestSigmoidRange(t *testing.T) {
	backend := cpu.New()
	sigmoid := NewSigmoid[*cpu.CPUBackend]()

	input, err := tensor.FromSlice([]float32{-50, -1, 0, 1, 50}, tensor.Shape{5}, backend)
	require.NoError(t, err)

	for _, v := range sigmoid.Forward(input).Data() {
		assert.Greater(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}
