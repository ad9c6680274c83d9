package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-ml/orbit/internal/backend/cpu"
	"github.com/orbit-ml/orbit/internal/tensor"
)

func newTestMLP(backend *cpu.CPUBackend) *Sequential[*cpu.CPUBackend] {
	return NewSequential[*cpu.CPUBackend](
		NewLinear(2, 16, backend),
		NewReLU[*cpu.CPUBackend](),
		NewLinear(16, 8, backend),
		NewReLU[*cpu.CPUBackend](),
		NewLinear(8, 1, backend),
		NewSigmoid[*cpu.CPUBackend](),
	)
}

func TestSequentialForward(t *testing.T) {
	backend := cpu.New()
	model := newTestMLP(backend)

	input, err := tensor.FromSlice([]float32{0.5, -0.5, 1, 1}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	output := model.Forward(input)
	assert.Equal(t, tensor.Shape{2, 1}, output.Shape())

	// Sigmoid output stays in (0, 1).
	for _, v := range output.Data() {
		assert.Greater(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestSequentialParameters(t *testing.T) {
	backend := cpu.New()
	model := newTestMLP(backend)

	// Three linear layers, each with weight and bias.
	assert.Len(t, model.Parameters(), 6)
}

func TestSequentialAddAndIndex(t *testing.T) {
	backend := cpu.New()
	model := NewSequential[*cpu.CPUBackend]()
	assert.Equal(t, 0, model.Len())

	model.Add(NewLinear(2, 4, backend))
	model.Add(NewReLU[*cpu.CPUBackend]())
	assert.Equal(t, 2, model.Len())

	_, ok := model.Module(0).(*Linear[*cpu.CPUBackend])
	assert.True(t, ok)

	assert.Panics(t, func() {
		model.Module(2)
	})
}

func TestSequentialStateDictRoundTrip(t *testing.T) {
	backend := cpu.New()
	src := newTestMLP(backend)
	dst := newTestMLP(backend)

	state := src.StateDict()
	assert.Len(t, state, 6)

	require.NoError(t, dst.LoadStateDict(state))

	input, err := tensor.FromSlice([]float32{0.3, -0.7}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	assert.Equal(t, src.Forward(input).Data(), dst.Forward(input.Clone()).Data())
}
