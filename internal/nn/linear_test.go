package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-ml/orbit/internal/backend/cpu"
	"github.com/orbit-ml/orbit/internal/tensor"
)

func TestLinearShapes(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(2, 16, backend)

	assert.Equal(t, 2, layer.InFeatures())
	assert.Equal(t, 16, layer.OutFeatures())
	assert.Equal(t, tensor.Shape{16, 2}, layer.Weight().Tensor().Shape())
	assert.Equal(t, tensor.Shape{16}, layer.Bias().Tensor().Shape())

	input, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)
	assert.Equal(t, tensor.Shape{2, 16}, output.Shape())
}

func TestLinearForwardValues(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(2, 2, backend)

	// Identity weight, bias {10, 20}.
	w := layer.Weight().Tensor().Data()
	copy(w, []float32{1, 0, 0, 1})
	b := layer.Bias().Tensor().Data()
	copy(b, []float32{10, 20})

	input, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	output := layer.Forward(input)
	assert.Equal(t, []float32{11, 22, 13, 24}, output.Data())
}

func TestLinearForwardValidatesInput(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(2, 4, backend)

	input, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	assert.Panics(t, func() {
		layer.Forward(input)
	})
}

func TestLinearParameters(t *testing.T) {
	backend := cpu.New()
	layer := NewLinear(3, 5, backend)

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "weight", params[0].Name())
	assert.Equal(t, "bias", params[1].Name())
}

func TestLinearStateDictRoundTrip(t *testing.T) {
	backend := cpu.New()
	src := NewLinear(2, 3, backend)
	dst := NewLinear(2, 3, backend)

	require.NoError(t, dst.LoadStateDict(src.StateDict()))

	assert.Equal(t, src.Weight().Tensor().Data(), dst.Weight().Tensor().Data())
	assert.Equal(t, src.Bias().Tensor().Data(), dst.Bias().Tensor().Data())
}

func TestLinearLoadStateDictShapeMismatch(t *testing.T) {
	backend := cpu.New()
	src := NewLinear(2, 3, backend)
	dst := NewLinear(2, 4, backend)

	assert.Error(t, dst.LoadStateDict(src.StateDict()))
}

func TestXavierBounds(t *testing.T) {
	backend := cpu.New()

	fanIn, fanOut := 16, 8
	w := Xavier(fanIn, fanOut, tensor.Shape{fanOut, fanIn}, backend)

	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	for i, v := range w.Data() {
		if float64(v) < -bound || float64(v) > bound {
			t.Fatalf("weight[%d] = %v outside Xavier bound %v", i, v, bound)
		}
	}
}

func TestParameterZeroGrad(t *testing.T) {
	backend := cpu.New()
	w := Zeros[*cpu.CPUBackend](tensor.Shape{2, 2}, backend)
	p := NewParameter("weight", w)

	require.Nil(t, p.Grad())

	grad := Ones[*cpu.CPUBackend](tensor.Shape{2, 2}, backend)
	p.SetGrad(grad)
	require.NotNil(t, p.Grad())

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}
