package ops

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// SumOp represents a full reduction: output = sum(input), shape [1].
//
// Backward pass: every element contributed with derivative 1, so the
// scalar output gradient is broadcast back to the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{
		input:  input,
		output: output,
	}
}

// Backward broadcasts the scalar output gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	gradInput, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), op.input.Device())
	if err != nil {
		panic(fmt.Sprintf("sum backward: %v", err))
	}

	switch op.input.DType() {
	case tensor.Float32:
		g := outputGrad.AsFloat32()[0]
		data := gradInput.AsFloat32()
		for i := range data {
			data[i] = g
		}
	case tensor.Float64:
		g := outputGrad.AsFloat64()[0]
		data := gradInput.AsFloat64()
		for i := range data {
			data[i] = g
		}
	default:
		panic(fmt.Sprintf("sum backward: unsupported dtype %s", op.input.DType()))
	}

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor.
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scalar sum.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}

// SumDimOp represents a reduction along one dimension.
//
// Backward pass: the output gradient is broadcast back along the reduced
// dimension.
type SumDimOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int // normalized, non-negative
}

// NewSumDimOp creates a new SumDimOp. dim must already be normalized.
func NewSumDimOp(input, output *tensor.RawTensor, dim int) *SumDimOp {
	return &SumDimOp{
		input:  input,
		output: output,
		dim:    dim,
	}
}

// Backward broadcasts the output gradient along the reduced dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastAlongDim(outputGrad, op.input, op.dim, backend)}
}

// Inputs returns the input tensor.
func (op *SumDimOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the reduced tensor.
func (op *SumDimOp) Output() *tensor.RawTensor {
	return op.output
}

// MeanDimOp represents an average along one dimension.
//
// Backward pass: like SumDimOp, scaled by 1/dimSize.
type MeanDimOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	dim    int
}

// NewMeanDimOp creates a new MeanDimOp. dim must already be normalized.
func NewMeanDimOp(input, output *tensor.RawTensor, dim int) *MeanDimOp {
	return &MeanDimOp{
		input:  input,
		output: output,
		dim:    dim,
	}
}

// Backward broadcasts the output gradient and divides by the dimension size.
func (op *MeanDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := broadcastAlongDim(outputGrad, op.input, op.dim, backend)

	dimSize := op.input.Shape()[op.dim]
	switch grad.DType() {
	case tensor.Float32:
		grad = backend.DivScalar(grad, float32(dimSize))
	case tensor.Float64:
		grad = backend.DivScalar(grad, float64(dimSize))
	default:
		panic(fmt.Sprintf("meandim backward: unsupported dtype %s", grad.DType()))
	}

	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *MeanDimOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the reduced tensor.
func (op *MeanDimOp) Output() *tensor.RawTensor {
	return op.output
}

// broadcastAlongDim expands a reduced gradient back to the input shape.
// Handles both keepDim layouts: the gradient is first reshaped to the
// keepDim form (size 1 at dim), then broadcast by multiplying with ones.
func broadcastAlongDim(grad, input *tensor.RawTensor, dim int, backend tensor.Backend) *tensor.RawTensor {
	keepShape := input.Shape().Clone()
	keepShape[dim] = 1

	if !grad.Shape().Equal(keepShape) {
		grad = backend.Reshape(grad, keepShape)
	}

	ones := fillOnes(input.Shape(), input.DType(), input.Device())
	return backend.Mul(grad, ones)
}
