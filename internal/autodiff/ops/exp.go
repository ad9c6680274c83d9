package ops

import "github.com/orbit-ml/orbit/internal/tensor"

// ExpOp represents an element-wise exponential: output = exp(input).
//
// Backward pass:
//
//	d(exp(x))/dx = exp(x) = output, so grad_in = outputGrad * output
type ExpOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewExpOp creates a new ExpOp.
func NewExpOp(input, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient using the cached forward output.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := backend.Mul(outputGrad, op.output)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor.
func (op *ExpOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor exp(input).
func (op *ExpOp) Output() *tensor.RawTensor {
	return op.output
}
