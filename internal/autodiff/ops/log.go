package ops

import "github.com/orbit-ml/orbit/internal/tensor"

// LogOp represents an element-wise natural logarithm: output = ln(input).
//
// Backward pass:
//
//	d(ln(x))/dx = 1/x, so grad_in = outputGrad / input
type LogOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewLogOp creates a new LogOp.
func NewLogOp(input, output *tensor.RawTensor) *LogOp {
	return &LogOp{
		input:  input,
		output: output,
	}
}

// Backward computes the input gradient.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := backend.Div(outputGrad, op.input)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor.
func (op *LogOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor ln(input).
func (op *LogOp) Output() *tensor.RawTensor {
	return op.output
}
