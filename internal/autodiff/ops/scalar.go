package ops

import "github.com/orbit-ml/orbit/internal/tensor"

// ScalarOpKind identifies which scalar operation was recorded.
type ScalarOpKind int

// Scalar operation kinds.
const (
	ScalarMul ScalarOpKind = iota
	ScalarAdd
	ScalarSub
	ScalarDiv
)

// ScalarOp represents an element-wise operation with a scalar constant.
//
// Backward pass:
//   - mul: grad_in = outputGrad * scalar
//   - add, sub: grad_in = outputGrad (the constant contributes nothing)
//   - div: grad_in = outputGrad / scalar
type ScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar any
	kind   ScalarOpKind
}

// NewScalarOp creates a new ScalarOp.
func NewScalarOp(input, output *tensor.RawTensor, scalar any, kind ScalarOpKind) *ScalarOp {
	return &ScalarOp{
		input:  input,
		output: output,
		scalar: scalar,
		kind:   kind,
	}
}

// Backward computes the input gradient for the scalar operation.
func (op *ScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	var gradInput *tensor.RawTensor

	switch op.kind {
	case ScalarMul:
		gradInput = backend.MulScalar(outputGrad, op.scalar)
	case ScalarDiv:
		gradInput = backend.DivScalar(outputGrad, op.scalar)
	case ScalarAdd, ScalarSub:
		gradInput = outputGrad.Clone()
	default:
		panic("scalar op: unknown kind")
	}

	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor.
func (op *ScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ScalarOp) Output() *tensor.RawTensor {
	return op.output
}
