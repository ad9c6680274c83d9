package ops

import (
	"fmt"
	"math"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// bceEpsilon guards the logarithms against predictions of exactly 0 or 1.
const bceEpsilon = 1e-7

// BCEOp represents element-wise binary cross-entropy loss:
//
//	loss_i = -(y_i * ln(p_i + eps) + (1 - y_i) * ln(1 - p_i + eps))
//
// where p is the predicted probability and y the binary target.
// The output has the same shape as the prediction; reduction is left to
// the caller (typically a following SumOp).
//
// Backward pass (per element, targets are constants):
//
//	dloss/dp = -y / (p + eps) + (1 - y) / (1 - p + eps)
type BCEOp struct {
	pred   *tensor.RawTensor
	target *tensor.RawTensor
	output *tensor.RawTensor
}

// NewBCEOp creates a new BCEOp.
func NewBCEOp(pred, target, output *tensor.RawTensor) *BCEOp {
	return &BCEOp{
		pred:   pred,
		target: target,
		output: output,
	}
}

// Backward computes the gradient with respect to the predictions.
// Targets are labels, no gradient flows to them.
func (op *BCEOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	gradPred, err := tensor.NewRaw(op.pred.Shape(), op.pred.DType(), op.pred.Device())
	if err != nil {
		panic(fmt.Sprintf("bce backward: %v", err))
	}

	switch op.pred.DType() {
	case tensor.Float32:
		p := op.pred.AsFloat32()
		y := op.target.AsFloat32()
		g := outputGrad.AsFloat32()
		dst := gradPred.AsFloat32()
		for i := range p {
			pi := float64(p[i])
			yi := float64(y[i])
			d := -yi/(pi+bceEpsilon) + (1-yi)/(1-pi+bceEpsilon)
			dst[i] = g[i] * float32(d)
		}
	case tensor.Float64:
		p := op.pred.AsFloat64()
		y := op.target.AsFloat64()
		g := outputGrad.AsFloat64()
		dst := gradPred.AsFloat64()
		for i := range p {
			d := -y[i]/(p[i]+bceEpsilon) + (1-y[i])/(1-p[i]+bceEpsilon)
			dst[i] = g[i] * d
		}
	default:
		panic(fmt.Sprintf("bce backward: unsupported dtype %s", op.pred.DType()))
	}

	// Gradient only flows to pred; target gets nil.
	return []*tensor.RawTensor{gradPred, nil}
}

// Inputs returns [pred, target].
func (op *BCEOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.pred, op.target}
}

// Output returns the element-wise loss tensor.
func (op *BCEOp) Output() *tensor.RawTensor {
	return op.output
}

// BCEForward computes the element-wise binary cross-entropy loss.
// Shared by the autodiff backend's forward pass.
func BCEForward(pred, target *tensor.RawTensor, device tensor.Device) *tensor.RawTensor {
	if !pred.Shape().Equal(target.Shape()) {
		panic(fmt.Sprintf("bce: shape mismatch: pred %v vs target %v", pred.Shape(), target.Shape()))
	}

	result, err := tensor.NewRaw(pred.Shape(), pred.DType(), device)
	if err != nil {
		panic(fmt.Sprintf("bce: %v", err))
	}

	switch pred.DType() {
	case tensor.Float32:
		p := pred.AsFloat32()
		y := target.AsFloat32()
		dst := result.AsFloat32()
		for i := range p {
			pi := float64(p[i])
			yi := float64(y[i])
			dst[i] = float32(-(yi*math.Log(pi+bceEpsilon) + (1-yi)*math.Log(1-pi+bceEpsilon)))
		}
	case tensor.Float64:
		p := pred.AsFloat64()
		y := target.AsFloat64()
		dst := result.AsFloat64()
		for i := range p {
			dst[i] = -(y[i]*math.Log(p[i]+bceEpsilon) + (1-y[i])*math.Log(1-p[i]+bceEpsilon))
		}
	default:
		panic(fmt.Sprintf("bce: unsupported dtype %s", pred.DType()))
	}

	return result
}
