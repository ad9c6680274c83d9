package cpu

import (
	"fmt"
	"math"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// bceEpsilon guards the logarithms in the binary cross-entropy kernel
// against predictions of exactly 0 or 1.
const bceEpsilon = 1e-7

// ReLU computes element-wise max(0, x).
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := newResult(x.Shape(), x.DType(), cpu.device, "relu")

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			if v > 0 {
				dst[i] = v
			}
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			if v > 0 {
				dst[i] = v
			}
		}
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Sigmoid computes element-wise 1 / (1 + exp(-x)).
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result := newResult(x.Shape(), x.DType(), cpu.device, "sigmoid")

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(1.0 / (1.0 + math.Exp(-float64(v))))
		}
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = 1.0 / (1.0 + math.Exp(-v))
		}
	default:
		panic(fmt.Sprintf("sigmoid: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// BinaryCrossEntropy computes the element-wise binary cross-entropy loss
// between predicted probabilities and binary targets:
//
//	loss_i = -(y_i * ln(p_i + eps) + (1 - y_i) * ln(1 - p_i + eps))
//
// The result has the same shape as pred; reduction is left to the caller.
func (cpu *CPUBackend) BinaryCrossEntropy(pred, target *tensor.RawTensor) *tensor.RawTensor {
	if !pred.Shape().Equal(target.Shape()) {
		panic(fmt.Sprintf("bce: shape mismatch: pred %v vs target %v", pred.Shape(), target.Shape()))
	}

	result := newResult(pred.Shape(), pred.DType(), cpu.device, "bce")

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
		panic(fmt.Sprintf("bce: unsupported dtype %s (only float32/float64 supported)", pred.DType()))
	}

	return result
}
