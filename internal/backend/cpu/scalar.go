package cpu

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := newResult(x.Shape(), x.DType(), cpu.device, "mulScalar")

	switch x.DType() {
	case tensor.Float32:
		applyScalarFloat32(result, x, scalar.(float32), func(v, s float32) float32 { return v * s })
	case tensor.Float64:
		applyScalarFloat64(result, x, scalar.(float64), func(v, s float64) float64 { return v * s })
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := newResult(x.Shape(), x.DType(), cpu.device, "addScalar")

	switch x.DType() {
	case tensor.Float32:
		applyScalarFloat32(result, x, scalar.(float32), func(v, s float32) float32 { return v + s })
	case tensor.Float64:
		applyScalarFloat64(result, x, scalar.(float64), func(v, s float64) float64 { return v + s })
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := newResult(x.Shape(), x.DType(), cpu.device, "subScalar")

	switch x.DType() {
	case tensor.Float32:
		applyScalarFloat32(result, x, scalar.(float32), func(v, s float32) float32 { return v - s })
	case tensor.Float64:
		applyScalarFloat64(result, x, scalar.(float64), func(v, s float64) float64 { return v - s })
	default:
		panic(fmt.Sprintf("subScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := newResult(x.Shape(), x.DType(), cpu.device, "divScalar")

	switch x.DType() {
	case tensor.Float32:
		applyScalarFloat32(result, x, scalar.(float32), func(v, s float32) float32 { return v / s })
	case tensor.Float64:
		applyScalarFloat64(result, x, scalar.(float64), func(v, s float64) float64 { return v / s })
	default:
		panic(fmt.Sprintf("divScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

func applyScalarFloat32(result, x *tensor.RawTensor, scalar float32, op func(float32, float32) float32) {
	xData := x.AsFloat32()
	resultData := result.AsFloat32()

	for i := range resultData {
		resultData[i] = op(xData[i], scalar)
	}
}

func applyScalarFloat64(result, x *tensor.RawTensor, scalar float64, op func(float64, float64) float64) {
	xData := x.AsFloat64()
	resultData := result.AsFloat64()

	for i := range resultData {
		resultData[i] = op(xData[i], scalar)
	}
}
