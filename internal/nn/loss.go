package nn

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// MSELoss computes the mean squared error between predictions and targets:
//
//	loss = mean((pred - target)²)
//
// Commonly used for regression tasks.
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates a new mean squared error loss.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward computes the MSE loss as a scalar tensor of shape [1].
//
// Predictions and targets must have the same shape.
func (m *MSELoss[B]) Forward(pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !pred.Shape().Equal(target.Shape()) {
		panic(fmt.Sprintf("MSELoss.Forward: shape mismatch %v vs %v", pred.Shape(), target.Shape()))
	}

	diff := pred.Sub(target)
	squared := diff.Mul(diff)

	n := float32(pred.NumElements())
	return squared.Sum().DivScalar(n)
}
