package nn

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// ReLUBackend is implemented by backends that provide a ReLU kernel.
type ReLUBackend interface {
	ReLU(x *tensor.RawTensor) *tensor.RawTensor
}

// SigmoidBackend is implemented by backends that provide a sigmoid kernel.
type SigmoidBackend interface {
	Sigmoid(x *tensor.RawTensor) *tensor.RawTensor
}

// ReLU applies the rectified linear unit activation: f(x) = max(0, x).
//
// ReLU is the most commonly used activation in hidden layers. It is cheap
// to compute and avoids vanishing gradients for positive inputs.
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU element-wise.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	reluBackend, ok := any(backend).(ReLUBackend)
	if !ok {
		panic(fmt.Sprintf("backend %s does not support ReLU", backend.Name()))
	}

	result := reluBackend.ReLU(input.Raw())
	return tensor.New[float32](result, backend)
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}

// Sigmoid applies the logistic sigmoid activation: f(x) = 1 / (1 + e^-x).
//
// Sigmoid squashes inputs to the range (0, 1), which makes it the standard
// output activation for binary classification.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies sigmoid element-wise.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	sigmoidBackend, ok := any(backend).(SigmoidBackend)
	if !ok {
		panic(fmt.Sprintf("backend %s does not support Sigmoid", backend.Name()))
	}

	result := sigmoidBackend.Sigmoid(input.Raw())
	return tensor.New[float32](result, backend)
}

// Parameters returns an empty slice (sigmoid has no trainable parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{}
}
