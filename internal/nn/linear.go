package nn

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Applies a linear transformation: y = x @ W^T + b
//
// Where:
//   - x: input tensor [batch_size, in_features]
//   - W: weight matrix [out_features, in_features]
//   - b: bias vector [out_features]
//   - y: output tensor [batch_size, out_features]
//
// Example:
//
//	layer := nn.NewLinear(2, 16, backend)  // 2 inputs, 16 outputs
//	output := layer.Forward(input)          // [batch, 2] -> [batch, 16]
type Linear[B tensor.Backend] struct {
	weight *Parameter[B] // Weight matrix [out_features, in_features]
	bias   *Parameter[B] // Bias vector [out_features]

	inFeatures  int
	outFeatures int
}

// NewLinear creates a new fully connected layer.
//
// Weights are initialized with Xavier initialization, biases with zeros.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	weightShape := tensor.Shape{outFeatures, inFeatures}
	weight := Xavier(inFeatures, outFeatures, weightShape, backend)

	biasShape := tensor.Shape{outFeatures}
	bias := Zeros[B](biasShape, backend)

	return &Linear[B]{
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
	}
}

// Forward computes the linear transformation: y = x @ W^T + b
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got %dD", len(inputShape)))
	}
	if inputShape[1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected %d input features, got %d", l.inFeatures, inputShape[1]))
	}

	// y = x @ W^T
	w := l.weight.Tensor()
	wT := w.T()
	output := input.MatMul(wT)

	// Reshape bias to [1, out_features] so it broadcasts over the batch.
	b := l.bias.Tensor()
	bReshaped := b.Reshape(1, l.outFeatures)

	return output.Add(bReshaped)
}

// Parameters returns the layer's trainable parameters (weight and bias).
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns the layer's parameters as raw tensors.
func (l *Linear[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{
		"weight": l.weight.Tensor().Raw(),
		"bias":   l.bias.Tensor().Raw(),
	}
}

// LoadStateDict loads parameters from a state dictionary.
func (l *Linear[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	weight, ok := stateDict["weight"]
	if !ok {
		return fmt.Errorf("missing weight in state dict")
	}
	bias, ok := stateDict["bias"]
	if !ok {
		return fmt.Errorf("missing bias in state dict")
	}

	if !weight.Shape().Equal(l.weight.Tensor().Shape()) {
		return fmt.Errorf("weight shape mismatch: expected %v, got %v",
			l.weight.Tensor().Shape(), weight.Shape())
	}
	if !bias.Shape().Equal(l.bias.Tensor().Shape()) {
		return fmt.Errorf("bias shape mismatch: expected %v, got %v",
			l.bias.Tensor().Shape(), bias.Shape())
	}

	backend := l.weight.Tensor().Backend()
	l.weight = NewParameter("weight", tensor.New[float32](weight, backend))
	l.bias = NewParameter("bias", tensor.New[float32](bias, backend))
	return nil
}
