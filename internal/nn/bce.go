package nn

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// BinaryCrossEntropyBackend is implemented by backends that provide a
// binary cross-entropy kernel. The kernel returns the element-wise loss
// (same shape as the predictions, no reduction).
type BinaryCrossEntropyBackend interface {
	BinaryCrossEntropy(predictions, targets *tensor.RawTensor) *tensor.RawTensor
}

// BCELoss computes the binary cross-entropy between sigmoid outputs and
// binary targets:
//
//	loss = -mean(y·ln(p) + (1-y)·ln(1-p))
//
// Predictions must already be probabilities in (0, 1), typically produced
// by a Sigmoid output layer. Targets are 0 or 1.
type BCELoss[B tensor.Backend] struct{}

// NewBCELoss creates a new binary cross-entropy loss.
func NewBCELoss[B tensor.Backend]() *BCELoss[B] {
	return &BCELoss[B]{}
}

// Forward computes the mean BCE loss as a scalar tensor of shape [1].
//
// Predictions and targets must have the same shape. Targets carry the
// labels and do not receive gradients.
func (b *BCELoss[B]) Forward(pred, target *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !pred.Shape().Equal(target.Shape()) {
		panic(fmt.Sprintf("BCELoss.Forward: shape mismatch %v vs %v", pred.Shape(), target.Shape()))
	}

	backend := pred.Backend()
	bceBackend, ok := any(backend).(BinaryCrossEntropyBackend)
	if !ok {
		panic(fmt.Sprintf("backend %s does not support BinaryCrossEntropy", backend.Name()))
	}

	elementwise := bceBackend.BinaryCrossEntropy(pred.Raw(), target.Raw())
	loss := tensor.New[float32](elementwise, backend)

	n := float32(pred.NumElements())
	return loss.Sum().DivScalar(n)
}

// Accuracy returns the fraction of predictions matching the binary targets
// when thresholded at 0.5.
func Accuracy[B tensor.Backend](pred, target *tensor.Tensor[float32, B]) float32 {
	if !pred.Shape().Equal(target.Shape()) {
		panic(fmt.Sprintf("Accuracy: shape mismatch %v vs %v", pred.Shape(), target.Shape()))
	}

	predData := pred.Data()
	targetData := target.Data()
	if len(predData) == 0 {
		return 0
	}

	correct := 0
	for i := range predData {
		label := float32(0)
		if predData[i] >= 0.5 {
			label = 1
		}
		if label == targetData[i] {
			correct++
		}
	}
	return float32(correct) / float32(len(predData))
}
