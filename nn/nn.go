// Copyright 2025 Orbit ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network modules in the
// Orbit ML framework.
package nn

import (
	"github.com/orbit-ml/orbit/internal/nn"
	"github.com/orbit-ml/orbit/internal/tensor"
)

// Module is the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(2, 16, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Activations

// ReLU represents the rectified linear unit activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid represents the logistic sigmoid activation.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new sigmoid activation layer.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Containers

// Sequential chains modules so the output of each feeds the next.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container from the given modules.
//
// Example:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(2, 16, backend),
//	    nn.NewReLU[B](),
//	    nn.NewLinear(16, 1, backend),
//	    nn.NewSigmoid[B](),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Losses

// MSELoss computes the mean squared error.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates a new mean squared error loss.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return nn.NewMSELoss[B]()
}

// BCELoss computes the binary cross-entropy between sigmoid outputs and
// binary targets.
type BCELoss[B tensor.Backend] = nn.BCELoss[B]

// NewBCELoss creates a new binary cross-entropy loss.
func NewBCELoss[B tensor.Backend]() *BCELoss[B] {
	return nn.NewBCELoss[B]()
}

// Metrics

// Accuracy returns the fraction of predictions matching the binary
// targets when thresholded at 0.5.
func Accuracy[B tensor.Backend](pred, target *tensor.Tensor[float32, B]) float32 {
	return nn.Accuracy(pred, target)
}
