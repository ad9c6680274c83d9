// Copyright 2025 Orbit ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation for the Orbit ML framework.
//
// The autodiff backend is a decorator that wraps any compute backend and
// records operations on a gradient tape. Calling Backward walks the tape
// in reverse and returns gradients for every recorded input:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float32{2, 3}, tensor.Shape{2}, backend)
//	y := x.Mul(x)
//
//	grads := autodiff.Backward(y, backend)
//	_ = grads[x.Raw()] // dy/dx = 2x
package autodiff

import (
	internalautodiff "github.com/orbit-ml/orbit/internal/autodiff"
	"github.com/orbit-ml/orbit/tensor"
)

// Backend is the autodiff decorator around an inner compute backend.
type Backend[B tensor.Backend] = internalautodiff.AutodiffBackend[B]

// GradientTape records operations for reverse-mode differentiation.
type GradientTape = internalautodiff.GradientTape

// BackwardCapable is satisfied by backends that expose a gradient tape.
type BackwardCapable = internalautodiff.BackwardCapable

// New creates an autodiff backend wrapping the given inner backend.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
func New[B tensor.Backend](inner B) *Backend[B] {
	return internalautodiff.New(inner)
}

// Backward computes gradients of t with respect to all recorded inputs.
//
// The returned map is keyed by raw tensor, so parameter gradients can be
// looked up via param.Tensor().Raw().
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return internalautodiff.Backward(t, backend)
}
