// Copyright 2025 Orbit ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/orbit-ml/orbit/internal/tensor"

// RawTensor is the low-level tensor representation shared by all
// backends: a byte buffer with shape, strides, dtype, and device, plus
// reference-counted copy-on-write semantics.
//
// Most users should work with Tensor[T, B] instead.
type RawTensor = tensor.RawTensor

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
//
// This is a low-level function. Most users should use high-level creation
// functions instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
