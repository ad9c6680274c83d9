// Copyright 2025 Orbit ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides the public API for synthetic datasets and
// batching in the Orbit ML framework.
package dataset

import (
	"github.com/orbit-ml/orbit/internal/dataset"
	"github.com/orbit-ml/orbit/internal/tensor"
)

// Set holds a labeled 2-D point set.
type Set = dataset.Set

// MakeCircles generates two concentric circles: an outer circle of
// radius 1 (label 0) and an inner circle of radius factor (label 1),
// perturbed with Gaussian noise. With shuffle set the samples are
// permuted deterministically by seed; without it they stay in class
// order.
//
// Example:
//
//	set := dataset.MakeCircles(750, 0.05, 0.3, true, 42)
//	train, val := set.Split(0.8)
func MakeCircles(n int, noise, factor float64, shuffle bool, seed uint64) *Set {
	return dataset.MakeCircles(n, noise, factor, shuffle, seed)
}

// MakeMoons generates two interleaving half-moons, perturbed with
// Gaussian noise and optionally shuffled deterministically by seed.
func MakeMoons(n int, noise float64, shuffle bool, seed uint64) *Set {
	return dataset.MakeMoons(n, noise, shuffle, seed)
}

// Tensors converts a set into feature tensors of shape [n, features]
// and label tensors of shape [n, 1].
func Tensors[B tensor.Backend](s *Set, backend B) (x, y *tensor.Tensor[float32, B], err error) {
	return dataset.Tensors(s, backend)
}
