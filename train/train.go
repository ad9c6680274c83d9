// Copyright 2025 Orbit ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train provides the public API for the Orbit ML training loop.
package train

import (
	"github.com/orbit-ml/orbit/internal/autodiff"
	"github.com/orbit-ml/orbit/internal/dataset"
	"github.com/orbit-ml/orbit/internal/nn"
	"github.com/orbit-ml/orbit/internal/optim"
	"github.com/orbit-ml/orbit/internal/tensor"
	"github.com/orbit-ml/orbit/internal/train"
)

// Config controls the training loop.
type Config = train.Config

// Epoch holds the metrics recorded for one training epoch.
type Epoch = train.Epoch

// History collects per-epoch metrics over a training run.
type History = train.History

// NewHistory creates an empty history.
func NewHistory() *History {
	return train.NewHistory()
}

// Fit trains the model with mini-batch gradient descent under binary
// cross-entropy, validating on the held-out set after every epoch.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model := buildModel(backend)
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01}, backend)
//
//	history, err := train.Fit(model, optimizer, backend, trainSet, valSet, train.Config{
//	    Epochs:    50,
//	    BatchSize: 4,
//	})
func Fit[B tensor.Backend](
	model *nn.Sequential[*autodiff.AutodiffBackend[B]],
	optimizer optim.Optimizer,
	backend *autodiff.AutodiffBackend[B],
	trainSet, valSet *dataset.Set,
	config Config,
) (*History, error) {
	return train.Fit(model, optimizer, backend, trainSet, valSet, config)
}
