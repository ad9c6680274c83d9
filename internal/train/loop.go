// Package train implements the supervised training loop for binary
// classifiers built from nn modules.
//
// The loop runs mini-batch gradient descent under the autodiff backend,
// validates on a held-out set after every epoch, and collects the loss
// trajectory in a History for reporting and plotting.
package train

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/orbit-ml/orbit/internal/autodiff"
	"github.com/orbit-ml/orbit/internal/dataset"
	"github.com/orbit-ml/orbit/internal/nn"
	"github.com/orbit-ml/orbit/internal/optim"
	"github.com/orbit-ml/orbit/internal/tensor"
)

// Config controls the training loop.
type Config struct {
	Epochs    int       // Number of passes over the training set (default: 50)
	BatchSize int       // Mini-batch size (default: 4)
	LogEvery  int       // Log every n-th epoch, negative disables logging (default: 10)
	Out       io.Writer // Destination for progress logs (default: os.Stdout)
}

// withDefaults fills in zero-valued fields.
func (c Config) withDefaults() Config {
	if c.Epochs == 0 {
		c.Epochs = 50
	}
	if c.BatchSize == 0 {
		c.BatchSize = 4
	}
	if c.LogEvery == 0 {
		c.LogEvery = 10
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	return c
}

// Fit trains the model on the training set and validates it on the
// validation set after every epoch.
//
// Each mini-batch records a fresh gradient tape, runs the forward pass
// and binary cross-entropy loss, backpropagates, and applies the
// optimizer. The per-epoch training loss is the mean element-wise loss
// over all training samples. Validation runs with recording disabled so
// it never influences the gradients.
func Fit[B tensor.Backend](
	model *nn.Sequential[*autodiff.AutodiffBackend[B]],
	optimizer optim.Optimizer,
	backend *autodiff.AutodiffBackend[B],
	trainSet, valSet *dataset.Set,
	config Config,
) (*History, error) {
	config = config.withDefaults()
	if trainSet.NumSamples() == 0 {
		return nil, fmt.Errorf("train: training set is empty")
	}
	if valSet.NumSamples() == 0 {
		return nil, fmt.Errorf("train: validation set is empty")
	}

	loss := nn.NewBCELoss[*autodiff.AutodiffBackend[B]]()
	batches := trainSet.Batches(config.BatchSize)

	valX, valY, err := dataset.Tensors(valSet, backend)
	if err != nil {
		return nil, fmt.Errorf("train: preparing validation tensors: %w", err)
	}

	history := NewHistory()
	tape := backend.Tape()

	for epoch := 0; epoch < config.Epochs; epoch++ {
		start := time.Now()
		totalLoss := 0.0

		for _, batch := range batches {
			x, y, err := dataset.Tensors(batch, backend)
			if err != nil {
				return nil, fmt.Errorf("train: preparing batch tensors: %w", err)
			}

			tape.Clear()
			tape.StartRecording()

			pred := model.Forward(x)
			batchLoss := loss.Forward(pred, y)

			grads := autodiff.Backward(batchLoss, backend)
			tape.StopRecording()

			optimizer.Step(grads)
			optimizer.ZeroGrad()

			// batchLoss is the mean over the batch. Weight by batch
			// size so the epoch mean is exact with a ragged last batch.
			totalLoss += float64(batchLoss.Item()) * float64(batch.NumSamples())
		}
		tape.Clear()

		trainLoss := totalLoss / float64(trainSet.NumSamples())
		valLoss, valAcc := evaluate(model, loss, valX, valY)
		elapsed := time.Since(start)

		history.Add(Epoch{
			Epoch:       epoch,
			TrainLoss:   trainLoss,
			ValLoss:     valLoss,
			ValAccuracy: valAcc,
			Duration:    elapsed,
		})

		if shouldLog(epoch, config) {
			fmt.Fprintf(config.Out, "epoch %3d/%d  train_loss=%.4f  val_loss=%.4f  val_acc=%.4f  (%s)\n",
				epoch+1, config.Epochs, trainLoss, valLoss, valAcc, elapsed.Round(time.Millisecond))
		}
	}

	return history, nil
}

// evaluate runs a forward pass without gradient recording and returns
// the mean validation loss and accuracy.
func evaluate[B tensor.Backend](
	model *nn.Sequential[*autodiff.AutodiffBackend[B]],
	loss *nn.BCELoss[*autodiff.AutodiffBackend[B]],
	valX, valY *tensor.Tensor[float32, *autodiff.AutodiffBackend[B]],
) (valLoss float64, valAcc float64) {
	pred := model.Forward(valX)
	valLoss = float64(loss.Forward(pred, valY).Item())
	valAcc = float64(nn.Accuracy(pred, valY))
	return valLoss, valAcc
}

// shouldLog reports whether the epoch's metrics go to the log. The
// first and last epochs always log when logging is enabled.
func shouldLog(epoch int, config Config) bool {
	if config.LogEvery <= 0 {
		return false
	}
	if epoch == 0 || epoch == config.Epochs-1 {
		return true
	}
	return (epoch+1)%config.LogEvery == 0
}
