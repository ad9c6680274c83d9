package train

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-ml/orbit/internal/autodiff"
	"github.com/orbit-ml/orbit/internal/backend/cpu"
	"github.com/orbit-ml/orbit/internal/dataset"
	"github.com/orbit-ml/orbit/internal/nn"
	"github.com/orbit-ml/orbit/internal/optim"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newClassifier(backend adBackend) *nn.Sequential[adBackend] {
	return nn.NewSequential[adBackend](
		nn.NewLinear(2, 16, backend),
		nn.NewReLU[adBackend](),
		nn.NewLinear(16, 8, backend),
		nn.NewReLU[adBackend](),
		nn.NewLinear(8, 1, backend),
		nn.NewSigmoid[adBackend](),
	)
}

func TestFitReducesLoss(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newClassifier(backend)

	set := dataset.MakeCircles(200, 0.05, 0.3, true, 42)
	trainSet, valSet := set.Split(0.8)

	optimizer := optim.NewSGD(model.Parameters(),
		optim.SGDConfig{LR: 0.1, Momentum: 0.9},
		backend,
	)

	history, err := Fit(model, optimizer, backend, trainSet, valSet, Config{
		Epochs:    30,
		BatchSize: 4,
		LogEvery:  -1,
	})
	require.NoError(t, err)
	require.Equal(t, 30, history.Len())

	for _, e := range history.Epochs {
		assert.False(t, math.IsNaN(e.TrainLoss), "epoch %d train loss is NaN", e.Epoch)
		assert.GreaterOrEqual(t, e.TrainLoss, 0.0, "epoch %d", e.Epoch)
		assert.GreaterOrEqual(t, e.ValLoss, 0.0, "epoch %d", e.Epoch)
		assert.GreaterOrEqual(t, e.ValAccuracy, 0.0)
		assert.LessOrEqual(t, e.ValAccuracy, 1.0)
	}

	first := history.Epochs[0]
	last := history.Last()
	assert.Less(t, last.TrainLoss, first.TrainLoss, "training loss should decrease")
	assert.Greater(t, last.ValAccuracy, 0.5, "trained classifier should beat chance")
}

func TestFitHistoryMetadata(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newClassifier(backend)

	set := dataset.MakeCircles(40, 0.05, 0.3, true, 7)
	trainSet, valSet := set.Split(0.8)

	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01}, backend)

	history, err := Fit(model, optimizer, backend, trainSet, valSet, Config{
		Epochs:    3,
		BatchSize: 4,
		LogEvery:  -1,
	})
	require.NoError(t, err)
	require.Equal(t, 3, history.Len())

	for i, e := range history.Epochs {
		assert.Equal(t, i, e.Epoch)
		assert.Greater(t, e.Duration.Nanoseconds(), int64(0))
	}

	assert.Len(t, history.TrainLosses(), 3)
	assert.Len(t, history.ValLosses(), 3)
}

func TestFitLogsProgress(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newClassifier(backend)

	set := dataset.MakeCircles(20, 0.05, 0.3, true, 1)
	trainSet, valSet := set.Split(0.8)

	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01}, backend)

	var buf bytes.Buffer
	_, err := Fit(model, optimizer, backend, trainSet, valSet, Config{
		Epochs:    2,
		BatchSize: 4,
		LogEvery:  1,
		Out:       &buf,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "epoch")
	assert.Contains(t, buf.String(), "train_loss")
}

func TestFitEmptySets(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model := newClassifier(backend)
	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.01}, backend)

	set := dataset.MakeCircles(20, 0.05, 0.3, true, 1)

	_, err := Fit(model, optimizer, backend, &dataset.Set{}, set, Config{Epochs: 1})
	assert.Error(t, err)

	_, err = Fit(model, optimizer, backend, set, &dataset.Set{}, Config{Epochs: 1})
	assert.Error(t, err)
}

func TestShouldLog(t *testing.T) {
	config := Config{Epochs: 50, LogEvery: 10}

	assert.True(t, shouldLog(0, config), "first epoch always logs")
	assert.True(t, shouldLog(49, config), "last epoch always logs")
	assert.True(t, shouldLog(9, config), "epoch 10 logs")
	assert.False(t, shouldLog(5, config))

	config.LogEvery = -1
	assert.False(t, shouldLog(0, config), "negative LogEvery disables logging")
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	assert.Equal(t, 50, c.Epochs)
	assert.Equal(t, 4, c.BatchSize)
	assert.Equal(t, 10, c.LogEvery)
	assert.NotNil(t, c.Out)
}

func TestHistorySavePlot(t *testing.T) {
	h := NewHistory()
	h.Add(Epoch{Epoch: 0, TrainLoss: 0.7, ValLoss: 0.72})
	h.Add(Epoch{Epoch: 1, TrainLoss: 0.5, ValLoss: 0.55})
	h.Add(Epoch{Epoch: 2, TrainLoss: 0.3, ValLoss: 0.4})

	path := filepath.Join(t.TempDir(), "loss.png")
	require.NoError(t, h.SavePlot(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestHistorySavePlotEmpty(t *testing.T) {
	h := NewHistory()
	assert.Error(t, h.SavePlot(filepath.Join(t.TempDir(), "loss.png")))
}

func TestHistoryLastPanicsWhenEmpty(t *testing.T) {
	h := NewHistory()
	assert.Panics(t, func() { h.Last() })
}
