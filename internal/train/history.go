package train

import (
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Epoch holds the metrics recorded for one training epoch.
type Epoch struct {
	Epoch       int
	TrainLoss   float64
	ValLoss     float64
	ValAccuracy float64
	Duration    time.Duration
}

// History collects per-epoch metrics over a training run.
type History struct {
	Epochs []Epoch
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Add appends one epoch's metrics.
func (h *History) Add(e Epoch) {
	h.Epochs = append(h.Epochs, e)
}

// Len returns the number of recorded epochs.
func (h *History) Len() int {
	return len(h.Epochs)
}

// Last returns the most recent epoch's metrics. Panics on an empty
// history.
func (h *History) Last() Epoch {
	if len(h.Epochs) == 0 {
		panic("train: history is empty")
	}
	return h.Epochs[len(h.Epochs)-1]
}

// TrainLosses returns the training loss trajectory.
func (h *History) TrainLosses() []float64 {
	losses := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		losses[i] = e.TrainLoss
	}
	return losses
}

// ValLosses returns the validation loss trajectory.
func (h *History) ValLosses() []float64 {
	losses := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		losses[i] = e.ValLoss
	}
	return losses
}

// SavePlot renders the training and validation loss curves to an image
// file. The format follows the file extension (.png, .svg, .pdf).
func (h *History) SavePlot(path string) error {
	if len(h.Epochs) == 0 {
		return fmt.Errorf("train: cannot plot an empty history")
	}

	p := plot.New()
	p.Title.Text = "Loss per epoch"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "loss"

	trainPts := make(plotter.XYs, len(h.Epochs))
	valPts := make(plotter.XYs, len(h.Epochs))
	for i, e := range h.Epochs {
		trainPts[i] = plotter.XY{X: float64(e.Epoch), Y: e.TrainLoss}
		valPts[i] = plotter.XY{X: float64(e.Epoch), Y: e.ValLoss}
	}

	if err := plotutil.AddLinePoints(p, "train", trainPts, "validation", valPts); err != nil {
		return fmt.Errorf("train: building loss plot: %w", err)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("train: saving loss plot: %w", err)
	}
	return nil
}
