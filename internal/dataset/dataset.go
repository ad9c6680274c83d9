// Package dataset provides synthetic 2-D datasets and batching utilities
// for training small classifiers.
//
// Datasets are generated deterministically from a seed, split into
// contiguous train/validation partitions, and iterated in mini-batches:
//
//	set := dataset.MakeCircles(750, 0.05, 0.3, true, 42)
//	train, val := set.Split(0.8)
//	for _, batch := range train.Batches(4) {
//	    x, y, _ := dataset.Tensors(batch, backend)
//	    ...
//	}
package dataset

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// Set holds a labeled 2-D point set.
//
// X[i] is a feature vector (two coordinates for the synthetic
// generators), Y[i] its binary label (0 or 1).
type Set struct {
	X [][]float32
	Y []float32
}

// NumSamples returns the number of samples in the set.
func (s *Set) NumSamples() int {
	return len(s.X)
}

// NumFeatures returns the dimensionality of the feature vectors.
// Returns 0 for an empty set.
func (s *Set) NumFeatures() int {
	if len(s.X) == 0 {
		return 0
	}
	return len(s.X[0])
}

// Split partitions the set contiguously into train and validation sets.
//
// The first floor(frac * n) samples become the training set, the
// remainder the validation set. The generators shuffle on creation, so a
// contiguous split is already a random partition.
func (s *Set) Split(frac float64) (train, val *Set) {
	if frac < 0 || frac > 1 {
		panic(fmt.Sprintf("dataset.Split: fraction %v outside [0, 1]", frac))
	}

	cut := int(frac * float64(len(s.X)))
	train = &Set{X: s.X[:cut], Y: s.Y[:cut]}
	val = &Set{X: s.X[cut:], Y: s.Y[cut:]}
	return train, val
}

// Batches slices the set into mini-batches of the given size.
//
// The final batch is smaller when the set size is not a multiple of
// batchSize. Batches share the underlying sample storage.
func (s *Set) Batches(batchSize int) []*Set {
	if batchSize <= 0 {
		panic(fmt.Sprintf("dataset.Batches: batch size %d must be positive", batchSize))
	}

	n := len(s.X)
	batches := make([]*Set, 0, (n+batchSize-1)/batchSize)
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		batches = append(batches, &Set{X: s.X[start:end], Y: s.Y[start:end]})
	}
	return batches
}

// Tensors converts a set into feature and label tensors.
//
// Features have shape [n, num_features], labels [n, 1] so they line up
// with a single sigmoid output.
func Tensors[B tensor.Backend](s *Set, backend B) (x, y *tensor.Tensor[float32, B], err error) {
	n := s.NumSamples()
	if n == 0 {
		return nil, nil, fmt.Errorf("dataset: cannot build tensors from an empty set")
	}
	features := s.NumFeatures()

	xData := make([]float32, 0, n*features)
	for i, sample := range s.X {
		if len(sample) != features {
			return nil, nil, fmt.Errorf("dataset: sample %d has %d features, expected %d", i, len(sample), features)
		}
		xData = append(xData, sample...)
	}

	x, err = tensor.FromSlice(xData, tensor.Shape{n, features}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: building feature tensor: %w", err)
	}

	yData := make([]float32, n)
	copy(yData, s.Y)
	y, err = tensor.FromSlice(yData, tensor.Shape{n, 1}, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: building label tensor: %w", err)
	}

	return x, y, nil
}
