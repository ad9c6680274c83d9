package dataset

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// MakeMoons generates a 2-D binary classification problem of two
// interleaving half-moons.
//
// The first half of the samples traces the upper moon (label 0), the
// second half the lower moon shifted to interleave with it (label 1).
// Points are perturbed with Gaussian noise and shuffled when shuffle is
// set. The same seed always produces the same set.
func MakeMoons(n int, noise float64, shuffle bool, seed uint64) *Set {
	if n < 2 {
		panic(fmt.Sprintf("dataset.MakeMoons: need at least 2 samples, got %d", n))
	}

	rng := rand.New(rand.NewSource(seed))
	normal := distuv.Normal{Mu: 0, Sigma: noise, Src: rng}

	nUpper := n / 2
	nLower := n - nUpper

	set := &Set{
		X: make([][]float32, 0, n),
		Y: make([]float32, 0, n),
	}

	appendPoint := func(x, y float64, label float32) {
		if noise > 0 {
			x += normal.Rand()
			y += normal.Rand()
		}
		set.X = append(set.X, []float32{float32(x), float32(y)})
		set.Y = append(set.Y, label)
	}

	for i := 0; i < nUpper; i++ {
		theta := math.Pi * float64(i) / float64(max(nUpper-1, 1))
		appendPoint(math.Cos(theta), math.Sin(theta), 0)
	}
	for i := 0; i < nLower; i++ {
		theta := math.Pi * float64(i) / float64(max(nLower-1, 1))
		appendPoint(1-math.Cos(theta), 0.5-math.Sin(theta), 1)
	}

	if shuffle {
		shuffleSet(set, rng)
	}
	return set
}
