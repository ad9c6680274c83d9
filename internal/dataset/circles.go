package dataset

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// MakeCircles generates a 2-D binary classification problem of two
// concentric circles.
//
// The first half of the samples lies on an outer circle of radius 1
// (label 0), the second half on an inner circle of radius factor
// (label 1). Points are evenly spaced by angle, perturbed with Gaussian
// noise of the given standard deviation, and shuffled when shuffle is
// set. Without shuffling the samples stay in class order, which biases
// a contiguous train/validation split.
//
// The same seed always produces the same set. factor must lie in (0, 1)
// so the classes are separable by radius but not by a line.
func MakeCircles(n int, noise, factor float64, shuffle bool, seed uint64) *Set {
	if n < 2 {
		panic(fmt.Sprintf("dataset.MakeCircles: need at least 2 samples, got %d", n))
	}
	if factor <= 0 || factor >= 1 {
		panic(fmt.Sprintf("dataset.MakeCircles: factor %v outside (0, 1)", factor))
	}

	rng := rand.New(rand.NewSource(seed))
	normal := distuv.Normal{Mu: 0, Sigma: noise, Src: rng}

	nOuter := n / 2
	nInner := n - nOuter

	set := &Set{
		X: make([][]float32, 0, n),
		Y: make([]float32, 0, n),
	}

	appendCircle := func(count int, radius float64, label float32) {
		for i := 0; i < count; i++ {
			theta := 2 * math.Pi * float64(i) / float64(count)
			x := radius * math.Cos(theta)
			y := radius * math.Sin(theta)
			if noise > 0 {
				x += normal.Rand()
				y += normal.Rand()
			}
			set.X = append(set.X, []float32{float32(x), float32(y)})
			set.Y = append(set.Y, label)
		}
	}

	appendCircle(nOuter, 1.0, 0)
	appendCircle(nInner, factor, 1)

	if shuffle {
		shuffleSet(set, rng)
	}
	return set
}

// shuffleSet permutes samples and labels together in place.
func shuffleSet(s *Set, rng *rand.Rand) {
	rng.Shuffle(len(s.X), func(i, j int) {
		s.X[i], s.X[j] = s.X[j], s.X[i]
		s.Y[i], s.Y[j] = s.Y[j], s.Y[i]
	})
}
