package cpu

import (
	"math"
	"testing"

	"github.com/orbit-ml/orbit/internal/tensor"
)

func TestReLU(t *testing.T) {
	backend := New()
	x := newFloat32(t, []float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5})

	y := backend.ReLU(x)

	assertFloat32Slice(t, []float32{0, 0, 0, 0.5, 2}, y.AsFloat32(), "ReLU")
}

func TestSigmoid(t *testing.T) {
	backend := New()
	x := newFloat32(t, []float32{-10, 0, 10}, tensor.Shape{3})

	y := backend.Sigmoid(x)
	got := y.AsFloat32()

	if got[1] != 0.5 {
		t.Errorf("Sigmoid(0) = %v, want 0.5", got[1])
	}
	if got[0] > 0.001 {
		t.Errorf("Sigmoid(-10) = %v, want near 0", got[0])
	}
	if got[2] < 0.999 {
		t.Errorf("Sigmoid(10) = %v, want near 1", got[2])
	}
}

func TestBinaryCrossEntropy(t *testing.T) {
	backend := New()

	pred := newFloat32(t, []float32{0.9, 0.1, 0.5}, tensor.Shape{3, 1})
	target := newFloat32(t, []float32{1, 0, 1}, tensor.Shape{3, 1})

	loss := backend.BinaryCrossEntropy(pred, target)

	if !loss.Shape().Equal(tensor.Shape{3, 1}) {
		t.Fatalf("BCE shape = %v, want [3 1]", loss.Shape())
	}

	got := loss.AsFloat32()
	// Confident correct predictions give small loss, uncertain ones larger.
	want := []float32{
		float32(-math.Log(0.9 + bceEpsilon)),
		float32(-math.Log(0.9 + bceEpsilon)),
		float32(-math.Log(0.5 + bceEpsilon)),
	}
	assertFloat32Slice(t, want, got, "BCE")

	for i, v := range got {
		if v < 0 {
			t.Errorf("BCE[%d] = %v, loss must be non-negative", i, v)
		}
	}
}

func TestBinaryCrossEntropyExtremes(t *testing.T) {
	backend := New()

	// Predictions of exactly 0 and 1 must not produce Inf or NaN.
	pred := newFloat32(t, []float32{0, 1}, tensor.Shape{2})
	target := newFloat32(t, []float32{1, 0}, tensor.Shape{2})

	loss := backend.BinaryCrossEntropy(pred, target)

	for i, v := range loss.AsFloat32() {
		if math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
			t.Errorf("BCE[%d] = %v, want finite value", i, v)
		}
	}
}
