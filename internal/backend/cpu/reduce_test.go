package cpu

import (
	"math"
	"testing"

	"github.com/orbit-ml/orbit/internal/tensor"
)

func TestSum(t *testing.T) {
	backend := New()
	x := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	sum := backend.Sum(x)

	if !sum.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("Sum shape = %v, want [1]", sum.Shape())
	}
	if got := sum.AsFloat32()[0]; got != 21 {
		t.Errorf("Sum = %v, want 21", got)
	}
}

func TestSumDim(t *testing.T) {
	backend := New()
	// [[1, 2, 3],
	//  [4, 5, 6]]
	x := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	sum0 := backend.SumDim(x, 0, false)
	if !sum0.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("SumDim(0) shape = %v, want [3]", sum0.Shape())
	}
	assertFloat32Slice(t, []float32{5, 7, 9}, sum0.AsFloat32(), "SumDim(0)")

	sum1 := backend.SumDim(x, 1, false)
	assertFloat32Slice(t, []float32{6, 15}, sum1.AsFloat32(), "SumDim(1)")

	sumNeg := backend.SumDim(x, -1, true)
	if !sumNeg.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("SumDim(-1, keepdim) shape = %v, want [2 1]", sumNeg.Shape())
	}
}

func TestMeanDim(t *testing.T) {
	backend := New()
	x := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	mean := backend.MeanDim(x, 1, false)
	assertFloat32Slice(t, []float32{2, 5}, mean.AsFloat32(), "MeanDim(1)")
}

func TestExpLog(t *testing.T) {
	backend := New()
	x := newFloat32(t, []float32{0, 1, 2}, tensor.Shape{3})

	exp := backend.Exp(x)
	assertFloat32Slice(t, []float32{1, float32(math.E), float32(math.E * math.E)}, exp.AsFloat32(), "Exp")

	log := backend.Log(exp)
	assertFloat32Slice(t, []float32{0, 1, 2}, log.AsFloat32(), "Log(Exp(x))")
}

func TestLogPanicsOnNonPositive(t *testing.T) {
	backend := New()
	x := newFloat32(t, []float32{1, 0}, tensor.Shape{2})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for log of non-positive value")
		}
	}()
	backend.Log(x)
}

func TestSqrt(t *testing.T) {
	backend := New()
	x := newFloat32(t, []float32{0, 4, 9}, tensor.Shape{3})

	assertFloat32Slice(t, []float32{0, 2, 3}, backend.Sqrt(x).AsFloat32(), "Sqrt")
}
