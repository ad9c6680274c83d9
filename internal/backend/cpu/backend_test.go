package cpu

import (
	"math"
	"testing"

	"github.com/orbit-ml/orbit/internal/tensor"
)

func newFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func assertFloat32Slice(t *testing.T, expected, actual []float32, msg string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("%s: length mismatch: %d vs %d", msg, len(expected), len(actual))
	}
	for i := range expected {
		if math.Abs(float64(expected[i]-actual[i])) > 1e-5 {
			t.Errorf("%s[%d]: expected %v, got %v", msg, i, expected[i], actual[i])
		}
	}
}

func TestAdd(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := newFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	c := backend.Add(a, b)

	assertFloat32Slice(t, []float32{11, 22, 33, 44}, c.AsFloat32(), "Add")
}

func TestAddInplace(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := newFloat32(t, []float32{3, 4}, tensor.Shape{2})

	// a is unique, so the backend may reuse its buffer.
	c := backend.Add(a, b)

	if c != a {
		t.Error("expected inplace add to return the left operand")
	}
	assertFloat32Slice(t, []float32{4, 6}, c.AsFloat32(), "inplace Add")
}

func TestAddNotInplaceWhenShared(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := newFloat32(t, []float32{3, 4}, tensor.Shape{2})

	clone := a.Clone()
	defer clone.Release()

	c := backend.Add(a, b)

	if c == a {
		t.Error("shared buffer must not be updated in place")
	}
	assertFloat32Slice(t, []float32{1, 2}, a.AsFloat32(), "left operand unchanged")
	assertFloat32Slice(t, []float32{4, 6}, c.AsFloat32(), "Add result")
}

func TestAddBroadcast(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := newFloat32(t, []float32{10, 20, 30}, tensor.Shape{1, 3})

	c := backend.Add(a, b)

	if !c.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("broadcast Add shape = %v, want [2 3]", c.Shape())
	}
	assertFloat32Slice(t, []float32{11, 22, 33, 14, 25, 36}, c.AsFloat32(), "broadcast Add")
}

func TestSubMulDiv(t *testing.T) {
	backend := New()

	a := newFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{4})
	b := newFloat32(t, []float32{2, 4, 5, 8}, tensor.Shape{4})
	assertFloat32Slice(t, []float32{8, 16, 25, 32}, backend.Sub(a.Clone(), b).AsFloat32(), "Sub")

	a = newFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{4})
	assertFloat32Slice(t, []float32{20, 80, 150, 320}, backend.Mul(a.Clone(), b).AsFloat32(), "Mul")

	a = newFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{4})
	assertFloat32Slice(t, []float32{5, 5, 6, 5}, backend.Div(a.Clone(), b).AsFloat32(), "Div")
}

func TestMatMul(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	b := newFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	c := backend.MatMul(a, b)

	if !c.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("MatMul shape = %v, want [2 2]", c.Shape())
	}
	assertFloat32Slice(t, []float32{58, 64, 139, 154}, c.AsFloat32(), "MatMul")
}

func TestMatMulShapeMismatch(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := newFloat32(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for incompatible MatMul shapes")
		}
	}()
	backend.MatMul(a, b)
}

func TestTranspose2D(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	at := backend.Transpose(a)

	if !at.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Transpose shape = %v, want [3 2]", at.Shape())
	}
	assertFloat32Slice(t, []float32{1, 4, 2, 5, 3, 6}, at.AsFloat32(), "Transpose")
}

func TestReshape(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	b := backend.Reshape(a, tensor.Shape{3, 2})

	if !b.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Reshape shape = %v, want [3 2]", b.Shape())
	}
	assertFloat32Slice(t, a.AsFloat32(), b.AsFloat32(), "Reshape data")
}

func TestScalarOps(t *testing.T) {
	backend := New()
	a := newFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	assertFloat32Slice(t, []float32{2, 4, 6, 8}, backend.MulScalar(a, float32(2)).AsFloat32(), "MulScalar")
	assertFloat32Slice(t, []float32{11, 12, 13, 14}, backend.AddScalar(a, float32(10)).AsFloat32(), "AddScalar")
	assertFloat32Slice(t, []float32{0, 1, 2, 3}, backend.SubScalar(a, float32(1)).AsFloat32(), "SubScalar")
	assertFloat32Slice(t, []float32{0.5, 1, 1.5, 2}, backend.DivScalar(a, float32(2)).AsFloat32(), "DivScalar")
}
