package autodiff

import (
	"math"
	"testing"

	"github.com/orbit-ml/orbit/internal/backend/cpu"
	"github.com/orbit-ml/orbit/internal/tensor"
)

// Interface check: the decorator must satisfy the full backend contract.
var _ tensor.Backend = (*AutodiffBackend[*cpu.CPUBackend])(nil)
var _ BackwardCapable = (*AutodiffBackend[*cpu.CPUBackend])(nil)

func newBackend() *AutodiffBackend[*cpu.CPUBackend] {
	return New(cpu.New())
}

func fromSlice(t *testing.T, backend *AutodiffBackend[*cpu.CPUBackend], data []float32, shape tensor.Shape) *tensor.Tensor[float32, *AutodiffBackend[*cpu.CPUBackend]] {
	t.Helper()
	tt, err := tensor.FromSlice(data, shape, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return tt
}

func assertGrad(t *testing.T, expected []float32, grad *tensor.RawTensor, msg string) {
	t.Helper()
	if grad == nil {
		t.Fatalf("%s: gradient is nil", msg)
	}
	got := grad.AsFloat32()
	if len(got) != len(expected) {
		t.Fatalf("%s: gradient length %d, want %d", msg, len(got), len(expected))
	}
	for i := range expected {
		if math.Abs(float64(expected[i]-got[i])) > 1e-4 {
			t.Errorf("%s[%d]: expected %v, got %v", msg, i, expected[i], got[i])
		}
	}
}

func TestBackwardAdd(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	a := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{2})
	b := fromSlice(t, backend, []float32{3, 4}, tensor.Shape{2})
	c := a.Add(b)

	grads := Backward(c, backend)

	assertGrad(t, []float32{1, 1}, grads[a.Raw()], "grad a")
	assertGrad(t, []float32{1, 1}, grads[b.Raw()], "grad b")
}

func TestBackwardMulSquare(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// y = x², dy/dx = 2x
	x := fromSlice(t, backend, []float32{2, 3}, tensor.Shape{2})
	y := x.Mul(x)

	grads := Backward(y, backend)

	assertGrad(t, []float32{4, 6}, grads[x.Raw()], "dy/dx")
}

func TestBackwardSub(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	a := fromSlice(t, backend, []float32{5, 5}, tensor.Shape{2})
	b := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{2})
	c := a.Sub(b)

	grads := Backward(c, backend)

	assertGrad(t, []float32{1, 1}, grads[a.Raw()], "grad a")
	assertGrad(t, []float32{-1, -1}, grads[b.Raw()], "grad b")
}

func TestBackwardDiv(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// y = a/b, dy/da = 1/b, dy/db = -a/b²
	a := fromSlice(t, backend, []float32{6}, tensor.Shape{1})
	b := fromSlice(t, backend, []float32{2}, tensor.Shape{1})
	y := a.Div(b)

	grads := Backward(y, backend)

	assertGrad(t, []float32{0.5}, grads[a.Raw()], "dy/da")
	assertGrad(t, []float32{-1.5}, grads[b.Raw()], "dy/db")
}

func TestBackwardMatMul(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// C = A @ B with grad_C = ones:
	// grad_A = ones @ B^T, grad_B = A^T @ ones
	a := fromSlice(t, backend, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := fromSlice(t, backend, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})
	c := a.MatMul(b)

	grads := Backward(c, backend)

	assertGrad(t, []float32{11, 15, 11, 15}, grads[a.Raw()], "grad A")
	assertGrad(t, []float32{4, 4, 6, 6}, grads[b.Raw()], "grad B")
}

func TestBackwardBroadcastBias(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// Broadcast add as in a linear layer: x[2,3] + bias[1,3].
	// The bias gradient is summed over the batch dimension.
	x := fromSlice(t, backend, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := fromSlice(t, backend, []float32{10, 20, 30}, tensor.Shape{1, 3})
	y := x.Add(bias)

	grads := Backward(y, backend)

	assertGrad(t, []float32{1, 1, 1, 1, 1, 1}, grads[x.Raw()], "grad x")
	assertGrad(t, []float32{2, 2, 2}, grads[bias.Raw()], "grad bias")
}

func TestBackwardTransposeFlow(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// y = x @ w^T: gradient must reach the original w, not just the
	// transposed copy.
	x := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{1, 2})
	w := fromSlice(t, backend, []float32{3, 4}, tensor.Shape{1, 2})
	y := x.MatMul(w.T())

	grads := Backward(y, backend)

	assertGrad(t, []float32{3, 4}, grads[x.Raw()], "grad x")
	assertGrad(t, []float32{1, 2}, grads[w.Raw()], "grad w")
}

func TestBackwardSum(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x := fromSlice(t, backend, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	loss := x.Mul(x).Sum()

	grads := Backward(loss, backend)

	assertGrad(t, []float32{2, 4, 6, 8}, grads[x.Raw()], "d(sum x²)/dx")
}

func TestBackwardReLU(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	x := fromSlice(t, backend, []float32{-1, 2, -3, 4}, tensor.Shape{4})
	y := tensor.New[float32](backend.ReLU(x.Raw()), backend)

	grads := Backward(y, backend)

	assertGrad(t, []float32{0, 1, 0, 1}, grads[x.Raw()], "ReLU grad")
}

func TestBackwardSigmoid(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// σ(0) = 0.5, σ'(0) = 0.25
	x := fromSlice(t, backend, []float32{0}, tensor.Shape{1})
	y := tensor.New[float32](backend.Sigmoid(x.Raw()), backend)

	grads := Backward(y, backend)

	assertGrad(t, []float32{0.25}, grads[x.Raw()], "Sigmoid grad")
}

func TestBackwardBinaryCrossEntropy(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	pred := fromSlice(t, backend, []float32{0.8, 0.3}, tensor.Shape{2, 1})
	target := fromSlice(t, backend, []float32{1, 0}, tensor.Shape{2, 1})

	loss := tensor.New[float32](backend.BinaryCrossEntropy(pred.Raw(), target.Raw()), backend)
	total := loss.Sum()

	grads := Backward(total, backend)

	// dloss/dp = -y/(p+eps) + (1-y)/(1-p+eps)
	assertGrad(t, []float32{-1.0 / 0.8, 1.0 / 0.7}, grads[pred.Raw()], "BCE grad")

	if _, ok := grads[target.Raw()]; ok {
		t.Error("targets must not receive gradients")
	}
}

func TestBackwardScalarOps(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// y = 3x + 1, dy/dx = 3
	x := fromSlice(t, backend, []float32{2, 4}, tensor.Shape{2})
	y := x.MulScalar(3).AddScalar(1)

	grads := Backward(y, backend)

	assertGrad(t, []float32{3, 3}, grads[x.Raw()], "scalar chain grad")
}

func TestGradientAccumulation(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	// y = x + x: gradient accumulates to 2 per element.
	x := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{2})
	y := x.Add(x)

	grads := Backward(y, backend)

	assertGrad(t, []float32{2, 2}, grads[x.Raw()], "accumulated grad")
}

func TestTapeClearAndRecordingState(t *testing.T) {
	backend := newBackend()
	tape := backend.Tape()

	a := fromSlice(t, backend, []float32{1}, tensor.Shape{1})
	b := fromSlice(t, backend, []float32{2}, tensor.Shape{1})

	// Not recording: nothing lands on the tape.
	a.Add(b)
	if tape.NumOps() != 0 {
		t.Errorf("tape recorded %d ops while stopped", tape.NumOps())
	}

	tape.StartRecording()
	a = fromSlice(t, backend, []float32{1}, tensor.Shape{1})
	a.Add(b)
	if tape.NumOps() != 1 {
		t.Errorf("tape has %d ops, want 1", tape.NumOps())
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("tape has %d ops after Clear", tape.NumOps())
	}
	if !tape.IsRecording() {
		t.Error("Clear must preserve recording state")
	}
}

func TestForwardDoesNotModifyInputsWhileRecording(t *testing.T) {
	backend := newBackend()
	backend.Tape().StartRecording()

	a := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{2})
	b := fromSlice(t, backend, []float32{3, 4}, tensor.Shape{2})

	c := a.Add(b)

	if c.Raw() == a.Raw() {
		t.Error("forward pass must not reuse input buffers under autodiff")
	}
	assertGrad(t, []float32{1, 2}, a.Raw(), "input a preserved")
}
