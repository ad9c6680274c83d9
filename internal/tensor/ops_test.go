package tensor

import (
	"fmt"
	"math"
	"testing"
)

func TestTensorAdd(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{10, 20, 30, 40}, Shape{2, 2}, backend)

	c := a.Add(b)

	expected := []float32{11, 22, 33, 44}
	for i, exp := range expected {
		assertEqualFloat32(t, exp, c.Data()[i], fmt.Sprintf("Add[%d]", i))
	}
}

func TestTensorAddBroadcast(t *testing.T) {
	backend := NewMockBackend()
	// (2, 3) + (1, 3) broadcasts the row vector.
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	b, _ := FromSlice([]float32{10, 20, 30}, Shape{1, 3}, backend)

	c := a.Add(b)

	assertEqualShape(t, Shape{2, 3}, c.Shape(), "broadcast Add shape")
	expected := []float32{11, 22, 33, 14, 25, 36}
	for i, exp := range expected {
		assertEqualFloat32(t, exp, c.Data()[i], fmt.Sprintf("broadcast Add[%d]", i))
	}
}

func TestTensorSubMulDiv(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{10, 20, 30, 40}, Shape{2, 2}, backend)
	b, _ := FromSlice([]float32{2, 4, 5, 8}, Shape{2, 2}, backend)

	sub := a.Sub(b)
	expectedSub := []float32{8, 16, 25, 32}
	for i, exp := range expectedSub {
		assertEqualFloat32(t, exp, sub.Data()[i], fmt.Sprintf("Sub[%d]", i))
	}

	mul := a.Mul(b)
	expectedMul := []float32{20, 80, 150, 320}
	for i, exp := range expectedMul {
		assertEqualFloat32(t, exp, mul.Data()[i], fmt.Sprintf("Mul[%d]", i))
	}

	div := a.Div(b)
	expectedDiv := []float32{5, 5, 6, 5}
	for i, exp := range expectedDiv {
		assertEqualFloat32(t, exp, div.Data()[i], fmt.Sprintf("Div[%d]", i))
	}
}

func TestTensorMatMul(t *testing.T) {
	backend := NewMockBackend()
	// (2, 3) @ (3, 2) → (2, 2)
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
	b, _ := FromSlice([]float32{7, 8, 9, 10, 11, 12}, Shape{3, 2}, backend)

	c := a.MatMul(b)

	assertEqualShape(t, Shape{2, 2}, c.Shape(), "MatMul shape")
	expected := []float32{58, 64, 139, 154}
	for i, exp := range expected {
		assertEqualFloat32(t, exp, c.Data()[i], fmt.Sprintf("MatMul[%d]", i))
	}
}

func TestTensorTranspose(t *testing.T) {
	backend := NewMockBackend()
	// [[1, 2, 3],
	//  [4, 5, 6]]
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	at := a.T()

	assertEqualShape(t, Shape{3, 2}, at.Shape(), "T shape")
	assertEqualFloat32(t, 1, at.At(0, 0), "T[0,0]")
	assertEqualFloat32(t, 4, at.At(0, 1), "T[0,1]")
	assertEqualFloat32(t, 2, at.At(1, 0), "T[1,0]")
	assertEqualFloat32(t, 6, at.At(2, 1), "T[2,1]")
}

func TestTensorReshape(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	b := a.Reshape(3, 2)

	assertEqualShape(t, Shape{3, 2}, b.Shape(), "Reshape shape")
	// Row-major order is preserved.
	assertEqualFloat32(t, 3, b.At(1, 0), "Reshape[1,0]")
}

func TestTensorScalarOps(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{4}, backend)

	assertEqualFloat32(t, 6, a.MulScalar(2).At(2), "MulScalar")
	assertEqualFloat32(t, 13, a.AddScalar(10).At(2), "AddScalar")
	assertEqualFloat32(t, 2, a.SubScalar(1).At(2), "SubScalar")
	assertEqualFloat32(t, 1.5, a.DivScalar(2).At(2), "DivScalar")
}

func TestTensorExpLog(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{0, 1, 2}, Shape{3}, backend)

	exp := a.Exp()
	assertEqualFloat32(t, 1, exp.At(0), "Exp(0)")
	assertEqualFloat32(t, float32(math.E), exp.At(1), "Exp(1)")

	log := exp.Log()
	for i := 0; i < 3; i++ {
		assertEqualFloat32(t, a.At(i), log.At(i), fmt.Sprintf("Log(Exp(x))[%d]", i))
	}
}

func TestTensorSum(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	sum := a.Sum()
	assertEqualShape(t, Shape{1}, sum.Shape(), "Sum shape")
	assertEqualFloat32(t, 21, sum.Item(), "Sum value")
}

func TestTensorSumDim(t *testing.T) {
	backend := NewMockBackend()
	// [[1, 2, 3],
	//  [4, 5, 6]]
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	sum0 := a.SumDim(0, false)
	assertEqualShape(t, Shape{3}, sum0.Shape(), "SumDim(0) shape")
	expected0 := []float32{5, 7, 9}
	for i, exp := range expected0 {
		assertEqualFloat32(t, exp, sum0.At(i), fmt.Sprintf("SumDim(0)[%d]", i))
	}

	sum1 := a.SumDim(1, false)
	assertEqualShape(t, Shape{2}, sum1.Shape(), "SumDim(1) shape")
	expected1 := []float32{6, 15}
	for i, exp := range expected1 {
		assertEqualFloat32(t, exp, sum1.At(i), fmt.Sprintf("SumDim(1)[%d]", i))
	}

	sum0Keep := a.SumDim(0, true)
	assertEqualShape(t, Shape{1, 3}, sum0Keep.Shape(), "SumDim(0, keepdim) shape")
}

func TestTensorMeanDim(t *testing.T) {
	backend := NewMockBackend()
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)

	mean1 := a.MeanDim(1, false)
	assertEqualShape(t, Shape{2}, mean1.Shape(), "MeanDim(1) shape")
	assertEqualFloat32(t, 2, mean1.At(0), "MeanDim(1)[0]")
	assertEqualFloat32(t, 5, mean1.At(1), "MeanDim(1)[1]")
}
