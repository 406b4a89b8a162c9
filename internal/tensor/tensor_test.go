package tensor

import (
	"testing"
)

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// Shape tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},         // Scalar
		{Shape{5}, 5},        // 1D
		{Shape{3, 4}, 12},    // 2D
		{Shape{2, 3, 4}, 24}, // 3D
		{Shape{1, 1, 1}, 1},  // Ones
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Shape{2, 3}.Validate() = %v, want nil", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Shape{2, 0}.Validate() = nil, want error")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("Shape{-1, 3}.Validate() = nil, want error")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("ComputeStrides() = %v, want %v", strides, want)
			break
		}
	}
}

// Tensor tests

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	assertEqualShape(t, Shape{2, 3}, x.Shape(), "FromSlice shape")
	if got := x.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %v, want 6", got)
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromSlice([]int64{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("FromSlice with length mismatch: want error, got nil")
	}
}

func TestZeros(t *testing.T) {
	x := Zeros[float64](Shape{3, 2})
	for i, v := range x.Data() {
		if v != 0 {
			t.Errorf("Zeros data[%d] = %v, want 0", i, v)
		}
	}
}

func TestAtSet(t *testing.T) {
	x := Zeros[int64](Shape{2, 2})
	x.Set(7, 1, 0)
	if got := x.At(1, 0); got != 7 {
		t.Errorf("At(1, 0) = %d, want 7", got)
	}
	if got := x.At(0, 1); got != 0 {
		t.Errorf("At(0, 1) = %d, want 0", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	x, _ := FromSlice([]int32{1, 2, 3, 4}, Shape{2, 2})
	y := x.Clone()
	y.Set(99, 0, 0)
	if x.At(0, 0) != 1 {
		t.Error("Clone shares data with original")
	}
}

func TestReshape(t *testing.T) {
	x, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	y, err := x.Reshape(Shape{3, 2})
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	assertEqualShape(t, Shape{3, 2}, y.Shape(), "Reshape shape")
	if got := y.At(2, 1); got != 6 {
		t.Errorf("reshaped At(2, 1) = %v, want 6", got)
	}

	if _, err := x.Reshape(Shape{4, 2}); err == nil {
		t.Error("Reshape to wrong element count: want error, got nil")
	}
}

func TestTranspose2D(t *testing.T) {
	// [[1, 2, 3], [4, 5, 6]] -> [[1, 4], [2, 5], [3, 6]]
	x, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	y, err := x.Transpose()
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	assertEqualShape(t, Shape{3, 2}, y.Shape(), "Transpose shape")
	want := []float32{1, 4, 2, 5, 3, 6}
	for i, v := range want {
		if y.Data()[i] != v {
			t.Errorf("Transpose data = %v, want %v", y.Data(), want)
			break
		}
	}
}

func TestTranspose3DPermutation(t *testing.T) {
	x, _ := FromSlice([]int64{
		0, 1, 2, 3, 4, 5,
		6, 7, 8, 9, 10, 11,
	}, Shape{2, 3, 2})

	y, err := x.Transpose(1, 0, 2)
	if err != nil {
		t.Fatalf("Transpose(1, 0, 2): %v", err)
	}
	assertEqualShape(t, Shape{3, 2, 2}, y.Shape(), "permuted shape")
	// y[j][i][k] == x[i][j][k]
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 2; k++ {
				if y.At(j, i, k) != x.At(i, j, k) {
					t.Fatalf("y[%d,%d,%d] = %d, want %d", j, i, k, y.At(j, i, k), x.At(i, j, k))
				}
			}
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6, 7, 8}, Shape{2, 2, 2})
	y, err := x.Transpose(2, 0, 1)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	// Inverse permutation of (2, 0, 1) is (1, 2, 0).
	z, err := y.Transpose(1, 2, 0)
	if err != nil {
		t.Fatalf("inverse Transpose: %v", err)
	}
	if !z.Equal(x) {
		t.Errorf("round-trip transpose changed tensor: %v vs %v", z.Data(), x.Data())
	}
}

func TestTransposeInvalidAxes(t *testing.T) {
	x := Zeros[float32](Shape{2, 3})
	if _, err := x.Transpose(0, 2); err == nil {
		t.Error("Transpose with out-of-range axis: want error, got nil")
	}
	if _, err := x.Transpose(0, 0); err == nil {
		t.Error("Transpose with duplicate axis: want error, got nil")
	}
	if _, err := x.Transpose(0); err == nil {
		t.Error("Transpose with wrong axis count: want error, got nil")
	}
}
