package tensor

import "fmt"

// DType is the constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// Tensor is a dense row-major tensor of element type T.
//
// The buffer is always contiguous: Reshape shares the buffer under a new
// shape, Transpose materializes a contiguous copy. There is no device or
// backend indirection here; the data-preparation core only ever needs
// CPU-side shape arithmetic.
type Tensor[T DType] struct {
	shape Shape
	data  []T
}

// FromSlice creates a tensor from a flat slice and a shape.
// The slice is copied, so the caller may reuse it afterwards.
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	buf := make([]T, len(data))
	copy(buf, data)
	return &Tensor[T]{shape: shape.Clone(), data: buf}, nil
}

// Zeros creates a zero-filled tensor with the given shape.
// Panics if the shape is invalid (programmer error).
func Zeros[T DType](shape Shape) *Tensor[T] {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return &Tensor[T]{
		shape: shape.Clone(),
		data:  make([]T, shape.NumElements()),
	}
}

// Shape returns the tensor dimensions.
func (t *Tensor[T]) Shape() Shape {
	return t.shape.Clone()
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor[T]) NumElements() int {
	return t.shape.NumElements()
}

// Data returns the underlying flat buffer in row-major order.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// offset converts a multi-index to a flat buffer offset.
func (t *Tensor[T]) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("index rank %d does not match tensor rank %d", len(indices), len(t.shape)))
	}
	strides := t.shape.ComputeStrides()
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of range for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		off += idx * strides[i]
	}
	return off
}

// At returns the element at the given multi-index.
func (t *Tensor[T]) At(indices ...int) T {
	return t.data[t.offset(indices)]
}

// Set stores a value at the given multi-index.
func (t *Tensor[T]) Set(value T, indices ...int) {
	t.data[t.offset(indices)] = value
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[T]) Clone() *Tensor[T] {
	buf := make([]T, len(t.data))
	copy(buf, t.data)
	return &Tensor[T]{shape: t.shape.Clone(), data: buf}
}

// Equal reports whether two tensors have identical shape and contents.
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Reshape returns a tensor sharing this buffer under a new shape.
// The element count must be unchanged.
func (t *Tensor[T]) Reshape(shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	if shape.NumElements() != t.shape.NumElements() {
		return nil, fmt.Errorf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.shape, t.shape.NumElements(), shape, shape.NumElements())
	}
	return &Tensor[T]{shape: shape.Clone(), data: t.data}, nil
}

// Transpose permutes the tensor dimensions and returns a contiguous copy.
// With no arguments the dimension order is reversed.
func (t *Tensor[T]) Transpose(axes ...int) (*Tensor[T], error) {
	rank := len(t.shape)
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		return nil, fmt.Errorf("transpose: got %d axes for rank %d tensor", len(axes), rank)
	}
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank {
			return nil, fmt.Errorf("transpose: axis %d out of range for rank %d", ax, rank)
		}
		if seen[ax] {
			return nil, fmt.Errorf("transpose: duplicate axis %d", ax)
		}
		seen[ax] = true
	}

	outShape := make(Shape, rank)
	for i, ax := range axes {
		outShape[i] = t.shape[ax]
	}

	out := &Tensor[T]{shape: outShape, data: make([]T, len(t.data))}
	if rank == 0 {
		copy(out.data, t.data)
		return out, nil
	}

	inStrides := t.shape.ComputeStrides()

	// Walk the output in row-major order, gathering from the permuted
	// source offsets.
	idx := make([]int, rank)
	for flat := 0; flat < len(out.data); flat++ {
		srcOff := 0
		for d := 0; d < rank; d++ {
			srcOff += idx[d] * inStrides[axes[d]]
		}
		out.data[flat] = t.data[srcOff]
		for d := rank - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < outShape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out, nil
}
