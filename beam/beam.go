// Package beam replicates decoder state along the batch axis for beam
// search.
//
// Replication is contiguous per original example: row i*k+j of the tiled
// state is a copy of original row i. Any downstream reshape to
// (batch*k, ...) therefore keeps each beam group together, which the beam
// bookkeeping depends on. Repeating the whole block k times instead would
// interleave the groups and break it.
package beam

import (
	"fmt"

	"github.com/loom-ml/loom/tensor"
)

// State is decoder state handed to the tiler: either a single tensor or a
// pair of tensors for paired recurrent state.
type State[T tensor.DType] interface {
	sealedState()
}

// Single wraps one state tensor.
type Single[T tensor.DType] struct {
	Value *tensor.Tensor[T]
}

// Paired holds both members of a paired recurrent state, such as the
// hidden and cell tensors of an LSTM.
type Paired[T tensor.DType] struct {
	First  *tensor.Tensor[T]
	Second *tensor.Tensor[T]
}

func (Single[T]) sealedState() {}
func (Paired[T]) sealedState() {}

// Tile replicates a state count times along dim. Paired state has both
// members tiled with the same count and dim.
func Tile[T tensor.DType](s State[T], count, dim int) (State[T], error) {
	switch st := s.(type) {
	case Single[T]:
		tiled, err := TileTensor(st.Value, count, dim)
		if err != nil {
			return nil, err
		}
		return Single[T]{Value: tiled}, nil
	case Paired[T]:
		first, err := TileTensor(st.First, count, dim)
		if err != nil {
			return nil, err
		}
		second, err := TileTensor(st.Second, count, dim)
		if err != nil {
			return nil, err
		}
		return Paired[T]{First: first, Second: second}, nil
	default:
		return nil, fmt.Errorf("tile: unsupported state %T", s)
	}
}

// TileTensor replicates x count times along dim: the target axis grows
// from n to n*count, with row i*count+j a copy of original row i.
//
// For dim != 0 the target axis is transposed to the front, the row-major
// replication applied, and the axes transposed back.
func TileTensor[T tensor.DType](x *tensor.Tensor[T], count, dim int) (*tensor.Tensor[T], error) {
	if count < 1 {
		return nil, fmt.Errorf("tile: replication count must be at least 1, got %d", count)
	}
	rank := x.Rank()
	if dim < 0 || dim >= rank {
		return nil, fmt.Errorf("tile: dim %d out of range for rank %d tensor", dim, rank)
	}

	perm := make([]int, rank)
	for i := range perm {
		perm[i] = i
	}
	if dim != 0 {
		perm[0], perm[dim] = perm[dim], perm[0]
		var err error
		x, err = x.Transpose(perm...)
		if err != nil {
			return nil, fmt.Errorf("tile: %w", err)
		}
	}

	shape := x.Shape()
	rows := shape[0]
	block := x.NumElements() / rows
	data := x.Data()

	out := make([]T, x.NumElements()*count)
	for i := 0; i < rows; i++ {
		src := data[i*block : (i+1)*block]
		for j := 0; j < count; j++ {
			copy(out[(i*count+j)*block:(i*count+j+1)*block], src)
		}
	}

	outShape := shape.Clone()
	outShape[0] = rows * count
	tiled, err := tensor.FromSlice(out, outShape)
	if err != nil {
		return nil, fmt.Errorf("tile: %w", err)
	}

	if dim != 0 {
		// The axis swap is its own inverse.
		tiled, err = tiled.Transpose(perm...)
		if err != nil {
			return nil, fmt.Errorf("tile: %w", err)
		}
	}
	return tiled, nil
}
