// Copyright 2026 The Loom Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API for the Loom toolkit.
//
// It re-exports the dense row-major tensor used by the data-preparation
// pipeline and the beam tiler:
//   - Tensor[T]: generic dense tensor (float32, float64, int32, int64)
//   - Shape: dimension list with stride arithmetic
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	y, err := x.Transpose() // Shape: [3, 2]
package tensor

import (
	"github.com/loom-ml/loom/internal/tensor"
)

// DType is the constraint for supported tensor element types.
type DType = tensor.DType

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major tensor of element type T.
type Tensor[T DType] = tensor.Tensor[T]

// FromSlice creates a tensor from a flat slice and a shape.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a zero-filled tensor with the given shape.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T DType](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}
