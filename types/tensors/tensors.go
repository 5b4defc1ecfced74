// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors provides a concrete, dense, in-memory Tensor used as the
// input and output of layer computations.
//
// A Tensor is a Shape plus a flat slice of values in row-major order. The
// storage is dtype-erased; use the generic FlatData to access it with the
// concrete Go type. Tensors are created with FromFlatDataAndDimensions,
// FromScalarAndDimensions or Zeros.
//
// Float16 values (github.com/x448/float16) are stored as such, but engines
// compute on them by converting to float32 and back.
package tensors

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"

	"github.com/poolops/poolops/types/shapes"
)

// Supported lists the Go types a Tensor can hold.
type Supported interface {
	float16.Float16 | float32 | float64 | int32 | int64
}

// Tensor is a dense multi-dimensional array of one of the Supported types,
// in row-major order.
type Tensor struct {
	shape shapes.Shape
	flat  any // []T with T matching shape.DType.
}

func newTensor(shape shapes.Shape, flat any) *Tensor {
	return &Tensor{shape: shape, flat: flat}
}

// FromFlatDataAndDimensions creates a tensor with the given dimensions from
// the flat (row-major) data. The size of data must match the product of the
// dimensions, and the dimensions must all be known.
func FromFlatDataAndDimensions[T Supported](data []T, dimensions ...int) *Tensor {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if !shape.IsFullyDefined() {
		exceptions.Panicf("tensors.FromFlatDataAndDimensions: dimensions %v must be known", dimensions)
	}
	if len(data) != shape.Size() {
		exceptions.Panicf("tensors.FromFlatDataAndDimensions: data has %d values, but shape %s has %d elements",
			len(data), shape, shape.Size())
	}
	return newTensor(shape, slices.Clone(data))
}

// FromScalarAndDimensions creates a tensor with the given dimensions, with
// every element set to value.
func FromScalarAndDimensions[T Supported](value T, dimensions ...int) *Tensor {
	shape := shapes.Make(dtypes.FromGenericsType[T](), dimensions...)
	if !shape.IsFullyDefined() {
		exceptions.Panicf("tensors.FromScalarAndDimensions: dimensions %v must be known", dimensions)
	}
	flat := make([]T, shape.Size())
	for ii := range flat {
		flat[ii] = value
	}
	return newTensor(shape, flat)
}

// Zeros returns a zero-initialized tensor of the given shape. The shape must
// be fully defined and of a supported dtype.
func Zeros(shape shapes.Shape) *Tensor {
	if !shape.IsFullyDefined() {
		exceptions.Panicf("tensors.Zeros: shape %s must be fully defined", shape)
	}
	size := shape.Size()
	var flat any
	switch shape.DType {
	case dtypes.Float16:
		flat = make([]float16.Float16, size)
	case dtypes.Float32:
		flat = make([]float32, size)
	case dtypes.Float64:
		flat = make([]float64, size)
	case dtypes.Int32:
		flat = make([]int32, size)
	case dtypes.Int64:
		flat = make([]int64, size)
	default:
		exceptions.Panicf("tensors.Zeros: unsupported dtype %s", shape.DType)
	}
	return newTensor(shape, flat)
}

// FlatData returns the flat (row-major) data of the tensor. T must match the
// tensor's dtype, otherwise it panics. The returned slice aliases the
// tensor's storage: writes to it are visible in the tensor.
func FlatData[T Supported](t *Tensor) []T {
	flat, ok := t.flat.([]T)
	if !ok {
		exceptions.Panicf("tensors.FlatData[%s] called on tensor of dtype %s",
			dtypes.FromGenericsType[T](), t.DType())
	}
	return flat
}

// Shape of the tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the tensor's elements.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Rank of the tensor's shape.
func (t *Tensor) Rank() int { return t.shape.Rank() }

// Size is the number of elements of the tensor.
func (t *Tensor) Size() int { return t.shape.Size() }

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	t2 := &Tensor{shape: t.shape.Clone()}
	switch flat := t.flat.(type) {
	case []float16.Float16:
		t2.flat = slices.Clone(flat)
	case []float32:
		t2.flat = slices.Clone(flat)
	case []float64:
		t2.flat = slices.Clone(flat)
	case []int32:
		t2.flat = slices.Clone(flat)
	case []int64:
		t2.flat = slices.Clone(flat)
	}
	return t2
}

// Equal returns whether the two tensors have the same shape, dtype and values.
func (t *Tensor) Equal(other *Tensor) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	switch flat := t.flat.(type) {
	case []float16.Float16:
		return slices.Equal(flat, other.flat.([]float16.Float16))
	case []float32:
		return slices.Equal(flat, other.flat.([]float32))
	case []float64:
		return slices.Equal(flat, other.flat.([]float64))
	case []int32:
		return slices.Equal(flat, other.flat.([]int32))
	case []int64:
		return slices.Equal(flat, other.flat.([]int64))
	}
	return false
}

// String prints the tensor's shape and values.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%s%v", t.shape, t.flat)
}
