// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape, the static description of a tensor used for
// shape inference.
//
// A Shape is a DType (see github.com/gomlx/gopjrt/dtypes) plus an ordered list
// of dimensions. Differently from the shape of a concrete tensor, a dimension
// in a static shape may be unknown (symbolic): graph construction happens
// before any values exist, and an unknown batch size (or any unknown axis) is
// represented with UnknownDim and propagated through shape inference.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a tensor.
//   - Axis: the index of a dimension. We refer to the index as "axis" (plural
//     axes) and to its size as its dimension.
//   - DType: the data type of the unit element of a tensor.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// UnknownDim marks a dimension whose size is not known at graph-construction
// time. It is printed as "?" and propagated by shape inference.
const UnknownDim = -1

// Shape represents the shape of a tensor or the statically inferred shape of
// the value produced by a graph node.
//
// Use Make to create a new shape. Dimensions may be UnknownDim.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape with the given dtype and dimensions. Each dimension
// must be non-negative or UnknownDim, otherwise it panics. Zero-sized
// dimensions are valid: pooling an input smaller than the window with the
// border-ignoring policy yields an empty axis.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim < 0 && dim != UnknownDim {
			exceptions.Panicf("shapes.Make(%s): dimensions must be non-negative or UnknownDim, got %v", dtype, dimensions)
		}
	}
	return s
}

// Scalar returns a rank-0 shape of the given type.
func Scalar[T dtypes.NumberNotComplex]() Shape {
	return Shape{DType: dtypes.FromGenericsType[T]()}
}

// Invalid returns an invalid shape: Invalid().Ok() == false.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns whether this is a valid Shape. The zero value Shape{} is invalid.
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType }

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape has rank 0.
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// IsFullyDefined returns whether every dimension is known.
func (s Shape) IsFullyDefined() bool {
	return !slices.Contains(s.Dimensions, UnknownDim)
}

// Dim returns the dimension of the given axis. A negative axis counts from
// the end, so Dim(-1) is the last dimension. Panics on an out-of-bounds axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// Shape returns a shallow copy of itself. It implements the HasShape interface.
func (s Shape) Shape() Shape { return s }

// String implements fmt.Stringer, pretty-printing the shape. Unknown
// dimensions are printed as "?".
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	parts := make([]string, 0, s.Rank())
	for _, dim := range s.Dimensions {
		if dim == UnknownDim {
			parts = append(parts, "?")
		} else {
			parts = append(parts, fmt.Sprintf("%d", dim))
		}
	}
	return fmt.Sprintf("(%s)[%s]", s.DType, strings.Join(parts, " "))
}

// Size returns the number of elements of DType needed for this shape, the
// product of all dimensions. If any dimension is unknown, it returns
// UnknownDim.
func (s Shape) Size() int {
	size := 1
	for _, d := range s.Dimensions {
		if d == UnknownDim {
			return UnknownDim
		}
		size *= d
	}
	return size
}

// Memory returns the number of bytes needed to store a tensor of this shape.
// It panics if the shape is not fully defined.
func (s Shape) Memory() uintptr {
	if !s.IsFullyDefined() {
		exceptions.Panicf("Shape.Memory() undefined for not fully defined shape %s", s)
	}
	return s.DType.Memory() * uintptr(s.Size())
}

// Equal compares two shapes for equality: dtype and dimensions are compared.
// Unknown dimensions only match unknown dimensions.
func (s Shape) Equal(s2 Shape) bool {
	if s.DType != s2.DType {
		return false
	}
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// EqualDimensions compares the dimensions of two shapes; dtypes may differ.
func (s Shape) EqualDimensions(s2 Shape) bool {
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}

// HasShape is an interface for objects that have an associated Shape:
// tensors and Shape itself. Layer constructors accept any HasShape as the
// incoming input, so one can start from a concrete tensor or from an
// explicit, possibly partially unknown, Shape.
type HasShape interface {
	Shape() Shape
}
