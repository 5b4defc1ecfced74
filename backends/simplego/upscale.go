// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package simplego

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"

	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
	"github.com/poolops/poolops/types/xslices"
)

// Repeat replicates every element of x factor times, contiguously, along the
// given axis: [a, b] with factor 2 becomes [a, a, b, b]. The axis dimension
// is multiplied by factor.
func Repeat(x *tensors.Tensor, axis, factor int) *tensors.Tensor {
	if axis < 0 || axis >= x.Rank() {
		exceptions.Panicf("simplego.Repeat: axis=%d out-of-range for shape %s", axis, x.Shape())
	}
	if factor < 1 {
		exceptions.Panicf("simplego.Repeat: factor=%d must be >= 1", factor)
	}
	switch x.DType() {
	case dtypes.Float16:
		return repeat[float16.Float16](x, axis, factor)
	case dtypes.Float32:
		return repeat[float32](x, axis, factor)
	case dtypes.Float64:
		return repeat[float64](x, axis, factor)
	case dtypes.Int32:
		return repeat[int32](x, axis, factor)
	case dtypes.Int64:
		return repeat[int64](x, axis, factor)
	default:
		unsupportedDType("Repeat", x.DType())
	}
	panic(nil) // Disable lint warning.
}

// repeat only moves values around, so it works on any supported type
// directly, float16 included.
func repeat[T tensors.Supported](x *tensors.Tensor, axis, factor int) *tensors.Tensor {
	dims := x.Shape().Dimensions
	outer, mid, inner := xslices.Product(dims[:axis]), dims[axis], xslices.Product(dims[axis+1:])

	outDims := x.Shape().Clone().Dimensions
	outDims[axis] *= factor
	in := tensors.FlatData[T](x)
	outFlat := make([]T, len(in)*factor)

	pos := 0
	for o := 0; o < outer; o++ {
		for m := 0; m < mid; m++ {
			block := in[(o*mid+m)*inner : (o*mid+m+1)*inner]
			for r := 0; r < factor; r++ {
				copy(outFlat[pos:pos+inner], block)
				pos += inner
			}
		}
	}
	return tensors.FromFlatDataAndDimensions(outFlat, outDims...)
}

// Dilate scatters x into a zero-filled tensor whose axes are multiplied by
// the given factors (one per axis, 1 meaning unchanged): the element at
// index [i, j, ...] lands at [i*factors[0], j*factors[1], ...] and every
// other position is zero.
//
// The output is allocated dense: the cost is proportional to the output
// size, not the input size.
func Dilate(x *tensors.Tensor, factors []int) *tensors.Tensor {
	if len(factors) != x.Rank() {
		exceptions.Panicf("simplego.Dilate: got %d factors for shape %s, expected one per axis", len(factors), x.Shape())
	}
	for axis, factor := range factors {
		if factor < 1 {
			exceptions.Panicf("simplego.Dilate: factor must be >= 1, got %d for axis %d", factor, axis)
		}
	}
	switch x.DType() {
	case dtypes.Float16:
		return dilate[float16.Float16](x, factors)
	case dtypes.Float32:
		return dilate[float32](x, factors)
	case dtypes.Float64:
		return dilate[float64](x, factors)
	case dtypes.Int32:
		return dilate[int32](x, factors)
	case dtypes.Int64:
		return dilate[int64](x, factors)
	default:
		unsupportedDType("Dilate", x.DType())
	}
	panic(nil) // Disable lint warning.
}

func dilate[T tensors.Supported](x *tensors.Tensor, factors []int) *tensors.Tensor {
	dims := x.Shape().Dimensions
	rank := len(dims)
	outDims := make([]int, rank)
	for axis, dim := range dims {
		outDims[axis] = dim * factors[axis]
	}
	out := tensors.Zeros(shapes.Make(x.DType(), outDims...))
	outFlat := tensors.FlatData[T](out)
	outStrides := rowMajorStrides(outDims)

	in := tensors.FlatData[T](x)
	indices := make([]int, rank)
	for _, v := range in {
		outIdx := 0
		for axis, idx := range indices {
			outIdx += idx * factors[axis] * outStrides[axis]
		}
		outFlat[outIdx] = v

		for axis := rank - 1; axis >= 0; axis-- {
			indices[axis]++
			if indices[axis] < dims[axis] {
				break
			}
			indices[axis] = 0
		}
	}
	return out
}
