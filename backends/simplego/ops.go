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

// Reshape returns a tensor with the same flat data and the new dimensions.
// The total size cannot change, it's just a "reinterpretation" of the same
// row-major data.
func Reshape(x *tensors.Tensor, dimensions ...int) *tensors.Tensor {
	newShape := shapes.Make(x.DType(), dimensions...)
	if !newShape.IsFullyDefined() || newShape.Size() != x.Size() {
		exceptions.Panicf("simplego.Reshape: cannot reshape %s to dimensions %v", x.Shape(), dimensions)
	}
	switch x.DType() {
	case dtypes.Float16:
		return tensors.FromFlatDataAndDimensions(tensors.FlatData[float16.Float16](x), dimensions...)
	case dtypes.Float32:
		return tensors.FromFlatDataAndDimensions(tensors.FlatData[float32](x), dimensions...)
	case dtypes.Float64:
		return tensors.FromFlatDataAndDimensions(tensors.FlatData[float64](x), dimensions...)
	case dtypes.Int32:
		return tensors.FromFlatDataAndDimensions(tensors.FlatData[int32](x), dimensions...)
	case dtypes.Int64:
		return tensors.FromFlatDataAndDimensions(tensors.FlatData[int64](x), dimensions...)
	default:
		unsupportedDType("Reshape", x.DType())
	}
	panic(nil) // Disable lint warning.
}

// ReduceAxis reduces the given axis of x to a scalar per position, removing
// the axis. The reduction function receives the values of the axis as
// float64 -- the slice is reused between calls and must not be retained --
// and its result is converted back to x's dtype.
func ReduceAxis(x *tensors.Tensor, axis int, reduction func(group []float64) float64) *tensors.Tensor {
	if axis < 0 || axis >= x.Rank() {
		exceptions.Panicf("simplego.ReduceAxis: axis=%d out-of-range for shape %s", axis, x.Shape())
	}
	if isFloat16(x) {
		return toFloat16(ReduceAxis(toFloat32(x), axis, reduction))
	}
	switch x.DType() {
	case dtypes.Float32:
		return reduceAxis[float32](x, axis, reduction)
	case dtypes.Float64:
		return reduceAxis[float64](x, axis, reduction)
	case dtypes.Int32:
		return reduceAxis[int32](x, axis, reduction)
	case dtypes.Int64:
		return reduceAxis[int64](x, axis, reduction)
	default:
		unsupportedDType("ReduceAxis", x.DType())
	}
	panic(nil) // Disable lint warning.
}

func reduceAxis[T numeric](x *tensors.Tensor, axis int, reduction func(group []float64) float64) *tensors.Tensor {
	dims := x.Shape().Dimensions
	outer, n, inner := splitAtAxis(dims, axis)

	outDims := make([]int, 0, len(dims)-1)
	outDims = append(outDims, dims[:axis]...)
	outDims = append(outDims, dims[axis+1:]...)
	out := tensors.Zeros(shapes.Make(x.DType(), outDims...))
	outFlat := tensors.FlatData[T](out)

	in := tensors.FlatData[T](x)
	group := make([]float64, n)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			for k := 0; k < n; k++ {
				group[k] = float64(in[(o*n+k)*inner+i])
			}
			outFlat[o*inner+i] = T(reduction(group))
		}
	}
	return out
}

// ArgMax returns the index of the maximum value along the given axis, as an
// Int32 tensor. Ties resolve to the lowest index. With keepDims the axis is
// kept with dimension 1 (convenient for broadcasting), otherwise it is
// removed.
func ArgMax(x *tensors.Tensor, axis int, keepDims bool) *tensors.Tensor {
	if axis < 0 || axis >= x.Rank() {
		exceptions.Panicf("simplego.ArgMax: axis=%d out-of-range for shape %s", axis, x.Shape())
	}
	if x.Shape().Dimensions[axis] == 0 {
		exceptions.Panicf("simplego.ArgMax: axis=%d of shape %s is empty", axis, x.Shape())
	}
	if isFloat16(x) {
		return ArgMax(toFloat32(x), axis, keepDims)
	}
	switch x.DType() {
	case dtypes.Float32:
		return argMax[float32](x, axis, keepDims)
	case dtypes.Float64:
		return argMax[float64](x, axis, keepDims)
	case dtypes.Int32:
		return argMax[int32](x, axis, keepDims)
	case dtypes.Int64:
		return argMax[int64](x, axis, keepDims)
	default:
		unsupportedDType("ArgMax", x.DType())
	}
	panic(nil) // Disable lint warning.
}

func argMax[T numeric](x *tensors.Tensor, axis int, keepDims bool) *tensors.Tensor {
	dims := x.Shape().Dimensions
	outer, n, inner := splitAtAxis(dims, axis)

	var outDims []int
	if keepDims {
		outDims = x.Shape().Clone().Dimensions
		outDims[axis] = 1
	} else {
		outDims = append(outDims, dims[:axis]...)
		outDims = append(outDims, dims[axis+1:]...)
	}
	out := tensors.Zeros(shapes.Make(dtypes.Int32, outDims...))
	outFlat := tensors.FlatData[int32](out)

	in := tensors.FlatData[T](x)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			best := in[o*n*inner+i]
			bestIdx := int32(0)
			for k := 1; k < n; k++ {
				// Strictly larger only: ties keep the lowest index.
				if v := in[(o*n+k)*inner+i]; v > best {
					best = v
					bestIdx = int32(k)
				}
			}
			outFlat[o*inner+i] = bestIdx
		}
	}
	return out
}

// Iota returns a tensor of the given shape where each element holds its own
// index along the given axis.
func Iota(shape shapes.Shape, axis int) *tensors.Tensor {
	if axis < 0 || axis >= shape.Rank() {
		exceptions.Panicf("simplego.Iota: axis=%d out-of-range for shape %s", axis, shape)
	}
	switch shape.DType {
	case dtypes.Float32:
		return iotaOp[float32](shape, axis)
	case dtypes.Float64:
		return iotaOp[float64](shape, axis)
	case dtypes.Int32:
		return iotaOp[int32](shape, axis)
	case dtypes.Int64:
		return iotaOp[int64](shape, axis)
	default:
		unsupportedDType("Iota", shape.DType)
	}
	panic(nil) // Disable lint warning.
}

func iotaOp[T numeric](shape shapes.Shape, axis int) *tensors.Tensor {
	out := tensors.Zeros(shape)
	outFlat := tensors.FlatData[T](out)
	outer, n, inner := splitAtAxis(shape.Dimensions, axis)
	for o := 0; o < outer; o++ {
		for k := 0; k < n; k++ {
			for i := 0; i < inner; i++ {
				outFlat[(o*n+k)*inner+i] = T(k)
			}
		}
	}
	return out
}

// Equal compares a and b elementwise with broadcasting (see broadcastDims)
// and returns 1 where they are equal and 0 elsewhere, in the operands' dtype.
func Equal(a, b *tensors.Tensor) *tensors.Tensor {
	return binaryOp("Equal", a, b,
		func(x, y float32) float32 { return b2n[float32](x == y) },
		func(x, y float64) float64 { return b2n[float64](x == y) },
		func(x, y int32) int32 { return b2n[int32](x == y) },
		func(x, y int64) int64 { return b2n[int64](x == y) })
}

// Mul multiplies a and b elementwise with broadcasting (see broadcastDims).
func Mul(a, b *tensors.Tensor) *tensors.Tensor {
	return binaryOp("Mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y },
		func(x, y int32) int32 { return x * y },
		func(x, y int64) int64 { return x * y })
}

func b2n[T numeric](b bool) T {
	if b {
		return 1
	}
	return 0
}

func binaryOp(opName string, a, b *tensors.Tensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
	i32 func(x, y int32) int32,
	i64 func(x, y int64) int64) *tensors.Tensor {
	if a.DType() != b.DType() {
		exceptions.Panicf("simplego.%s: dtypes %s and %s don't match", opName, a.DType(), b.DType())
	}
	if isFloat16(a) {
		return toFloat16(binaryOp(opName, toFloat32(a), toFloat32(b), f32, f64, i32, i64))
	}
	switch a.DType() {
	case dtypes.Float32:
		return broadcastBinary(opName, a, b, f32)
	case dtypes.Float64:
		return broadcastBinary(opName, a, b, f64)
	case dtypes.Int32:
		return broadcastBinary(opName, a, b, i32)
	case dtypes.Int64:
		return broadcastBinary(opName, a, b, i64)
	default:
		unsupportedDType(opName, a.DType())
	}
	panic(nil) // Disable lint warning.
}

// broadcastDims returns the elementwise output dimensions of two operands of
// the same rank: on each axis the dimensions must match, or one of them must
// be 1, in which case it is (virtually) repeated to match the other.
func broadcastDims(opName string, aDims, bDims []int) []int {
	if len(aDims) != len(bDims) {
		exceptions.Panicf("simplego.%s: operand ranks %d and %d don't match", opName, len(aDims), len(bDims))
	}
	outDims := make([]int, len(aDims))
	for axis := range aDims {
		switch {
		case aDims[axis] == bDims[axis]:
			outDims[axis] = aDims[axis]
		case aDims[axis] == 1:
			outDims[axis] = bDims[axis]
		case bDims[axis] == 1:
			outDims[axis] = aDims[axis]
		default:
			exceptions.Panicf("simplego.%s: dimensions %v and %v are not broadcastable", opName, aDims, bDims)
		}
	}
	return outDims
}

func broadcastBinary[T numeric](opName string, a, b *tensors.Tensor, op func(x, y T) T) *tensors.Tensor {
	aDims, bDims := a.Shape().Dimensions, b.Shape().Dimensions
	outDims := broadcastDims(opName, aDims, bDims)
	out := tensors.Zeros(shapes.Make(a.DType(), outDims...))
	outFlat := tensors.FlatData[T](out)

	aFlat, bFlat := tensors.FlatData[T](a), tensors.FlatData[T](b)
	aStrides, bStrides := rowMajorStrides(aDims), rowMajorStrides(bDims)
	outStrides := rowMajorStrides(outDims)
	for flat := range outFlat {
		rem, aOff, bOff := flat, 0, 0
		for axis, stride := range outStrides {
			idx := rem / stride
			rem %= stride
			if aDims[axis] != 1 {
				aOff += idx * aStrides[axis]
			}
			if bDims[axis] != 1 {
				bOff += idx * bStrides[axis]
			}
		}
		outFlat[flat] = op(aFlat[aOff], bFlat[bOff])
	}
	return out
}

// ConvertDType converts x elementwise to the given dtype. Converting to the
// same dtype returns a copy.
func ConvertDType(x *tensors.Tensor, dtype dtypes.DType) *tensors.Tensor {
	if x.DType() == dtype {
		return x.Clone()
	}
	if isFloat16(x) {
		return ConvertDType(toFloat32(x), dtype)
	}
	if dtype == dtypes.Float16 {
		return toFloat16(ConvertDType(x, dtypes.Float32))
	}
	switch x.DType() {
	case dtypes.Float32:
		return convertFrom[float32](x, dtype)
	case dtypes.Float64:
		return convertFrom[float64](x, dtype)
	case dtypes.Int32:
		return convertFrom[int32](x, dtype)
	case dtypes.Int64:
		return convertFrom[int64](x, dtype)
	default:
		unsupportedDType("ConvertDType", x.DType())
	}
	panic(nil) // Disable lint warning.
}

func convertFrom[S numeric](x *tensors.Tensor, dtype dtypes.DType) *tensors.Tensor {
	switch dtype {
	case dtypes.Float32:
		return convert[S, float32](x)
	case dtypes.Float64:
		return convert[S, float64](x)
	case dtypes.Int32:
		return convert[S, int32](x)
	case dtypes.Int64:
		return convert[S, int64](x)
	default:
		unsupportedDType("ConvertDType", dtype)
	}
	panic(nil) // Disable lint warning.
}

func convert[S, D numeric](x *tensors.Tensor) *tensors.Tensor {
	in := tensors.FlatData[S](x)
	out := make([]D, len(in))
	for ii, v := range in {
		out[ii] = D(v)
	}
	return tensors.FromFlatDataAndDimensions(out, x.Shape().Dimensions...)
}

// splitAtAxis factors row-major dimensions into the product of the
// dimensions before the axis, the axis dimension itself, and the product of
// the dimensions after it.
func splitAtAxis(dimensions []int, axis int) (outer, n, inner int) {
	return xslices.Product(dimensions[:axis]), dimensions[axis], xslices.Product(dimensions[axis+1:])
}
