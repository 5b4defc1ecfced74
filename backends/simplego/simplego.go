// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

// Package simplego is a simple, portable, pure-Go engine for the tensor
// operations that the layers package composes: padded sliding-window
// reductions (Pool2D, Pool3D), repetition and dilation (Repeat, Dilate),
// reshaping, axis reductions with an arbitrary reduction function
// (ReduceAxis), argmax, iota and broadcasting elementwise operations.
//
// It prioritizes simplicity and correctness over speed: every operation is a
// straightforward loop over the output elements, executed synchronously on
// the calling goroutine.
//
// Operations work on float32, float64, int32 and int64 tensors directly;
// float16 tensors are converted to float32, computed, and converted back.
//
// Errors are reported by panicking with an error value (recoverable with
// github.com/gomlx/exceptions.Try): all failures here are programming errors
// of the caller, there is nothing to retry.
package simplego

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"

	"github.com/poolops/poolops/types/tensors"
)

// numeric are the Go types the generic kernels compute on directly. Notice
// float16 is absent: it has no native Go arithmetic, so float16 tensors take
// the convert-to-float32 path instead.
type numeric interface {
	float32 | float64 | int32 | int64
}

// isFloat16 reports whether the op must take the float32 round-trip path.
func isFloat16(x *tensors.Tensor) bool {
	return x.DType() == dtypes.Float16
}

func toFloat32(x *tensors.Tensor) *tensors.Tensor {
	in := tensors.FlatData[float16.Float16](x)
	out := make([]float32, len(in))
	for ii, v := range in {
		out[ii] = v.Float32()
	}
	return tensors.FromFlatDataAndDimensions(out, x.Shape().Dimensions...)
}

func toFloat16(x *tensors.Tensor) *tensors.Tensor {
	in := tensors.FlatData[float32](x)
	out := make([]float16.Float16, len(in))
	for ii, v := range in {
		out[ii] = float16.Fromfloat32(v)
	}
	return tensors.FromFlatDataAndDimensions(out, x.Shape().Dimensions...)
}

// rowMajorStrides returns the flat-index stride of each axis for the given
// row-major dimensions.
func rowMajorStrides(dimensions []int) []int {
	strides := make([]int, len(dimensions))
	stride := 1
	for axis := len(dimensions) - 1; axis >= 0; axis-- {
		strides[axis] = stride
		stride *= dimensions[axis]
	}
	return strides
}

func unsupportedDType(opName string, dtype dtypes.DType) {
	exceptions.Panicf("simplego.%s: unsupported dtype %s", opName, dtype)
}
