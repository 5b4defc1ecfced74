// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

// Package shapeinference calculates the output shapes of the operations
// provided by the engine, given the shapes of their operands.
//
// It is the single source of truth for shape arithmetic: the layers package
// uses it for static shape propagation, and the engine (backends/simplego)
// uses it to allocate its outputs, so the two always agree.
//
// All functions return an error on invalid parameters; they never panic.
package shapeinference

import (
	"github.com/pkg/errors"

	"github.com/poolops/poolops/backends"
	"github.com/poolops/poolops/types/shapes"
)

// PoolOutputLength computes the output length of a windowed (pooling)
// operation along a single axis.
//
// If inputLength is unknown (shapes.UnknownDim), the result is unknown.
//
// With ignoreBorder=true the result is the number of windows that fit
// entirely inside the padded input, one every stride. With
// ignoreBorder=false -- which requires pad == 0 -- one partial trailing
// window is appended whenever elements would otherwise be left uncovered.
func PoolOutputLength(inputLength, window, stride, pad int, ignoreBorder bool) (int, error) {
	if window < 1 {
		return 0, errors.Errorf("PoolOutputLength: window=%d must be >= 1", window)
	}
	if stride < 1 {
		return 0, errors.Errorf("PoolOutputLength: stride=%d must be >= 1", stride)
	}
	if pad < 0 {
		return 0, errors.Errorf("PoolOutputLength: pad=%d must be >= 0", pad)
	}
	if pad >= window {
		return 0, errors.Errorf("PoolOutputLength: pad=%d must be smaller than window=%d, "+
			"otherwise a window could cover only padding", pad, window)
	}
	if !ignoreBorder && pad != 0 {
		return 0, errors.Errorf("PoolOutputLength: pad=%d requires ignoreBorder=true", pad)
	}
	if inputLength == shapes.UnknownDim {
		return shapes.UnknownDim, nil
	}
	if inputLength < 0 {
		return 0, errors.Errorf("PoolOutputLength: inputLength=%d must be >= 0 or UnknownDim", inputLength)
	}
	if inputLength == 0 {
		// No real elements, no windows: padding alone could fill a window,
		// but a window of only padding has no value to reduce.
		return 0, nil
	}

	if ignoreBorder {
		// Count of windows fully inside the padded input, rounded down per
		// stride (ceil division of inputLength+2*pad-window+1 by stride).
		// Clamped at zero: for inputs smaller than the window no full window
		// fits and the output axis is empty.
		outputLength := inputLength + 2*pad - window + 1
		return max(0, ceilDiv(outputLength, stride)), nil
	}
	if stride >= window {
		return ceilDiv(inputLength, stride), nil
	}
	return max(0, ceilDiv(inputLength-window, stride)) + 1, nil
}

// ceilDiv is the ceiling of a/b for b > 0, correct also for negative a.
// Plain Go integer division truncates towards zero, which is off-by-one for
// negative operands.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

// spatialPoolDims applies PoolOutputLength to each spatial dimension.
func spatialPoolDims(spatial, window, strides, pads []int, ignoreBorder bool) ([]int, error) {
	out := make([]int, len(spatial))
	for ii, length := range spatial {
		var err error
		out[ii], err = PoolOutputLength(length, window[ii], strides[ii], pads[ii], ignoreBorder)
		if err != nil {
			return nil, errors.WithMessagef(err, "spatial axis %d", ii)
		}
	}
	return out, nil
}

// Pool2DOp returns the output shape of a windowed reduction over the two
// trailing axes of a rank-4 operand shaped [batch, channels, height, width].
//
// The mode only selects the reduction semantics; it does not change the
// output shape, but it is validated here so that an invalid tag fails before
// any computation happens.
func Pool2DOp(operand shapes.Shape, window, strides, pads [2]int, ignoreBorder bool, mode backends.PoolMode) (shapes.Shape, error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("Pool2DOp: invalid operand shape %s", operand)
	}
	if operand.Rank() != 4 {
		return shapes.Invalid(), errors.Errorf("Pool2DOp: operand rank must be 4, got shape %s", operand)
	}
	if !mode.IsAPoolMode() {
		return shapes.Invalid(), errors.Errorf("Pool2DOp: invalid pooling mode %d", mode)
	}
	spatial, err := spatialPoolDims(operand.Dimensions[2:], window[:], strides[:], pads[:], ignoreBorder)
	if err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "Pool2DOp")
	}
	return shapes.Make(operand.DType, operand.Dimensions[0], operand.Dimensions[1], spatial[0], spatial[1]), nil
}

// Pool3DOp returns the output shape of a windowed reduction over the three
// trailing axes of a rank-5 operand shaped [batch, channels, depth, height,
// width]. See Pool2DOp.
func Pool3DOp(operand shapes.Shape, window, strides, pads [3]int, ignoreBorder bool, mode backends.PoolMode) (shapes.Shape, error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("Pool3DOp: invalid operand shape %s", operand)
	}
	if operand.Rank() != 5 {
		return shapes.Invalid(), errors.Errorf("Pool3DOp: operand rank must be 5, got shape %s", operand)
	}
	if !mode.IsAPoolMode() {
		return shapes.Invalid(), errors.Errorf("Pool3DOp: invalid pooling mode %d", mode)
	}
	spatial, err := spatialPoolDims(operand.Dimensions[2:], window[:], strides[:], pads[:], ignoreBorder)
	if err != nil {
		return shapes.Invalid(), errors.WithMessage(err, "Pool3DOp")
	}
	return shapes.Make(operand.DType,
		operand.Dimensions[0], operand.Dimensions[1], spatial[0], spatial[1], spatial[2]), nil
}

// UpscaleOp returns the output shape of upscaling the spatial axes (axes 2
// and onward) of operand by the given integer factors, one per spatial axis.
// Unknown spatial dimensions stay unknown.
func UpscaleOp(operand shapes.Shape, factors []int, mode backends.UpscaleMode) (shapes.Shape, error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("UpscaleOp: invalid operand shape %s", operand)
	}
	if operand.Rank() != 2+len(factors) {
		return shapes.Invalid(), errors.Errorf("UpscaleOp: got %d scale factors for operand shape %s, expected one per spatial axis",
			len(factors), operand)
	}
	if !mode.IsAUpscaleMode() {
		return shapes.Invalid(), errors.Errorf("UpscaleOp: invalid upscale mode %d", mode)
	}
	newShape := operand.Clone()
	for ii, factor := range factors {
		if factor < 1 {
			return shapes.Invalid(), errors.Errorf("UpscaleOp: scale factor must be >= 1, got %d for spatial axis %d", factor, ii)
		}
		if newShape.Dimensions[2+ii] != shapes.UnknownDim {
			newShape.Dimensions[2+ii] *= factor
		}
	}
	return newShape, nil
}

// FeaturePoolOp returns the output shape of pooling groups of poolSize
// consecutive entries of the given axis: the axis size is divided by
// poolSize. The axis size must be a known exact multiple of poolSize; an
// unknown axis size stays unknown and the divisibility check is left to
// execution time.
func FeaturePoolOp(operand shapes.Shape, poolSize, axis int) (shapes.Shape, error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("FeaturePoolOp: invalid operand shape %s", operand)
	}
	if poolSize < 1 {
		return shapes.Invalid(), errors.Errorf("FeaturePoolOp: poolSize=%d must be >= 1", poolSize)
	}
	if axis < 0 || axis >= operand.Rank() {
		return shapes.Invalid(), errors.Errorf("FeaturePoolOp: axis=%d out-of-range for operand shape %s", axis, operand)
	}
	newShape := operand.Clone()
	dim := newShape.Dimensions[axis]
	if dim == shapes.UnknownDim {
		return newShape, nil
	}
	if dim%poolSize != 0 {
		return shapes.Invalid(), errors.Errorf("FeaturePoolOp: axis %d size (%d) is not a multiple of the pool size (%d)",
			axis, dim, poolSize)
	}
	newShape.Dimensions[axis] = dim / poolSize
	return newShape, nil
}

// GlobalPoolOp returns the output shape of pooling away every axis beyond
// the first two: [batch, channels, ...] -> [batch, channels]. The operand
// must have at least one trailing axis to pool.
func GlobalPoolOp(operand shapes.Shape) (shapes.Shape, error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Errorf("GlobalPoolOp: invalid operand shape %s", operand)
	}
	if operand.Rank() < 3 {
		return shapes.Invalid(), errors.Errorf("GlobalPoolOp: operand rank must be >= 3, got shape %s", operand)
	}
	return shapes.Make(operand.DType, operand.Dimensions[0], operand.Dimensions[1]), nil
}
