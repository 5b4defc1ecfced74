// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package simplego

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/poolops/poolops/backends"
	"github.com/poolops/poolops/types/tensors"
)

func TestPool2DMax(t *testing.T) {
	// 4x4 image, 2x2 adjacent windows: the maximum of each quadrant.
	x := tensors.FromFlatDataAndDimensions([]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, 1, 1, 4, 4)
	got := Pool2D(x, [2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0}, true, backends.PoolModeMax)
	require.Equal(t, []int{1, 1, 2, 2}, got.Shape().Dimensions)
	require.Equal(t, []float32{6, 8, 14, 16}, tensors.FlatData[float32](got))

	// Overlapping windows, stride 1.
	got = Pool2D(x, [2]int{2, 2}, [2]int{1, 1}, [2]int{0, 0}, true, backends.PoolModeMax)
	require.Equal(t, []int{1, 1, 3, 3}, got.Shape().Dimensions)
	require.Equal(t, []float32{6, 7, 8, 10, 11, 12, 14, 15, 16}, tensors.FlatData[float32](got))
}

func TestPool2DMaxPaddingNeverWins(t *testing.T) {
	// All-negative input with padding: the implicit zeros must not be
	// picked as the maximum.
	x := tensors.FromFlatDataAndDimensions([]float32{-5, -1, -3}, 1, 1, 3, 1)
	got := Pool2D(x, [2]int{3, 1}, [2]int{3, 1}, [2]int{1, 0}, true, backends.PoolModeMax)
	require.Equal(t, []int{1, 1, 1, 1}, got.Shape().Dimensions)
	require.Equal(t, []float32{-1}, tensors.FlatData[float32](got))
}

func TestPool2DAverage(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4}, 1, 1, 2, 2)

	// Padded 2x2 windows over a padded 4x4 extent: each window sees exactly
	// one input value. Including padding divides by the full in-extent
	// window (4), excluding it divides by the single real value.
	include := Pool2D(x, [2]int{2, 2}, [2]int{2, 2}, [2]int{1, 1}, true, backends.PoolModeAverageIncludePad)
	require.Equal(t, []int{1, 1, 2, 2}, include.Shape().Dimensions)
	require.Equal(t, []float32{0.25, 0.5, 0.75, 1}, tensors.FlatData[float32](include))

	exclude := Pool2D(x, [2]int{2, 2}, [2]int{2, 2}, [2]int{1, 1}, true, backends.PoolModeAverageExcludePad)
	require.Equal(t, []float32{1, 2, 3, 4}, tensors.FlatData[float32](exclude))

	// Without padding both averages agree.
	full := Pool2D(x, [2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0}, true, backends.PoolModeAverageIncludePad)
	require.Equal(t, []float32{2.5}, tensors.FlatData[float32](full))
}

func TestPool2DPartialWindows(t *testing.T) {
	// ignoreBorder=false appends a partial window covering the leftover
	// elements of each axis.
	x := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5}, 1, 1, 1, 5)
	got := Pool2D(x, [2]int{1, 2}, [2]int{1, 2}, [2]int{0, 0}, false, backends.PoolModeMax)
	require.Equal(t, []int{1, 1, 1, 3}, got.Shape().Dimensions)
	require.Equal(t, []float32{2, 4, 5}, tensors.FlatData[float32](got))

	// The partial window's average divides by its actual size.
	got = Pool2D(x, [2]int{1, 2}, [2]int{1, 2}, [2]int{0, 0}, false, backends.PoolModeAverageExcludePad)
	require.Equal(t, []float32{1.5, 3.5, 5}, tensors.FlatData[float32](got))
}

func TestPool2DIntegerAverageTruncates(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]int32{1, 2, 2, 2}, 1, 1, 1, 4)
	got := Pool2D(x, [2]int{1, 2}, [2]int{1, 2}, [2]int{0, 0}, true, backends.PoolModeAverageIncludePad)
	require.Equal(t, []int32{1, 2}, tensors.FlatData[int32](got))
}

func TestPool2DFloat16(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float16.Float16{
		float16.Fromfloat32(1), float16.Fromfloat32(4),
		float16.Fromfloat32(3), float16.Fromfloat32(2),
	}, 1, 1, 2, 2)
	got := Pool2D(x, [2]int{2, 2}, [2]int{2, 2}, [2]int{0, 0}, true, backends.PoolModeMax)
	require.Equal(t, x.DType(), got.DType())
	require.Equal(t, float32(4), tensors.FlatData[float16.Float16](got)[0].Float32())
}

func TestPool2DBatchAndChannels(t *testing.T) {
	// Pooling is independent per batch element and channel.
	x := tensors.FromFlatDataAndDimensions([]float32{
		1, 2, // batch 0, channel 0
		3, 4, // batch 0, channel 1
		5, 6, // batch 1, channel 0
		7, 8, // batch 1, channel 1
	}, 2, 2, 1, 2)
	got := Pool2D(x, [2]int{1, 2}, [2]int{1, 2}, [2]int{0, 0}, true, backends.PoolModeMax)
	require.Equal(t, []int{2, 2, 1, 1}, got.Shape().Dimensions)
	require.Equal(t, []float32{2, 4, 6, 8}, tensors.FlatData[float32](got))
}

func TestPool2DEmptyAxis(t *testing.T) {
	// A zero-length spatial axis with padding: the padded extent could fit
	// a window, but with no real elements the output axis is empty and the
	// kernel must not touch the (empty) data.
	x := tensors.FromFlatDataAndDimensions([]float32{}, 1, 1, 0, 4)
	for _, mode := range backends.PoolModeValues() {
		got := Pool2D(x, [2]int{2, 1}, [2]int{1, 1}, [2]int{1, 0}, true, mode)
		require.Equal(t, []int{1, 1, 0, 4}, got.Shape().Dimensions)
		require.Empty(t, tensors.FlatData[float32](got))
	}

	// Same for the rank-5 kernel.
	x5 := tensors.FromFlatDataAndDimensions([]float32{}, 1, 1, 0, 2, 2)
	got := Pool3D(x5, [3]int{2, 2, 2}, [3]int{1, 1, 1}, [3]int{1, 1, 1}, true, backends.PoolModeAverageExcludePad)
	require.Equal(t, []int{1, 1, 0, 3, 3}, got.Shape().Dimensions)
	require.Empty(t, tensors.FlatData[float32](got))
}

func TestPool2DInvalid(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4}, 1, 1, 2, 2)
	require.Panics(t, func() {
		Pool2D(x, [2]int{0, 2}, [2]int{2, 2}, [2]int{0, 0}, true, backends.PoolModeMax)
	})
	require.Panics(t, func() {
		// Padding with ignoreBorder=false.
		Pool2D(x, [2]int{2, 2}, [2]int{2, 2}, [2]int{1, 1}, false, backends.PoolModeMax)
	})
	require.Panics(t, func() {
		// Padding must be smaller than the window.
		Pool2D(x, [2]int{2, 2}, [2]int{2, 2}, [2]int{2, 2}, true, backends.PoolModeMax)
	})
}

func TestPool3D(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6, 7, 8}, 1, 1, 2, 2, 2)
	got := Pool3D(x, [3]int{2, 2, 2}, [3]int{2, 2, 2}, [3]int{0, 0, 0}, true, backends.PoolModeMax)
	require.Equal(t, []int{1, 1, 1, 1, 1}, got.Shape().Dimensions)
	require.Equal(t, []float32{8}, tensors.FlatData[float32](got))

	got = Pool3D(x, [3]int{2, 2, 2}, [3]int{2, 2, 2}, [3]int{0, 0, 0}, true, backends.PoolModeAverageIncludePad)
	require.Equal(t, []float32{4.5}, tensors.FlatData[float32](got))

	// Pool only the depth axis.
	got = Pool3D(x, [3]int{2, 1, 1}, [3]int{2, 1, 1}, [3]int{0, 0, 0}, true, backends.PoolModeMax)
	require.Equal(t, []int{1, 1, 1, 2, 2}, got.Shape().Dimensions)
	require.Equal(t, []float32{5, 6, 7, 8}, tensors.FlatData[float32](got))
}
