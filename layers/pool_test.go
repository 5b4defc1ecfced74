// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package layers

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"

	"github.com/poolops/poolops/backends"
	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
)

// Aliases
var (
	F32 = dtypes.Float32

	MS = shapes.Make
)

func TestPool1D(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float32{1, 3, 2, 5, 0, 9, 4, 4, 1, 1}, 1, 1, 10)
	layer := MaxPool1D(x).Window(2).Done()

	require.True(t, MS(F32, 1, 1, 5).Equal(layer.OutputShape(x.Shape())))
	got := layer.Apply(x)
	require.Equal(t, []float32{3, 5, 9, 4, 1}, tensors.FlatData[float32](got))
	require.True(t, layer.OutputShape(x.Shape()).Equal(got.Shape()))

	// Overlapping windows.
	layer = MaxPool1D(x).Window(3).Strides(1).Done()
	got = layer.Apply(x)
	require.Equal(t, []float32{3, 5, 5, 9, 9, 9, 4, 4}, tensors.FlatData[float32](got))
	require.True(t, layer.OutputShape(x.Shape()).Equal(got.Shape()))

	// Partial trailing window.
	odd := tensors.FromFlatDataAndDimensions([]float32{1, 3, 2, 5, 7}, 1, 1, 5)
	layer = MaxPool1D(odd).Window(2).IgnoreBorder(false).Done()
	got = layer.Apply(odd)
	require.Equal(t, []float32{3, 5, 7}, tensors.FlatData[float32](got))
	require.True(t, layer.OutputShape(odd.Shape()).Equal(got.Shape()))
}

func TestPool2D(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, 1, 1, 4, 4)

	layer := MaxPool2D(x).Window(2).Done()
	require.True(t, MS(F32, 1, 1, 2, 2).Equal(layer.OutputShape(x.Shape())))
	got := layer.Apply(x)
	require.Equal(t, []float32{6, 8, 14, 16}, tensors.FlatData[float32](got))

	// Average pooling through the generic builder.
	layer = Pool2D(x).Window(2).Mode(backends.PoolModeAverageIncludePad).Done()
	got = layer.Apply(x)
	require.Equal(t, []float32{3.5, 5.5, 11.5, 13.5}, tensors.FlatData[float32](got))

	// Rectangular windows and strides per axis.
	layer = Pool2D(x).WindowPerAxis(4, 1).StridePerAxis(4, 1).Done()
	got = layer.Apply(x)
	require.Equal(t, []int{1, 1, 1, 4}, got.Shape().Dimensions)
	require.Equal(t, []float32{13, 14, 15, 16}, tensors.FlatData[float32](got))
	require.True(t, layer.OutputShape(x.Shape()).Equal(got.Shape()))
}

func TestPool3D(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6, 7, 8}, 1, 1, 2, 2, 2)
	layer := MaxPool3D(x).Window(2).Done()
	require.True(t, MS(F32, 1, 1, 1, 1, 1).Equal(layer.OutputShape(x.Shape())))
	require.Equal(t, []float32{8}, tensors.FlatData[float32](layer.Apply(x)))
}

func TestPoolUnknownDims(t *testing.T) {
	// The batch and a spatial axis are unknown at build time: the layer
	// still builds and propagates them, and pools a concrete input later.
	symbolic := MS(F32, shapes.UnknownDim, 3, shapes.UnknownDim)
	layer := MaxPool1D(symbolic).Window(2).Done()

	output := layer.OutputShape(symbolic)
	require.Equal(t, shapes.UnknownDim, output.Dimensions[0])
	require.Equal(t, 3, output.Dimensions[1])
	require.Equal(t, shapes.UnknownDim, output.Dimensions[2])

	x := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4}, 1, 1, 4)
	// The concrete input has a different rank-compatible shape.
	layer = MaxPool1D(MS(F32, shapes.UnknownDim, 1, shapes.UnknownDim)).Window(2).Done()
	require.Equal(t, []float32{2, 4}, tensors.FlatData[float32](layer.Apply(x)))
}

func TestPoolBuilderValidation(t *testing.T) {
	input := MS(F32, 1, 1, 10)

	// Window is mandatory.
	require.Panics(t, func() { Pool1D(input).Done() })
	// Wrong rank for the layer dimensionality.
	require.Panics(t, func() { Pool2D(input) })
	// One value per spatial axis.
	require.Panics(t, func() { Pool1D(input).WindowPerAxis(2, 2) })
	// Padding must be smaller than the window.
	require.Panics(t, func() { Pool1D(input).Window(2).Padding(2).Done() })
	// Padding requires dropping partial windows.
	require.Panics(t, func() { Pool1D(input).Window(2).Padding(1).IgnoreBorder(false).Done() })
	// Invalid mode.
	require.Panics(t, func() { Pool1D(input).Window(2).Mode(backends.PoolMode(42)).Done() })

	// Padding with ignoreBorder=true is fine.
	require.NotNil(t, Pool1D(input).Window(3).Padding(1).Done())
}
