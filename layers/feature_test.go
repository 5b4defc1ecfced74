// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package layers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
)

func TestFeaturePool(t *testing.T) {
	// Maxout over groups of 2 channels.
	x := tensors.FromFlatDataAndDimensions([]float32{
		1, 5, // channels 0-1 -> 5
		4, 2, // channels 2-3 -> 4
		0, 0, // channels 4-5 -> 0
	}, 1, 6, 1)
	layer := FeaturePool(x, 2).Done()
	require.True(t, MS(F32, 1, 3, 1).Equal(layer.OutputShape(x.Shape())))
	got := layer.Apply(x)
	require.Equal(t, []float32{5, 4, 0}, tensors.FlatData[float32](got))
	require.True(t, layer.OutputShape(x.Shape()).Equal(got.Shape()))

	// A custom reduction over a non-default axis.
	y := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6}, 1, 1, 6)
	layer = FeaturePool(y, 3).Axis(2).Reduction(ReduceSum).Done()
	got = layer.Apply(y)
	require.True(t, MS(F32, 1, 1, 2).Equal(got.Shape()))
	require.Equal(t, []float32{6, 15}, tensors.FlatData[float32](got))

	// Mean over feature groups.
	layer = FeaturePool(y, 2).Axis(2).Reduction(ReduceMean).Done()
	require.Equal(t, []float32{1.5, 3.5, 5.5}, tensors.FlatData[float32](layer.Apply(y)))
}

func TestFeaturePoolGrouping(t *testing.T) {
	// Groups are adjacent: channels (0, 1), (2, 3), ... and pooling keeps
	// the trailing axes aligned.
	x := tensors.FromFlatDataAndDimensions([]float32{
		1, 2, // channel 0, positions 0-1
		30, 40, // channel 1
		5, 600, // channel 2
		7, 8, // channel 3
	}, 1, 4, 2)
	got := FeaturePool(x, 2).Done().Apply(x)
	require.Equal(t, []int{1, 2, 2}, got.Shape().Dimensions)
	require.Equal(t, []float32{30, 40, 7, 600}, tensors.FlatData[float32](got))
}

func TestFeaturePoolValidation(t *testing.T) {
	input := MS(F32, 1, 6, 1)
	// Axis size must be a multiple of the pool size.
	require.Panics(t, func() { FeaturePool(input, 4).Done() })
	// Axis out-of-range.
	require.Panics(t, func() { FeaturePool(input, 2).Axis(3).Done() })
	// Pool size must be positive.
	require.Panics(t, func() { FeaturePool(input, 0).Done() })

	// An unknown axis defers the divisibility check to Apply.
	symbolic := MS(F32, 1, shapes.UnknownDim, 1)
	layer := FeaturePool(symbolic, 4).Done()
	require.Equal(t, shapes.UnknownDim, layer.OutputShape(symbolic).Dimensions[1])
	x := tensors.FromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6}, 1, 6, 1)
	require.Panics(t, func() { layer.Apply(x) })
}

func TestFeatureWTA(t *testing.T) {
	x := tensors.FromFlatDataAndDimensions([]float32{
		1, 5, // group 0: winner is channel 1
		4, 2, // group 1: winner is channel 2
		-3, -7, // group 2: winner is channel 4
	}, 1, 6, 1)
	layer := FeatureWTA(x, 2).Done()

	// The output shape is the input shape, untouched.
	require.True(t, x.Shape().Equal(layer.OutputShape(x.Shape())))

	got := layer.Apply(x)
	require.True(t, x.Shape().Equal(got.Shape()))
	require.Equal(t, []float32{0, 5, 4, 0, -3, 0}, tensors.FlatData[float32](got))
}

func TestFeatureWTATiesAndZeros(t *testing.T) {
	// Ties keep the lowest channel of the group, and a zero winner is
	// indistinguishable from the zeroed losers.
	x := tensors.FromFlatDataAndDimensions([]float32{
		7, 7, // tie -> channel 0
		0, -1, // winner 0 stays 0
	}, 1, 4, 1)
	got := FeatureWTA(x, 2).Done().Apply(x)
	require.Equal(t, []float32{7, 0, 0, 0}, tensors.FlatData[float32](got))

	// Exactly one non-zero value per group (for inputs without zeros).
	y := tensors.FromFlatDataAndDimensions([]float32{
		3, 1, 2,
		-1, -2, -3,
	}, 1, 6, 1)
	got = FeatureWTA(y, 3).Done().Apply(y)
	require.Equal(t, []float32{3, 0, 0, -1, 0, 0}, tensors.FlatData[float32](got))
}

func TestFeatureWTAPerPosition(t *testing.T) {
	// The competition runs independently at every trailing position.
	x := tensors.FromFlatDataAndDimensions([]float32{
		1, 8, // channel 0
		5, 2, // channel 1
	}, 1, 2, 2)
	got := FeatureWTA(x, 2).Done().Apply(x)
	require.Equal(t, []float32{0, 8, 5, 0}, tensors.FlatData[float32](got))
}

func TestFeatureWTAValidation(t *testing.T) {
	input := MS(F32, 1, 6, 1)
	require.Panics(t, func() { FeatureWTA(input, 4).Done() })
	require.Panics(t, func() { FeatureWTA(input, 2).Axis(5).Done() })
}
