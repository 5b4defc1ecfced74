// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/poolops/poolops/types/shapes"
)

func TestFromFlatDataAndDimensions(t *testing.T) {
	x := FromFlatDataAndDimensions([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.Equal(t, dtypes.Float32, x.DType())
	require.Equal(t, []int{2, 3}, x.Shape().Dimensions)
	require.Equal(t, 6, x.Size())

	// The data is copied, not aliased.
	data := []int32{1, 2}
	y := FromFlatDataAndDimensions(data, 2)
	data[0] = 99
	require.Equal(t, int32(1), FlatData[int32](y)[0])

	// Size mismatch and unknown dimensions are rejected.
	require.Panics(t, func() { FromFlatDataAndDimensions([]float32{1, 2}, 3) })
	require.Panics(t, func() { FromFlatDataAndDimensions([]float32{1, 2}, shapes.UnknownDim) })
}

func TestFromScalarAndDimensions(t *testing.T) {
	x := FromScalarAndDimensions(float64(2.5), 2, 2)
	require.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, FlatData[float64](x))
}

func TestZeros(t *testing.T) {
	for _, dtype := range []dtypes.DType{dtypes.Float16, dtypes.Float32, dtypes.Float64, dtypes.Int32, dtypes.Int64} {
		z := Zeros(shapes.Make(dtype, 2, 2))
		require.Equal(t, dtype, z.DType())
		require.Equal(t, 4, z.Size())
	}
	z := Zeros(shapes.Make(dtypes.Float16, 1, 2))
	require.Equal(t, float32(0), FlatData[float16.Float16](z)[0].Float32())
}

func TestFlatData(t *testing.T) {
	x := FromFlatDataAndDimensions([]float32{1, 2}, 2)
	// FlatData aliases the tensor's storage.
	FlatData[float32](x)[0] = 7
	require.Equal(t, []float32{7, 2}, FlatData[float32](x))
	// Wrong type panics.
	require.Panics(t, func() { FlatData[float64](x) })
}

func TestCloneAndEqual(t *testing.T) {
	x := FromFlatDataAndDimensions([]int64{1, 2, 3}, 3)
	y := x.Clone()
	require.True(t, x.Equal(y))
	FlatData[int64](y)[0] = 9
	require.False(t, x.Equal(y))
	require.Equal(t, int64(1), FlatData[int64](x)[0])

	// Different shapes with the same data are not equal.
	z := FromFlatDataAndDimensions([]int64{1, 2, 3}, 1, 3)
	require.False(t, x.Equal(z))
}
