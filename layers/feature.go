// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package layers

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/poolops/poolops/backends/shapeinference"
	"github.com/poolops/poolops/backends/simplego"
	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
	"github.com/poolops/poolops/types/xslices"
)

// FeaturePoolLayer pools across one non-spatial axis, usually the feature
// (channels) axis: the axis is split into adjacent, non-overlapping groups
// of poolSize values and each group is reduced to a single value. It
// implements maxout-style operators when used with ReduceMax. Build it with
// FeaturePool.
type FeaturePoolLayer struct {
	poolSize, axis int
	reduction      Reducer
}

var _ Layer = (*FeaturePoolLayer)(nil)

// FeaturePoolBuilder is a helper to build a FeaturePoolLayer. Create it with
// FeaturePool and call Done when configured.
type FeaturePoolBuilder struct {
	inputShape shapes.Shape
	poolSize   int
	axis       int
	reduction  Reducer
}

// FeaturePool prepares a layer that pools groups of poolSize adjacent values
// along one axis. The axis defaults to 1 (channels) and the reduction to
// ReduceMax. The pooled axis must be a multiple of poolSize.
func FeaturePool(input shapes.HasShape, poolSize int) *FeaturePoolBuilder {
	return &FeaturePoolBuilder{
		inputShape: input.Shape(),
		poolSize:   poolSize,
		axis:       1,
		reduction:  ReduceMax,
	}
}

// Axis sets the axis to pool across. It defaults to 1, the channels axis.
func (b *FeaturePoolBuilder) Axis(axis int) *FeaturePoolBuilder {
	b.axis = axis
	return b
}

// Reduction sets the function that collapses each group of poolSize values.
// It defaults to ReduceMax.
func (b *FeaturePoolBuilder) Reduction(reduction Reducer) *FeaturePoolBuilder {
	b.reduction = reduction
	return b
}

// Done builds the FeaturePoolLayer, validating its configuration against the
// input shape given at construction. When the pooled axis is statically
// known it must be a multiple of the pool size; unknown axes are checked at
// Apply time instead.
func (b *FeaturePoolBuilder) Done() *FeaturePoolLayer {
	layer := &FeaturePoolLayer{
		poolSize:  b.poolSize,
		axis:      b.axis,
		reduction: b.reduction,
	}
	_ = layer.OutputShape(b.inputShape)
	return layer
}

// OutputShape divides the pooled axis by the pool size, leaving every other
// axis unchanged. An unknown pooled axis stays unknown.
func (f *FeaturePoolLayer) OutputShape(inputShape shapes.Shape) shapes.Shape {
	output, err := shapeinference.FeaturePoolOp(inputShape, f.poolSize, f.axis)
	if err != nil {
		panic(err)
	}
	return output
}

// Apply pools the input tensor across the configured axis.
func (f *FeaturePoolLayer) Apply(x *tensors.Tensor) *tensors.Tensor {
	grouped := splitPoolAxis(x, f.poolSize, f.axis)
	return simplego.ReduceAxis(grouped, f.axis+1, f.reduction)
}

// splitPoolAxis reshapes x so the pooled axis becomes two axes: groups
// followed by the poolSize values of each group.
func splitPoolAxis(x *tensors.Tensor, poolSize, axis int) *tensors.Tensor {
	dims := x.Shape().Dimensions
	if dims[axis]%poolSize != 0 {
		exceptions.Panicf("cannot feature-pool axis %d of shape %s: dimension %d is not a multiple of the pool size %d",
			axis, x.Shape(), dims[axis], poolSize)
	}
	groupedDims := make([]int, 0, len(dims)+1)
	groupedDims = append(groupedDims, dims[:axis]...)
	groupedDims = append(groupedDims, dims[axis]/poolSize, poolSize)
	groupedDims = append(groupedDims, dims[axis+1:]...)
	return simplego.Reshape(x, groupedDims...)
}

// FeatureWTALayer implements "winner take all" gating across one axis: the
// axis is split into groups of poolSize values and within each group only
// the largest value is kept, every other value is zeroed. Ties are broken
// towards the lowest index. The output shape equals the input shape. Build
// it with FeatureWTA.
type FeatureWTALayer struct {
	poolSize, axis int
}

var _ Layer = (*FeatureWTALayer)(nil)

// FeatureWTABuilder is a helper to build a FeatureWTALayer. Create it with
// FeatureWTA and call Done when configured.
type FeatureWTABuilder struct {
	inputShape shapes.Shape
	poolSize   int
	axis       int
}

// FeatureWTA prepares a "winner take all" layer with groups of poolSize
// values along one axis. The axis defaults to 1 (channels) and must be a
// multiple of poolSize.
func FeatureWTA(input shapes.HasShape, poolSize int) *FeatureWTABuilder {
	return &FeatureWTABuilder{
		inputShape: input.Shape(),
		poolSize:   poolSize,
		axis:       1,
	}
}

// Axis sets the axis to compete across. It defaults to 1, the channels axis.
func (b *FeatureWTABuilder) Axis(axis int) *FeatureWTABuilder {
	b.axis = axis
	return b
}

// Done builds the FeatureWTALayer, validating its configuration against the
// input shape given at construction.
func (b *FeatureWTABuilder) Done() *FeatureWTALayer {
	layer := &FeatureWTALayer{
		poolSize: b.poolSize,
		axis:     b.axis,
	}
	_ = layer.OutputShape(b.inputShape)
	return layer
}

// OutputShape returns the input shape unchanged: losing values are zeroed in
// place, no axis changes size. It still validates the pool size and axis.
func (w *FeatureWTALayer) OutputShape(inputShape shapes.Shape) shapes.Shape {
	if _, err := shapeinference.FeaturePoolOp(inputShape, w.poolSize, w.axis); err != nil {
		panic(err)
	}
	return inputShape.Clone()
}

// Apply zeroes every value that is not the largest of its group. The winner
// mask is built by comparing each group's argmax against the position index
// along the group axis.
func (w *FeatureWTALayer) Apply(x *tensors.Tensor) *tensors.Tensor {
	grouped := splitPoolAxis(x, w.poolSize, w.axis)
	winners := simplego.ArgMax(grouped, w.axis+1, true)

	positionDims := xslices.SliceWithValue(grouped.Rank(), 1)
	positionDims[w.axis+1] = w.poolSize
	positions := simplego.Iota(shapes.Make(dtypes.Int32, positionDims...), w.axis+1)

	mask := simplego.Equal(winners, positions)
	mask = simplego.Reshape(mask, x.Shape().Dimensions...)
	mask = simplego.ConvertDType(mask, x.DType())
	return simplego.Mul(x, mask)
}
