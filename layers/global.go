// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package layers

import (
	"github.com/gomlx/exceptions"

	"github.com/poolops/poolops/backends/shapeinference"
	"github.com/poolops/poolops/backends/simplego"
	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
	"github.com/poolops/poolops/types/xslices"
)

// GlobalPoolLayer reduces all spatial axes of a signal at once, producing
// one value per batch element and channel. Build it with GlobalPool.
type GlobalPoolLayer struct {
	reduction Reducer
}

var _ Layer = (*GlobalPoolLayer)(nil)

// GlobalPoolBuilder is a helper to build a GlobalPoolLayer. Create it with
// GlobalPool and call Done when configured.
type GlobalPoolBuilder struct {
	inputShape shapes.Shape
	reduction  Reducer
}

// GlobalPool prepares a layer that reduces every spatial axis of a
// (batch, channels, spatial...) input to a single value per channel. The
// reduction defaults to ReduceMean. It works for any number of spatial
// axes, as long as there is at least one.
func GlobalPool(input shapes.HasShape) *GlobalPoolBuilder {
	return &GlobalPoolBuilder{
		inputShape: input.Shape(),
		reduction:  ReduceMean,
	}
}

// Reduction sets the function that collapses the spatial values of each
// channel. It defaults to ReduceMean.
func (b *GlobalPoolBuilder) Reduction(reduction Reducer) *GlobalPoolBuilder {
	b.reduction = reduction
	return b
}

// Done builds the GlobalPoolLayer, validating the input shape given at
// construction.
func (b *GlobalPoolBuilder) Done() *GlobalPoolLayer {
	layer := &GlobalPoolLayer{reduction: b.reduction}
	_ = layer.OutputShape(b.inputShape)
	return layer
}

// OutputShape keeps only the batch and channels axes.
func (g *GlobalPoolLayer) OutputShape(inputShape shapes.Shape) shapes.Shape {
	output, err := shapeinference.GlobalPoolOp(inputShape)
	if err != nil {
		panic(err)
	}
	return output
}

// Apply collapses all spatial axes of the input: the spatial axes are
// flattened into one and reduced with the configured function.
func (g *GlobalPoolLayer) Apply(x *tensors.Tensor) *tensors.Tensor {
	dims := x.Shape().Dimensions
	if len(dims) < 3 {
		exceptions.Panicf("global pooling requires a (batch, channels, spatial...) input of rank >= 3, got shape %s", x.Shape())
	}
	flat := simplego.Reshape(x, dims[0], dims[1], xslices.Product(dims[2:]))
	return simplego.ReduceAxis(flat, 2, g.reduction)
}
