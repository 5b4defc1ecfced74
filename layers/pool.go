// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package layers

import (
	"github.com/gomlx/exceptions"

	"github.com/poolops/poolops/backends"
	"github.com/poolops/poolops/backends/shapeinference"
	"github.com/poolops/poolops/backends/simplego"
	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
	"github.com/poolops/poolops/types/xslices"
)

// PoolLayer pools windows of a signal across its spatial axes with a
// configurable pooling mode. Inputs are laid out as
// (batch, channels, spatial...). Build it with Pool1D, Pool2D or Pool3D.
type PoolLayer struct {
	numSpatialDims       int
	window, strides, pad []int
	ignoreBorder         bool
	mode                 backends.PoolMode
}

var _ Layer = (*PoolLayer)(nil)

// PoolBuilder is a helper to build a PoolLayer. Create it with Pool1D,
// Pool2D, Pool3D or the MaxPool shortcuts, and call Done when configured.
type PoolBuilder struct {
	inputShape           shapes.Shape
	numSpatialDims       int
	window, strides, pad []int
	ignoreBorder         bool
	mode                 backends.PoolMode
}

// Pool1D prepares a pooling layer over a (batch, channels, length) input.
// The window size must be set with Window before calling Done. Strides
// default to the window size, padding to zero, the border policy to ignoring
// partial windows and the mode to max pooling.
func Pool1D(input shapes.HasShape) *PoolBuilder {
	return newPoolBuilder(input, 1)
}

// Pool2D prepares a pooling layer over a (batch, channels, height, width)
// input. See Pool1D for the defaults.
func Pool2D(input shapes.HasShape) *PoolBuilder {
	return newPoolBuilder(input, 2)
}

// Pool3D prepares a pooling layer over a (batch, channels, depth, height,
// width) input. See Pool1D for the defaults.
func Pool3D(input shapes.HasShape) *PoolBuilder {
	return newPoolBuilder(input, 3)
}

// MaxPool1D is a shortcut for Pool1D: max pooling is already the default
// mode, this exists for symmetry with the usual layer names.
func MaxPool1D(input shapes.HasShape) *PoolBuilder {
	return Pool1D(input).Mode(backends.PoolModeMax)
}

// MaxPool2D is a shortcut for Pool2D with max pooling.
func MaxPool2D(input shapes.HasShape) *PoolBuilder {
	return Pool2D(input).Mode(backends.PoolModeMax)
}

// MaxPool3D is a shortcut for Pool3D with max pooling.
func MaxPool3D(input shapes.HasShape) *PoolBuilder {
	return Pool3D(input).Mode(backends.PoolModeMax)
}

func newPoolBuilder(input shapes.HasShape, numSpatialDims int) *PoolBuilder {
	inputShape := input.Shape()
	if inputShape.Rank() != numSpatialDims+2 {
		exceptions.Panicf(
			"cannot build a %dD pooling layer for input shaped %s: expected rank %d (batch, channels, %d spatial axes)",
			numSpatialDims, inputShape, numSpatialDims+2, numSpatialDims)
	}
	return &PoolBuilder{
		inputShape:     inputShape,
		numSpatialDims: numSpatialDims,
		pad:            make([]int, numSpatialDims),
		ignoreBorder:   true,
		mode:           backends.PoolModeMax,
	}
}

// Window sets the pooling window size, the same for every spatial axis. It
// must be set before Done.
func (b *PoolBuilder) Window(size int) *PoolBuilder {
	return b.WindowPerAxis(xslices.SliceWithValue(b.numSpatialDims, size)...)
}

// WindowPerAxis sets the pooling window size for each spatial axis
// separately. It must be given one value per spatial axis.
func (b *PoolBuilder) WindowPerAxis(sizes ...int) *PoolBuilder {
	if len(sizes) != b.numSpatialDims {
		exceptions.Panicf("WindowPerAxis() must receive %d values, one per spatial axis, got %d",
			b.numSpatialDims, len(sizes))
	}
	b.window = sizes
	return b
}

// Strides sets the stride between consecutive windows, the same for every
// spatial axis. It defaults to the window size, making windows adjacent and
// non-overlapping.
func (b *PoolBuilder) Strides(stride int) *PoolBuilder {
	return b.StridePerAxis(xslices.SliceWithValue(b.numSpatialDims, stride)...)
}

// StridePerAxis sets the stride for each spatial axis separately. It must be
// given one value per spatial axis.
func (b *PoolBuilder) StridePerAxis(strides ...int) *PoolBuilder {
	if len(strides) != b.numSpatialDims {
		exceptions.Panicf("StridePerAxis() must receive %d values, one per spatial axis, got %d",
			b.numSpatialDims, len(strides))
	}
	b.strides = strides
	return b
}

// Padding sets the symmetric zero padding added at both ends of every
// spatial axis. It defaults to 0. Non-zero padding requires the border
// policy to ignore partial windows.
func (b *PoolBuilder) Padding(pad int) *PoolBuilder {
	return b.PaddingPerAxis(xslices.SliceWithValue(b.numSpatialDims, pad)...)
}

// PaddingPerAxis sets the symmetric padding for each spatial axis
// separately. It must be given one value per spatial axis.
func (b *PoolBuilder) PaddingPerAxis(pads ...int) *PoolBuilder {
	if len(pads) != b.numSpatialDims {
		exceptions.Panicf("PaddingPerAxis() must receive %d values, one per spatial axis, got %d",
			b.numSpatialDims, len(pads))
	}
	b.pad = pads
	return b
}

// IgnoreBorder sets whether windows that would extend past the input are
// dropped (true, the default) or pooled as partial windows (false). When
// false, padding must be zero.
func (b *PoolBuilder) IgnoreBorder(ignore bool) *PoolBuilder {
	b.ignoreBorder = ignore
	return b
}

// Mode sets the pooling mode. It defaults to backends.PoolModeMax.
func (b *PoolBuilder) Mode(mode backends.PoolMode) *PoolBuilder {
	b.mode = mode
	return b
}

// Done builds the PoolLayer, validating its configuration against the input
// shape given at construction. It panics on invalid configurations.
func (b *PoolBuilder) Done() *PoolLayer {
	if b.window == nil {
		exceptions.Panicf("pooling layer requires a window size, set it with Window() or WindowPerAxis()")
	}
	if !b.mode.IsAPoolMode() {
		exceptions.Panicf("invalid pooling mode %d", b.mode)
	}
	if b.strides == nil {
		b.strides = b.window
	}
	layer := &PoolLayer{
		numSpatialDims: b.numSpatialDims,
		window:         b.window,
		strides:        b.strides,
		pad:            b.pad,
		ignoreBorder:   b.ignoreBorder,
		mode:           b.mode,
	}
	// Surfaces invalid window/stride/padding combinations at construction.
	_ = layer.OutputShape(b.inputShape)
	return layer
}

func (p *PoolLayer) checkRank(shape shapes.Shape) {
	if shape.Rank() != p.numSpatialDims+2 {
		exceptions.Panicf("%dD pooling layer requires a rank-%d input, got shape %s",
			p.numSpatialDims, p.numSpatialDims+2, shape)
	}
}

// OutputShape returns the pooled shape: batch and channel axes are
// preserved, each spatial axis shrinks according to the window, stride,
// padding and border policy. Unknown spatial dimensions stay unknown.
func (p *PoolLayer) OutputShape(inputShape shapes.Shape) shapes.Shape {
	p.checkRank(inputShape)
	output := inputShape.Clone()
	for axis := range p.numSpatialDims {
		length, err := shapeinference.PoolOutputLength(
			inputShape.Dimensions[2+axis], p.window[axis], p.strides[axis], p.pad[axis], p.ignoreBorder)
		if err != nil {
			panic(err)
		}
		output.Dimensions[2+axis] = length
	}
	return output
}

// Apply pools the input tensor. 1D inputs are pooled through the 2D
// primitive with a synthetic trailing spatial axis of size 1.
func (p *PoolLayer) Apply(x *tensors.Tensor) *tensors.Tensor {
	p.checkRank(x.Shape())
	dims := x.Shape().Dimensions
	switch p.numSpatialDims {
	case 1:
		x4 := simplego.Reshape(x, dims[0], dims[1], dims[2], 1)
		pooled := simplego.Pool2D(x4,
			[2]int{p.window[0], 1}, [2]int{p.strides[0], 1}, [2]int{p.pad[0], 0},
			p.ignoreBorder, p.mode)
		pooledDims := pooled.Shape().Dimensions
		return simplego.Reshape(pooled, pooledDims[0], pooledDims[1], pooledDims[2])
	case 2:
		return simplego.Pool2D(x,
			[2]int{p.window[0], p.window[1]},
			[2]int{p.strides[0], p.strides[1]},
			[2]int{p.pad[0], p.pad[1]},
			p.ignoreBorder, p.mode)
	case 3:
		return simplego.Pool3D(x,
			[3]int{p.window[0], p.window[1], p.window[2]},
			[3]int{p.strides[0], p.strides[1], p.strides[2]},
			[3]int{p.pad[0], p.pad[1], p.pad[2]},
			p.ignoreBorder, p.mode)
	default:
		exceptions.Panicf("pooling layer supports 1 to 3 spatial axes, got %d", p.numSpatialDims)
		panic(nil) // Disable lint warning.
	}
}
