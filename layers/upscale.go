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

// UpscaleLayer enlarges the spatial axes of a signal by integer factors,
// either repeating each value (backends.UpscaleModeRepeat, the default) or
// placing values on a sparse lattice with zeros in between
// (backends.UpscaleModeDilate). Build it with Upscale1D, Upscale2D or
// Upscale3D.
type UpscaleLayer struct {
	numSpatialDims int
	factors        []int
	mode           backends.UpscaleMode
}

var _ Layer = (*UpscaleLayer)(nil)

// UpscaleBuilder is a helper to build an UpscaleLayer. Create it with
// Upscale1D, Upscale2D or Upscale3D and call Done when configured.
type UpscaleBuilder struct {
	inputShape     shapes.Shape
	numSpatialDims int
	factors        []int
	mode           backends.UpscaleMode
}

// Upscale1D prepares an upscaling layer over a (batch, channels, length)
// input. The factor must be set with Factor or FactorPerAxis before calling
// Done. The mode defaults to repeating values.
func Upscale1D(input shapes.HasShape) *UpscaleBuilder {
	return newUpscaleBuilder(input, 1)
}

// Upscale2D prepares an upscaling layer over a (batch, channels, height,
// width) input. See Upscale1D for the defaults.
func Upscale2D(input shapes.HasShape) *UpscaleBuilder {
	return newUpscaleBuilder(input, 2)
}

// Upscale3D prepares an upscaling layer over a (batch, channels, depth,
// height, width) input. See Upscale1D for the defaults.
func Upscale3D(input shapes.HasShape) *UpscaleBuilder {
	return newUpscaleBuilder(input, 3)
}

func newUpscaleBuilder(input shapes.HasShape, numSpatialDims int) *UpscaleBuilder {
	inputShape := input.Shape()
	if inputShape.Rank() != numSpatialDims+2 {
		exceptions.Panicf(
			"cannot build a %dD upscaling layer for input shaped %s: expected rank %d (batch, channels, %d spatial axes)",
			numSpatialDims, inputShape, numSpatialDims+2, numSpatialDims)
	}
	return &UpscaleBuilder{
		inputShape:     inputShape,
		numSpatialDims: numSpatialDims,
		mode:           backends.UpscaleModeRepeat,
	}
}

// Factor sets the upscaling factor, the same for every spatial axis. A
// factor of 1 leaves the axis unchanged. It must be set before Done.
func (b *UpscaleBuilder) Factor(factor int) *UpscaleBuilder {
	return b.FactorPerAxis(xslices.SliceWithValue(b.numSpatialDims, factor)...)
}

// FactorPerAxis sets the upscaling factor for each spatial axis separately.
// It must be given one value per spatial axis.
func (b *UpscaleBuilder) FactorPerAxis(factors ...int) *UpscaleBuilder {
	if len(factors) != b.numSpatialDims {
		exceptions.Panicf("FactorPerAxis() must receive %d values, one per spatial axis, got %d",
			b.numSpatialDims, len(factors))
	}
	b.factors = factors
	return b
}

// Mode sets the upscaling mode. It defaults to backends.UpscaleModeRepeat.
func (b *UpscaleBuilder) Mode(mode backends.UpscaleMode) *UpscaleBuilder {
	b.mode = mode
	return b
}

// Done builds the UpscaleLayer, validating its configuration against the
// input shape given at construction. It panics on invalid configurations.
func (b *UpscaleBuilder) Done() *UpscaleLayer {
	if b.factors == nil {
		exceptions.Panicf("upscaling layer requires a factor, set it with Factor() or FactorPerAxis()")
	}
	layer := &UpscaleLayer{
		numSpatialDims: b.numSpatialDims,
		factors:        b.factors,
		mode:           b.mode,
	}
	// Surfaces invalid factors or an invalid mode at construction.
	_ = layer.OutputShape(b.inputShape)
	return layer
}

func (u *UpscaleLayer) checkRank(shape shapes.Shape) {
	if shape.Rank() != u.numSpatialDims+2 {
		exceptions.Panicf("%dD upscaling layer requires a rank-%d input, got shape %s",
			u.numSpatialDims, u.numSpatialDims+2, shape)
	}
}

// OutputShape multiplies every spatial axis by its factor. Unknown spatial
// dimensions stay unknown.
func (u *UpscaleLayer) OutputShape(inputShape shapes.Shape) shapes.Shape {
	u.checkRank(inputShape)
	output, err := shapeinference.UpscaleOp(inputShape, u.factors, u.mode)
	if err != nil {
		panic(err)
	}
	return output
}

// Apply upscales the input tensor. When every factor is 1 the input is
// returned unchanged.
func (u *UpscaleLayer) Apply(x *tensors.Tensor) *tensors.Tensor {
	u.checkRank(x.Shape())
	identity := true
	for _, factor := range u.factors {
		if factor != 1 {
			identity = false
			break
		}
	}
	if identity {
		return x
	}
	switch u.mode {
	case backends.UpscaleModeRepeat:
		// Repeating the last spatial axis first keeps the earlier axes'
		// strides valid while they are still at their original sizes.
		for axis := u.numSpatialDims - 1; axis >= 0; axis-- {
			if u.factors[axis] > 1 {
				x = simplego.Repeat(x, 2+axis, u.factors[axis])
			}
		}
		return x
	case backends.UpscaleModeDilate:
		fullFactors := make([]int, x.Rank())
		fullFactors[0], fullFactors[1] = 1, 1
		copy(fullFactors[2:], u.factors)
		return simplego.Dilate(x, fullFactors)
	default:
		exceptions.Panicf("invalid upscaling mode %d", u.mode)
		panic(nil) // Disable lint warning.
	}
}
