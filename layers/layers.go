// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

// Package layers implements pooling and rescaling operators for feed-forward
// neural network graphs: windowed max/average pooling over 1D, 2D and 3D
// signals, repeat/dilate upscaling, pooling across the feature axis
// (including competitive "winner take all" gating) and global spatial
// pooling.
//
// Layers are stateless nodes. Each offers two contracts:
//
//   - OutputShape propagates a static input shape to the output shape the
//     layer would produce, without touching data. Unknown dimensions
//     (shapes.UnknownDim) flow through untouched wherever the output length
//     depends on them.
//   - Apply computes the layer's output for a concrete input tensor. The
//     output shape of Apply always matches OutputShape evaluated on the
//     input's shape.
//
// Layers are created with builders: a constructor takes the static input
// shape (anything implementing shapes.HasShape), chained setters configure
// the optional parameters and Done builds the layer, validating the full
// configuration. Invalid configurations panic with errors that can be caught
// with exceptions.Try.
package layers

import (
	"github.com/gomlx/exceptions"

	"github.com/poolops/poolops/backends/shapeinference"
	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
)

// Layer is a stateless operator in a feed-forward graph.
type Layer interface {
	// OutputShape returns the shape produced for the given input shape. It
	// panics if the input shape is incompatible with the layer.
	OutputShape(inputShape shapes.Shape) shapes.Shape

	// Apply computes the layer's output for a concrete input tensor.
	Apply(x *tensors.Tensor) *tensors.Tensor
}

// Reducer collapses a group of values to one. It is used to parametrize
// FeaturePool and GlobalPool. The group slice is reused across calls and must
// not be retained.
type Reducer func(group []float64) float64

// ReduceMax returns the largest value of the group.
func ReduceMax(group []float64) float64 {
	if len(group) == 0 {
		exceptions.Panicf("ReduceMax: cannot reduce an empty group")
	}
	best := group[0]
	for _, v := range group[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// ReduceMean returns the arithmetic mean of the group.
func ReduceMean(group []float64) float64 {
	if len(group) == 0 {
		exceptions.Panicf("ReduceMean: cannot reduce an empty group")
	}
	var sum float64
	for _, v := range group {
		sum += v
	}
	return sum / float64(len(group))
}

// ReduceSum returns the sum of the group.
func ReduceSum(group []float64) float64 {
	var sum float64
	for _, v := range group {
		sum += v
	}
	return sum
}

// PoolOutputLength returns the output length of a pooling operator along one
// axis, given the input length, window size, stride, symmetric padding and
// border policy. inputLength may be shapes.UnknownDim, in which case it
// returns shapes.UnknownDim. It panics on invalid parameters.
//
// See shapeinference.PoolOutputLength for the error-returning version.
func PoolOutputLength(inputLength, window, stride, pad int, ignoreBorder bool) int {
	length, err := shapeinference.PoolOutputLength(inputLength, window, stride, pad, ignoreBorder)
	if err != nil {
		panic(err)
	}
	return length
}
