// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

// Package backends defines the operation tags shared between the layers
// package and the engines that execute them.
//
// The tags are plain enums: a PoolMode selects the reduction semantics of a
// windowed pooling operation, and an UpscaleMode selects the expansion
// strategy of an upscaling operation. The engine (see backends/simplego)
// implements the corresponding computations.
package backends

// PoolMode selects the reduction applied to each pooling window.
type PoolMode int

//go:generate go tool enumer -type=PoolMode -trimprefix=PoolMode -output=gen_poolmode_enumer.go backends.go

const (
	// PoolModeMax takes the maximum value of each window. Padded positions
	// never win: the maximum is taken over the elements of the window that
	// fall inside the (unpadded) input.
	PoolModeMax PoolMode = iota

	// PoolModeAverageIncludePad averages over the full window, counting
	// padded positions as zeros.
	PoolModeAverageIncludePad

	// PoolModeAverageExcludePad averages only over the window positions that
	// fall inside the (unpadded) input.
	PoolModeAverageExcludePad
)

// UpscaleMode selects how an upscaling operation expands its input.
type UpscaleMode int

//go:generate go tool enumer -type=UpscaleMode -trimprefix=UpscaleMode -output=gen_upscalemode_enumer.go backends.go

const (
	// UpscaleModeRepeat replicates every element contiguously along the
	// upscaled axes.
	UpscaleModeRepeat UpscaleMode = iota

	// UpscaleModeDilate places the elements on a strided lattice of the
	// output, leaving zeros in between.
	UpscaleModeDilate
)
