// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices provides the small amount of slice functionality missing
// from the standard slices package that this repository needs.
package xslices

import (
	"golang.org/x/exp/constraints"
)

// SliceWithValue creates a slice of the given size filled with the given value.
func SliceWithValue[T any](size int, value T) []T {
	s := make([]T, size)
	for ii := range s {
		s[ii] = value
	}
	return s
}

// Product returns the product of the elements of the slice. An empty slice
// yields 1.
func Product[T constraints.Integer | constraints.Float](slice []T) T {
	p := T(1)
	for _, v := range slice {
		p *= v
	}
	return p
}
