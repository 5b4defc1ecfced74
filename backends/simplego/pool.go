// Copyright 2026 The PoolOps Authors. SPDX-License-Identifier: Apache-2.0

package simplego

import (
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"

	"github.com/poolops/poolops/backends"
	"github.com/poolops/poolops/backends/shapeinference"
	"github.com/poolops/poolops/types/shapes"
	"github.com/poolops/poolops/types/tensors"
)

// Pool2D applies a windowed reduction over the two trailing axes of a rank-4
// tensor shaped [batch, channels, height, width].
//
// Each output element reduces a window of the given size, starting every
// strides elements, over an input virtually padded by pads zeros on both
// borders of each spatial axis. Padding requires ignoreBorder=true; with
// ignoreBorder=false a partial trailing window is appended on each axis when
// elements would otherwise be left uncovered.
//
// The reduction is selected by mode: maximum (over the in-bounds part of the
// window only, so padding never wins), or average including/excluding the
// padded positions. Averages on integer dtypes truncate towards zero.
func Pool2D(x *tensors.Tensor, window, strides, pads [2]int, ignoreBorder bool, mode backends.PoolMode) *tensors.Tensor {
	if isFloat16(x) {
		return toFloat16(Pool2D(toFloat32(x), window, strides, pads, ignoreBorder, mode))
	}
	outShape, err := shapeinference.Pool2DOp(x.Shape(), window, strides, pads, ignoreBorder, mode)
	if err != nil {
		panic(err)
	}
	if !ignoreBorder && klog.V(2).Enabled() {
		klog.Infof("simplego.Pool2D: ignoreBorder=false takes the slower partial-window path (shape=%s)", x.Shape())
	}
	switch x.DType() {
	case dtypes.Float32:
		return pool2D[float32](x, outShape, window, strides, pads, mode)
	case dtypes.Float64:
		return pool2D[float64](x, outShape, window, strides, pads, mode)
	case dtypes.Int32:
		return pool2D[int32](x, outShape, window, strides, pads, mode)
	case dtypes.Int64:
		return pool2D[int64](x, outShape, window, strides, pads, mode)
	default:
		unsupportedDType("Pool2D", x.DType())
	}
	panic(nil) // Disable lint warning.
}

func pool2D[T numeric](x *tensors.Tensor, outShape shapes.Shape, window, strides, pads [2]int, mode backends.PoolMode) *tensors.Tensor {
	in := tensors.FlatData[T](x)
	out := tensors.Zeros(outShape)
	outFlat := tensors.FlatData[T](out)

	dims := x.Shape().Dimensions
	batch, channels, height, width := dims[0], dims[1], dims[2], dims[3]
	outHeight, outWidth := outShape.Dimensions[2], outShape.Dimensions[3]

	outIdx := 0
	for n := 0; n < batch; n++ {
		for c := 0; c < channels; c++ {
			base := (n*channels + c) * height * width
			for oh := 0; oh < outHeight; oh++ {
				hStart := oh*strides[0] - pads[0]
				hLo, hHi := max(hStart, 0), min(hStart+window[0], height)
				for ow := 0; ow < outWidth; ow++ {
					wStart := ow*strides[1] - pads[1]
					wLo, wHi := max(wStart, 0), min(wStart+window[1], width)
					outFlat[outIdx] = reduceWindow2D(in, base, width, hLo, hHi, wLo, wHi,
						windowCount2D(hStart, wStart, window, pads, height, width), mode)
					outIdx++
				}
			}
		}
	}
	return out
}

// windowCount2D is the number of window positions inside the padded input,
// the divisor of the padding-inclusive average.
func windowCount2D(hStart, wStart int, window, pads [2]int, height, width int) int {
	h := min(hStart+window[0], height+pads[0]) - max(hStart, -pads[0])
	w := min(wStart+window[1], width+pads[1]) - max(wStart, -pads[1])
	return h * w
}

func reduceWindow2D[T numeric](in []T, base, width, hLo, hHi, wLo, wHi, paddedCount int, mode backends.PoolMode) T {
	switch mode {
	case backends.PoolModeMax:
		best := in[base+hLo*width+wLo]
		for h := hLo; h < hHi; h++ {
			row := base + h*width
			for w := wLo; w < wHi; w++ {
				if v := in[row+w]; v > best {
					best = v
				}
			}
		}
		return best
	default:
		var sum float64
		for h := hLo; h < hHi; h++ {
			row := base + h*width
			for w := wLo; w < wHi; w++ {
				sum += float64(in[row+w])
			}
		}
		count := paddedCount
		if mode == backends.PoolModeAverageExcludePad {
			count = (hHi - hLo) * (wHi - wLo)
		}
		return T(sum / float64(count))
	}
}

// Pool3D applies a windowed reduction over the three trailing axes of a
// rank-5 tensor shaped [batch, channels, depth, height, width]. See Pool2D
// for the window, stride, padding and mode semantics.
func Pool3D(x *tensors.Tensor, window, strides, pads [3]int, ignoreBorder bool, mode backends.PoolMode) *tensors.Tensor {
	if isFloat16(x) {
		return toFloat16(Pool3D(toFloat32(x), window, strides, pads, ignoreBorder, mode))
	}
	outShape, err := shapeinference.Pool3DOp(x.Shape(), window, strides, pads, ignoreBorder, mode)
	if err != nil {
		panic(err)
	}
	if !ignoreBorder && klog.V(2).Enabled() {
		klog.Infof("simplego.Pool3D: ignoreBorder=false takes the slower partial-window path (shape=%s)", x.Shape())
	}
	switch x.DType() {
	case dtypes.Float32:
		return pool3D[float32](x, outShape, window, strides, pads, mode)
	case dtypes.Float64:
		return pool3D[float64](x, outShape, window, strides, pads, mode)
	case dtypes.Int32:
		return pool3D[int32](x, outShape, window, strides, pads, mode)
	case dtypes.Int64:
		return pool3D[int64](x, outShape, window, strides, pads, mode)
	default:
		unsupportedDType("Pool3D", x.DType())
	}
	panic(nil) // Disable lint warning.
}

func pool3D[T numeric](x *tensors.Tensor, outShape shapes.Shape, window, strides, pads [3]int, mode backends.PoolMode) *tensors.Tensor {
	in := tensors.FlatData[T](x)
	out := tensors.Zeros(outShape)
	outFlat := tensors.FlatData[T](out)

	dims := x.Shape().Dimensions
	batch, channels, depth, height, width := dims[0], dims[1], dims[2], dims[3], dims[4]
	outDepth, outHeight, outWidth := outShape.Dimensions[2], outShape.Dimensions[3], outShape.Dimensions[4]

	outIdx := 0
	for n := 0; n < batch; n++ {
		for c := 0; c < channels; c++ {
			base := (n*channels + c) * depth * height * width
			for od := 0; od < outDepth; od++ {
				dStart := od*strides[0] - pads[0]
				dLo, dHi := max(dStart, 0), min(dStart+window[0], depth)
				for oh := 0; oh < outHeight; oh++ {
					hStart := oh*strides[1] - pads[1]
					hLo, hHi := max(hStart, 0), min(hStart+window[1], height)
					for ow := 0; ow < outWidth; ow++ {
						wStart := ow*strides[2] - pads[2]
						wLo, wHi := max(wStart, 0), min(wStart+window[2], width)
						outFlat[outIdx] = reduceWindow3D(in, base, height, width,
							dLo, dHi, hLo, hHi, wLo, wHi,
							windowCount3D(dStart, hStart, wStart, window, pads, depth, height, width), mode)
						outIdx++
					}
				}
			}
		}
	}
	return out
}

func windowCount3D(dStart, hStart, wStart int, window, pads [3]int, depth, height, width int) int {
	d := min(dStart+window[0], depth+pads[0]) - max(dStart, -pads[0])
	h := min(hStart+window[1], height+pads[1]) - max(hStart, -pads[1])
	w := min(wStart+window[2], width+pads[2]) - max(wStart, -pads[2])
	return d * h * w
}

func reduceWindow3D[T numeric](in []T, base, height, width, dLo, dHi, hLo, hHi, wLo, wHi, paddedCount int, mode backends.PoolMode) T {
	switch mode {
	case backends.PoolModeMax:
		best := in[base+(dLo*height+hLo)*width+wLo]
		for d := dLo; d < dHi; d++ {
			for h := hLo; h < hHi; h++ {
				row := base + (d*height+h)*width
				for w := wLo; w < wHi; w++ {
					if v := in[row+w]; v > best {
						best = v
					}
				}
			}
		}
		return best
	default:
		var sum float64
		for d := dLo; d < dHi; d++ {
			for h := hLo; h < hHi; h++ {
				row := base + (d*height+h)*width
				for w := wLo; w < wHi; w++ {
					sum += float64(in[row+w])
				}
			}
		}
		count := paddedCount
		if mode == backends.PoolModeAverageExcludePad {
			count = (dHi - dLo) * (hHi - hLo) * (wHi - wLo)
		}
		return T(sum / float64(count))
	}
}
