// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hsi

import (
	"encoding/binary"
	"math"
)

// decodeElement interprets the itemSize bytes at buf[elem*itemSize:] as dt,
// in the given byte order, and returns it as a float64. Go has no single
// numeric type that losslessly represents every data type this package
// supports (int64/uint64 vs float64), but every caller of this package
// (extrema tracking, wavelength math, display scaling) already operates on
// floating-point samples, so decoding to float64 at the view boundary keeps
// the rest of the package free of a per-data-type generic parameter.
func decodeElement(buf []byte, elem, itemSize int, dt DataType, order binary.ByteOrder) float64 {
	off := elem * itemSize
	b := buf[off : off+itemSize]
	switch dt {
	case DataTypeInt8:
		return float64(int8(b[0]))
	case DataTypeInt16:
		return float64(int16(order.Uint16(b)))
	case DataTypeUint16:
		return float64(order.Uint16(b))
	case DataTypeInt32:
		return float64(int32(order.Uint32(b)))
	case DataTypeUint32:
		return float64(order.Uint32(b))
	case DataTypeInt64:
		return float64(int64(order.Uint64(b)))
	case DataTypeUint64:
		return float64(order.Uint64(b))
	case DataTypeFloat32:
		return float64(math.Float32frombits(order.Uint32(b)))
	case DataTypeFloat64:
		return math.Float64frombits(order.Uint64(b))
	default:
		return 0
	}
}

// encodeElement writes v into buf[elem*itemSize:] as dt, in the given byte
// order; it is the inverse of decodeElement.
func encodeElement(buf []byte, elem, itemSize int, dt DataType, order binary.ByteOrder, v float64) {
	off := elem * itemSize
	b := buf[off : off+itemSize]
	switch dt {
	case DataTypeInt8:
		b[0] = byte(int8(v))
	case DataTypeInt16:
		order.PutUint16(b, uint16(int16(v)))
	case DataTypeUint16:
		order.PutUint16(b, uint16(v))
	case DataTypeInt32:
		order.PutUint32(b, uint32(int32(v)))
	case DataTypeUint32:
		order.PutUint32(b, uint32(v))
	case DataTypeInt64:
		order.PutUint64(b, uint64(int64(v)))
	case DataTypeUint64:
		order.PutUint64(b, uint64(v))
	case DataTypeFloat32:
		order.PutUint32(b, math.Float32bits(float32(v)))
	case DataTypeFloat64:
		order.PutUint64(b, math.Float64bits(v))
	}
}

// elemSource carries the shared decode parameters for a [Plane] or [Vector]
// view: the underlying raw byte buffer aliasing the cube's mapping, the
// element width, data type, and byte order to decode with.
type elemSource struct {
	buf      []byte
	itemSize int
	dataType DataType
	order    binary.ByteOrder
}

func (s elemSource) at(elem int) float64 {
	return decodeElement(s.buf, elem, s.itemSize, s.dataType, s.order)
}

// rawAt returns the itemSize raw bytes backing element elem, unchanged by
// byte order: used by the streaming re-interleaver, which reshuffles bytes
// without decoding them.
func (s elemSource) rawAt(elem int) []byte {
	off := elem * s.itemSize
	return s.buf[off : off+s.itemSize]
}

// Plane is a non-owning, two-dimensional, possibly-strided view over a
// cube's raw buffer, as returned by the in-place focal-plane, band, and
// line-of-spectra accessors. Values are decoded on access; the view itself
// performs no copy and aliases the cube's mapping, so it must not outlive
// the [Cube] it was obtained from.
type Plane struct {
	src                   elemSource
	base                  int // element index of (0, 0)
	rows, cols            int
	rowStride, colStride  int // in elements
}

// Rows returns the number of rows in the plane.
func (p Plane) Rows() int { return p.rows }

// Cols returns the number of columns in the plane.
func (p Plane) Cols() int { return p.cols }

// At returns the decoded value at (row, col).
func (p Plane) At(row, col int) float64 {
	return p.src.at(p.base + row*p.rowStride + col*p.colStride)
}

// Copy materializes the plane into an owned, row-major []float64 slice of
// length Rows()*Cols(), independent of the cube's mapping.
func (p Plane) Copy() []float64 {
	out := make([]float64, p.rows*p.cols)
	i := 0
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			out[i] = p.At(r, c)
			i++
		}
	}
	return out
}

// RawBytes flattens the plane in row-major order into its raw on-disk
// bytes, unchanged by byte order: used by the streaming re-interleaver to
// reshuffle bytes between interleaves without a decode/encode round trip.
func (p Plane) RawBytes() []byte {
	out := make([]byte, 0, p.rows*p.cols*p.src.itemSize)
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			out = append(out, p.src.rawAt(p.base+r*p.rowStride+c*p.colStride)...)
		}
	}
	return out
}

// transposePlane returns a view of p with its row and column axes swapped;
// no data moves, only the strides describing how to reach it.
func transposePlane(p Plane) Plane {
	return Plane{
		src:       p.src,
		base:      p.base,
		rows:      p.cols,
		cols:      p.rows,
		rowStride: p.colStride,
		colStride: p.rowStride,
	}
}

// Vector is a non-owning, one-dimensional, possibly-strided view over a
// cube's raw buffer, as returned by the in-place spectrum and focal-plane
// depth accessors. It aliases the cube's mapping and must not outlive the
// [Cube] it was obtained from.
type Vector struct {
	src    elemSource
	base   int
	n      int
	stride int // in elements
}

// Len returns the number of elements in the vector.
func (v Vector) Len() int { return v.n }

// At returns the decoded value at index i.
func (v Vector) At(i int) float64 {
	return v.src.at(v.base + i*v.stride)
}

// Copy materializes the vector into an owned []float64 slice, independent
// of the cube's mapping.
func (v Vector) Copy() []float64 {
	out := make([]float64, v.n)
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// min returns the minimum value across the vector.
func (v Vector) min() float64 {
	m := v.At(0)
	for i := 1; i < v.n; i++ {
		if x := v.At(i); x < m {
			m = x
		}
	}
	return m
}

// max returns the maximum value across the vector.
func (v Vector) max() float64 {
	m := v.At(0)
	for i := 1; i < v.n; i++ {
		if x := v.At(i); x > m {
			m = x
		}
	}
	return m
}

// min returns the minimum value across the plane.
func (p Plane) min() float64 {
	m := p.At(0, 0)
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			if x := p.At(r, c); x < m {
				m = x
			}
		}
	}
	return m
}

// max returns the maximum value across the plane.
func (p Plane) max() float64 {
	m := p.At(0, 0)
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			if x := p.At(r, c); x > m {
				m = x
			}
		}
	}
	return m
}
