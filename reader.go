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
	"fmt"
	"io"
)

// Reader is the capability interface a cube's on-disk interleave must
// implement. [BIPReader], [BILReader], and [BSQReader] are the three
// concrete implementations; callers normally reach a Reader through
// [Cube.Open] or [CreateCube] rather than constructing one directly.
//
// Every accessor honors the cube's on-disk byte order when decoding values:
// there is no undecoded "raw" representation at this layer, only the
// distinction between a non-owning, aliased [Plane]/[Vector] view (the
// "Raw" methods) and an owned, independent copy (produced by [Cube]'s
// cooked accessors, which call these methods and then copy).
type Reader interface {
	// GetPixel returns the decoded value at (line, sample, band).
	GetPixel(line, sample, band int) (float64, error)

	// GetBandRaw returns an (lines x samples) view at the given band.
	GetBandRaw(band int) (Plane, error)

	// GetSpectrumRaw returns a (bands,) view at the given pixel.
	GetSpectrumRaw(line, sample int) (Vector, error)

	// GetFocalPlaneRaw returns a (bands x samples) view at the given line.
	GetFocalPlaneRaw(line int) (Plane, error)

	// GetFocalPlaneDepthRaw returns a (lines,) view at the given sample and
	// band.
	GetFocalPlaneDepthRaw(sample, band int) (Vector, error)

	// GetLineOfSpectraRaw returns a (bands x samples) view of every
	// spectrum along the given line. Like GetFocalPlaneRaw, it is always
	// shaped (bands, samples) regardless of interleave; see DESIGN.md's
	// Open Question resolution.
	GetLineOfSpectraRaw(line int) (Plane, error)

	// BandBoundary returns the number of flat-index elements between
	// consecutive bands at a fixed line and sample.
	BandBoundary() int

	// LocToFlat converts a (line, sample, band) location to a flat index.
	LocToFlat(line, sample, band int) (int, error)

	// FlatToLoc converts a flat index back to a (line, sample, band)
	// location.
	FlatToLoc(flat int) (line, sample, band int, err error)

	// Save writes the reader's raw buffer, byte for byte, to w.
	Save(w io.Writer) error
}

// baseReader holds the state common to all three interleave readers: the
// raw byte buffer (aliasing the cube's mapping), its element width and
// decode parameters, and the cube's geometry.
type baseReader struct {
	buf      []byte
	itemSize int
	dataType DataType
	order    binary.ByteOrder

	lines, samples, bands int
}

func (b *baseReader) source() elemSource {
	return elemSource{buf: b.buf, itemSize: b.itemSize, dataType: b.dataType, order: b.order}
}

// Save writes the entire raw buffer to w. This is shared by all three
// interleave readers since saving never depends on interleave: the buffer
// already holds the bytes in on-disk order and layout.
func (b *baseReader) Save(w io.Writer) error {
	_, err := w.Write(b.buf)
	if err != nil {
		return fmt.Errorf("%w: writing cube data: %w", errHSI, err)
	}
	return nil
}

func (b *baseReader) checkLine(line int) error {
	if line < 0 || line >= b.lines {
		return indexOutOfRangeErr("line %d out of range [0,%d)", line, b.lines)
	}
	return nil
}

func (b *baseReader) checkSample(sample int) error {
	if sample < 0 || sample >= b.samples {
		return indexOutOfRangeErr("sample %d out of range [0,%d)", sample, b.samples)
	}
	return nil
}

func (b *baseReader) checkBand(band int) error {
	if band < 0 || band >= b.bands {
		return indexOutOfRangeErr("band %d out of range [0,%d)", band, b.bands)
	}
	return nil
}

func (b *baseReader) checkPixel(line, sample, band int) error {
	if err := b.checkLine(line); err != nil {
		return err
	}
	if err := b.checkSample(sample); err != nil {
		return err
	}
	return b.checkBand(band)
}
