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

// BIPReader reads a cube stored band-interleaved-by-pixel: the natural
// on-disk shape is (lines, samples, bands), with band varying fastest.
type BIPReader struct {
	baseReader
}

func newBIPReader(b baseReader) *BIPReader {
	return &BIPReader{baseReader: b}
}

func (r *BIPReader) GetPixel(line, sample, band int) (float64, error) {
	if err := r.checkPixel(line, sample, band); err != nil {
		return 0, err
	}
	elem, _ := r.LocToFlat(line, sample, band)
	return r.source().at(elem), nil
}

// GetBandRaw returns raw[:, :, band], an (lines x samples) view.
func (r *BIPReader) GetBandRaw(band int) (Plane, error) {
	if err := r.checkBand(band); err != nil {
		return Plane{}, err
	}
	return Plane{
		src:       r.source(),
		base:      band,
		rows:      r.lines,
		cols:      r.samples,
		rowStride: r.samples * r.bands,
		colStride: r.bands,
	}, nil
}

// GetSpectrumRaw returns raw[line, sample, :], a (bands,) view.
func (r *BIPReader) GetSpectrumRaw(line, sample int) (Vector, error) {
	if err := r.checkLine(line); err != nil {
		return Vector{}, err
	}
	if err := r.checkSample(sample); err != nil {
		return Vector{}, err
	}
	return Vector{
		src:    r.source(),
		base:   line*r.samples*r.bands + sample*r.bands,
		n:      r.bands,
		stride: 1,
	}, nil
}

// GetFocalPlaneRaw returns transpose(raw[line, :, :]), a (bands x samples)
// view (bands vary fastest in the underlying buffer, so the band axis gets
// unit stride here).
func (r *BIPReader) GetFocalPlaneRaw(line int) (Plane, error) {
	if err := r.checkLine(line); err != nil {
		return Plane{}, err
	}
	return Plane{
		src:       r.source(),
		base:      line * r.samples * r.bands,
		rows:      r.bands,
		cols:      r.samples,
		rowStride: 1,
		colStride: r.bands,
	}, nil
}

// GetFocalPlaneDepthRaw returns raw[:, sample, band], a (lines,) view.
func (r *BIPReader) GetFocalPlaneDepthRaw(sample, band int) (Vector, error) {
	if err := r.checkSample(sample); err != nil {
		return Vector{}, err
	}
	if err := r.checkBand(band); err != nil {
		return Vector{}, err
	}
	return Vector{
		src:    r.source(),
		base:   sample*r.bands + band,
		n:      r.lines,
		stride: r.samples * r.bands,
	}, nil
}

// GetLineOfSpectraRaw returns the same (bands x samples) view as
// GetFocalPlaneRaw; see DESIGN.md's Open Question resolution fixing this
// contract to (B,S) for every interleave.
func (r *BIPReader) GetLineOfSpectraRaw(line int) (Plane, error) {
	return r.GetFocalPlaneRaw(line)
}

// BandBoundary returns 1: consecutive bands at a fixed line/sample are
// adjacent elements in a BIP buffer.
func (r *BIPReader) BandBoundary() int {
	return 1
}

func (r *BIPReader) LocToFlat(line, sample, band int) (int, error) {
	if err := r.checkPixel(line, sample, band); err != nil {
		return 0, err
	}
	return line*r.bands*r.samples + sample*r.bands + band, nil
}

func (r *BIPReader) FlatToLoc(flat int) (line, sample, band int, err error) {
	if flat < 0 || flat >= r.lines*r.samples*r.bands {
		return 0, 0, 0, indexOutOfRangeErr("flat index %d out of range", flat)
	}
	line = flat / (r.bands * r.samples)
	rem := flat % (r.bands * r.samples)
	sample = rem / r.bands
	band = rem % r.bands
	return line, sample, band, nil
}
