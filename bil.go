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

// BILReader reads a cube stored band-interleaved-by-line: the natural
// on-disk shape is (lines, bands, samples), with sample varying fastest
// within a line.
type BILReader struct {
	baseReader
}

func newBILReader(b baseReader) *BILReader {
	return &BILReader{baseReader: b}
}

func (r *BILReader) GetPixel(line, sample, band int) (float64, error) {
	if err := r.checkPixel(line, sample, band); err != nil {
		return 0, err
	}
	elem, _ := r.LocToFlat(line, sample, band)
	return r.source().at(elem), nil
}

// GetBandRaw returns raw[:, band, :], an (lines x samples) view.
func (r *BILReader) GetBandRaw(band int) (Plane, error) {
	if err := r.checkBand(band); err != nil {
		return Plane{}, err
	}
	return Plane{
		src:       r.source(),
		base:      band * r.samples,
		rows:      r.lines,
		cols:      r.samples,
		rowStride: r.bands * r.samples,
		colStride: 1,
	}, nil
}

// GetSpectrumRaw returns raw[line, :, sample], a (bands,) view.
func (r *BILReader) GetSpectrumRaw(line, sample int) (Vector, error) {
	if err := r.checkLine(line); err != nil {
		return Vector{}, err
	}
	if err := r.checkSample(sample); err != nil {
		return Vector{}, err
	}
	return Vector{
		src:    r.source(),
		base:   line*r.bands*r.samples + sample,
		n:      r.bands,
		stride: r.samples,
	}, nil
}

// GetFocalPlaneRaw returns raw[line, :, :], a (bands x samples) view: this
// is already the natural shape for BIL, no transpose needed.
func (r *BILReader) GetFocalPlaneRaw(line int) (Plane, error) {
	if err := r.checkLine(line); err != nil {
		return Plane{}, err
	}
	return Plane{
		src:       r.source(),
		base:      line * r.bands * r.samples,
		rows:      r.bands,
		cols:      r.samples,
		rowStride: r.samples,
		colStride: 1,
	}, nil
}

// GetFocalPlaneDepthRaw returns raw[:, band, sample], a (lines,) view.
func (r *BILReader) GetFocalPlaneDepthRaw(sample, band int) (Vector, error) {
	if err := r.checkSample(sample); err != nil {
		return Vector{}, err
	}
	if err := r.checkBand(band); err != nil {
		return Vector{}, err
	}
	return Vector{
		src:    r.source(),
		base:   band*r.samples + sample,
		n:      r.lines,
		stride: r.bands * r.samples,
	}, nil
}

// GetLineOfSpectraRaw returns the same (bands x samples) view as
// GetFocalPlaneRaw; see DESIGN.md's Open Question resolution fixing this
// contract to (B,S) for every interleave.
func (r *BILReader) GetLineOfSpectraRaw(line int) (Plane, error) {
	return r.GetFocalPlaneRaw(line)
}

// BandBoundary returns Samples: consecutive bands at a fixed line/sample
// are Samples elements apart in a BIL buffer.
func (r *BILReader) BandBoundary() int {
	return r.samples
}

func (r *BILReader) LocToFlat(line, sample, band int) (int, error) {
	if err := r.checkPixel(line, sample, band); err != nil {
		return 0, err
	}
	return line*r.bands*r.samples + band*r.samples + sample, nil
}

func (r *BILReader) FlatToLoc(flat int) (line, sample, band int, err error) {
	if flat < 0 || flat >= r.lines*r.samples*r.bands {
		return 0, 0, 0, indexOutOfRangeErr("flat index %d out of range", flat)
	}
	line = flat / (r.bands * r.samples)
	rem := flat % (r.bands * r.samples)
	band = rem / r.samples
	sample = rem % r.samples
	return line, sample, band, nil
}
