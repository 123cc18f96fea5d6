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

// BSQReader reads a cube stored band-sequential: the natural on-disk shape
// is (bands, lines, samples), with sample varying fastest within a line.
type BSQReader struct {
	baseReader
}

func newBSQReader(b baseReader) *BSQReader {
	return &BSQReader{baseReader: b}
}

func (r *BSQReader) GetPixel(line, sample, band int) (float64, error) {
	if err := r.checkPixel(line, sample, band); err != nil {
		return 0, err
	}
	elem, _ := r.LocToFlat(line, sample, band)
	return r.source().at(elem), nil
}

// GetBandRaw returns raw[band, :, :], an (lines x samples) view: this is a
// fully contiguous block of the underlying buffer.
func (r *BSQReader) GetBandRaw(band int) (Plane, error) {
	if err := r.checkBand(band); err != nil {
		return Plane{}, err
	}
	return Plane{
		src:       r.source(),
		base:      band * r.lines * r.samples,
		rows:      r.lines,
		cols:      r.samples,
		rowStride: r.samples,
		colStride: 1,
	}, nil
}

// GetSpectrumRaw returns raw[:, line, sample], a (bands,) view.
func (r *BSQReader) GetSpectrumRaw(line, sample int) (Vector, error) {
	if err := r.checkLine(line); err != nil {
		return Vector{}, err
	}
	if err := r.checkSample(sample); err != nil {
		return Vector{}, err
	}
	return Vector{
		src:    r.source(),
		base:   line*r.samples + sample,
		n:      r.bands,
		stride: r.lines * r.samples,
	}, nil
}

// GetFocalPlaneRaw returns raw[:, line, :], a (bands x samples) view.
func (r *BSQReader) GetFocalPlaneRaw(line int) (Plane, error) {
	if err := r.checkLine(line); err != nil {
		return Plane{}, err
	}
	return Plane{
		src:       r.source(),
		base:      line * r.samples,
		rows:      r.bands,
		cols:      r.samples,
		rowStride: r.lines * r.samples,
		colStride: 1,
	}, nil
}

// GetFocalPlaneDepthRaw returns raw[band, :, sample], a (lines,) view.
func (r *BSQReader) GetFocalPlaneDepthRaw(sample, band int) (Vector, error) {
	if err := r.checkSample(sample); err != nil {
		return Vector{}, err
	}
	if err := r.checkBand(band); err != nil {
		return Vector{}, err
	}
	return Vector{
		src:    r.source(),
		base:   band*r.lines*r.samples + sample,
		n:      r.lines,
		stride: r.samples,
	}, nil
}

// GetLineOfSpectraRaw returns the same (bands x samples) view as
// GetFocalPlaneRaw; see DESIGN.md's Open Question resolution fixing this
// contract to (B,S) for every interleave.
func (r *BSQReader) GetLineOfSpectraRaw(line int) (Plane, error) {
	return r.GetFocalPlaneRaw(line)
}

// BandBoundary returns Samples*Lines: consecutive bands at a fixed
// line/sample are an entire plane apart in a BSQ buffer.
func (r *BSQReader) BandBoundary() int {
	return r.samples * r.lines
}

func (r *BSQReader) LocToFlat(line, sample, band int) (int, error) {
	if err := r.checkPixel(line, sample, band); err != nil {
		return 0, err
	}
	return band*r.lines*r.samples + line*r.samples + sample, nil
}

func (r *BSQReader) FlatToLoc(flat int) (line, sample, band int, err error) {
	if flat < 0 || flat >= r.lines*r.samples*r.bands {
		return 0, 0, 0, indexOutOfRangeErr("flat index %d out of range", flat)
	}
	band = flat / (r.lines * r.samples)
	rem := flat % (r.lines * r.samples)
	line = rem / r.samples
	sample = rem % r.samples
	return line, sample, band, nil
}
