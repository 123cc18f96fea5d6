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
	"os"
	"path/filepath"
)

// newReader builds the concrete Reader matching interleave over raw,
// dispatching to the three interleave-specific constructors.
func newReader(interleave Interleave, raw []byte, itemSize int, dt DataType, order binary.ByteOrder, lines, samples, bands int) (Reader, error) {
	base := baseReader{
		buf:      raw,
		itemSize: itemSize,
		dataType: dt,
		order:    order,
		lines:    lines,
		samples:  samples,
		bands:    bands,
	}
	switch interleave {
	case InterleaveBIP:
		return newBIPReader(base), nil
	case InterleaveBIL:
		return newBILReader(base), nil
	case InterleaveBSQ:
		return newBSQReader(base), nil
	default:
		return nil, unsupportedInterleaveErr(interleave.String())
	}
}

// createFile creates (or truncates) path for writing, making any missing
// parent directories along the way.
func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// checkOpen reports an error if the cube has no bound reader, or if it is a
// dummy cube with no backing data.
func (c *Cube) checkOpen() error {
	if c.reader == nil {
		return corruptDescriptorErr("cube is not open")
	}
	if c.dummy {
		return fmt.Errorf("%w: cube has no backing data", ErrOutOfResources)
	}
	return nil
}

// checkBound reports whether the cube has a Reader bound at all, regardless
// of whether it has backing data. Pure addressing operations (LocToFlat,
// FlatToLoc, BandBoundary) only need geometry, which a dummy cube still has.
func (c *Cube) checkBound() error {
	if c.reader == nil {
		return corruptDescriptorErr("cube is not open")
	}
	return nil
}

// GetPixel returns the decoded value at (line, sample, band) and widens the
// cube's spectra extrema to include it.
func (c *Cube) GetPixel(line, sample, band int) (float64, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	v, err := c.reader.GetPixel(line, sample, band)
	if err != nil {
		return 0, err
	}
	c.updateExtrema([]float64{v})
	return v, nil
}

// GetBand returns a copy of raw[:, :, band] (shape depends on interleave
// only through addressing, never through the returned shape): an (lines x
// samples) slice of host-order values, unmasked.
func (c *Cube) GetBand(band int) ([]float64, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	p, err := c.reader.GetBandRaw(band)
	if err != nil {
		return nil, err
	}
	out := p.Copy()
	c.updateExtrema(out)
	return out, nil
}

// GetSpectrum returns a copy of the spectrum at (line, sample): a (bands,)
// slice of bad-band-masked, host-order values.
func (c *Cube) GetSpectrum(line, sample int) ([]float64, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	v, err := c.reader.GetSpectrumRaw(line, sample)
	if err != nil {
		return nil, err
	}
	out := c.cookSpectrum(v)
	c.updateExtrema(out)
	return out, nil
}

// GetFocalPlane returns a copy of the (bands x samples) plane at line.
func (c *Cube) GetFocalPlane(line int) ([]float64, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	p, err := c.reader.GetFocalPlaneRaw(line)
	if err != nil {
		return nil, err
	}
	out := p.Copy()
	c.updateExtrema(out)
	return out, nil
}

// GetFocalPlaneDepth returns a copy of the (lines,) slice tracking
// (sample, band) down every line.
func (c *Cube) GetFocalPlaneDepth(sample, band int) ([]float64, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	v, err := c.reader.GetFocalPlaneDepthRaw(sample, band)
	if err != nil {
		return nil, err
	}
	out := v.Copy()
	c.updateExtrema(out)
	return out, nil
}

// GetLineOfSpectra returns a copy of every spectrum along line, shaped
// (bands x samples) regardless of interleave (see DESIGN.md's Open
// Question resolution), with the bad-band mask applied.
func (c *Cube) GetLineOfSpectra(line int) ([]float64, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	p, err := c.reader.GetLineOfSpectraRaw(line)
	if err != nil {
		return nil, err
	}
	out := c.maskLineOfSpectra(p)
	c.updateExtrema(out)
	return out, nil
}

// LocToFlat converts a (line, sample, band) location to a flat index.
func (c *Cube) LocToFlat(line, sample, band int) (int, error) {
	if err := c.checkBound(); err != nil {
		return 0, err
	}
	return c.reader.LocToFlat(line, sample, band)
}

// FlatToLoc converts a flat index back to a (line, sample, band) location.
func (c *Cube) FlatToLoc(flat int) (line, sample, band int, err error) {
	if err := c.checkBound(); err != nil {
		return 0, 0, 0, err
	}
	return c.reader.FlatToLoc(flat)
}

// BandBoundary returns the number of flat-index elements between
// consecutive bands at a fixed line and sample.
func (c *Cube) BandBoundary() int {
	if c.reader == nil {
		return 0
	}
	return c.reader.BandBoundary()
}

// cookSpectrum materializes v and applies the bad-band mask (zeroing bands
// flagged unusable). scale_factor is metadata for the caller to divide by,
// not something this accessor applies.
func (c *Cube) cookSpectrum(v Vector) []float64 {
	out := v.Copy()
	for band := range out {
		if c.bblAt(band) == 0 {
			out[band] = 0
		}
	}
	return out
}

// maskLineOfSpectra materializes p (a (bands x samples) view) and zeroes
// every row whose band is flagged unusable.
func (c *Cube) maskLineOfSpectra(p Plane) []float64 {
	out := p.Copy()
	for band := 0; band < p.rows; band++ {
		if c.bblAt(band) != 0 {
			continue
		}
		for col := 0; col < p.cols; col++ {
			out[band*p.cols+col] = 0
		}
	}
	return out
}
