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
	"fmt"
	"time"
)

// Cube is the single source of truth about a hyperspectral image data cube:
// its geometry, data type, byte order, file offsets, per-band metadata, and
// the [Reader] bound to it. A Cube owns its Reader exclusively; the Reader
// in turn owns (or keeps a live reference to) the underlying mapping. A
// Cube is created empty, populated by a header parser or [CreateCube],
// bound via [Cube.Open], queried, optionally saved, and dropped.
//
// A Cube is not safe for concurrent use by multiple goroutines; if a Cube
// is shared across goroutines the caller must serialize access.
type Cube struct {
	// URL is the location the cube was (or will be) opened from. Empty
	// until bound.
	URL string

	// Lines, Samples, and Bands are the cube's geometry. All three must be
	// positive before Open completes.
	Lines, Samples, Bands int

	// Interleave is the on-disk axis ordering. Must be resolved (not
	// InterleaveUnknown) before the Reader is constructed.
	Interleave Interleave

	// DataType is the element scalar type. Immutable once the Reader is
	// built.
	DataType DataType

	// ByteOrder is the on-disk endianness. Immutable once the Reader is
	// built.
	ByteOrder ByteOrder

	// ItemSize is the number of bytes per element; always DataType.ItemSize().
	ItemSize int

	// FileOffset is the absolute byte offset of the cube's data within its
	// container file.
	FileOffset int64

	// HeaderOffset is the number of header bytes to skip, relative to
	// FileOffset, before the raw data begins.
	HeaderOffset int64

	// DataOffset is the absolute byte offset of the first data byte within
	// the byte source. Computed from FileOffset+HeaderOffset by Initialize
	// unless already set.
	DataOffset int64

	// DataBytes is the number of bytes in the data portion of the byte
	// source. If zero on entry to Initialize, it is computed from the
	// geometry and item size.
	DataBytes int64

	// Wavelengths holds the center wavelength of each band, in
	// WavelengthUnits. Length is 0 (unpopulated) or Bands.
	Wavelengths []float64

	// BBL is the bad-band list: 1 for a usable band, 0 for a band to
	// exclude from cooked spectral accessors. Length is 0 (unpopulated,
	// treated as all-1) or Bands.
	BBL []int

	// FWHM holds the full-width-half-maximum of each band's spectral
	// response. Length is 0 or Bands.
	FWHM []float64

	// BandNames holds a descriptive name for each band. Length is 0 or
	// Bands.
	BandNames []string

	// WavelengthUnits is "nm", "um", or "" (unknown).
	WavelengthUnits string

	// ScaleFactor is the value by which samples were pre-multiplied; divide
	// by it to recover physical units.
	ScaleFactor float64

	// UTM/georeferencing fields are informational only; the core performs
	// no projection math on them.
	UTMZone                int
	UTMOriginX, UTMOriginY float64
	UTMPixelSizeX          float64
	UTMPixelSizeY          float64
	UTMEasting             float64
	UTMNorthing            float64

	GeorefSystem              string
	GeorefOriginX             float64
	GeorefOriginY             float64
	GeorefPixelSizeX          float64
	GeorefPixelSizeY          float64
	GeorefLat                 float64
	GeorefLong                float64

	// Description and SensorType are free-text metadata carried from the
	// original format (see original_source/peppy/hsi/cube.py).
	Description string
	SensorType  string

	// ModTime is the container file's modification time, populated by
	// VerifyAttributes when the byte source supplies it.
	ModTime time.Time

	// reader is the bound Reader, or nil until Open/CreateCube succeeds.
	reader Reader

	// spectraMin and spectraMax track the widest observed sample range
	// across cooked accessor calls. Both are zero, and extremaSet is false,
	// until the first sample is observed.
	spectraMin, spectraMax float64
	extremaSet             bool

	vfs VFSOpener

	// dummy is true for a descriptor-only cube built by CreateCube with no
	// backing buffer; cooked accessors refuse to read through it.
	dummy bool
}

// NewCube returns an empty Cube with an unresolved interleave, ready to be
// populated by a header parser or [CreateCube].
func NewCube() *Cube {
	return &Cube{
		Interleave: InterleaveUnknown,
		ByteOrder:  nativeByteOrder,
		SensorType: "unknown",
	}
}

// Reader returns the cube's bound Reader, or nil if the cube has not been
// opened yet.
func (c *Cube) Reader() Reader {
	return c.reader
}

// SpectraExtrema returns the widened (min, max) observed by cooked
// accessors so far, and whether any value has been observed yet.
func (c *Cube) SpectraExtrema() (min, max float64, ok bool) {
	return c.spectraMin, c.spectraMax, c.extremaSet
}

// updateExtrema widens the cube's spectra extrema to include every value in
// values, per spec P7: after any sequence of cooked accessors,
// min <= every observed value <= max.
func (c *Cube) updateExtrema(values []float64) {
	for _, v := range values {
		if !c.extremaSet {
			c.spectraMin, c.spectraMax = v, v
			c.extremaSet = true
			continue
		}
		if v < c.spectraMin {
			c.spectraMin = v
		}
		if v > c.spectraMax {
			c.spectraMax = v
		}
	}
}

// Initialize computes ItemSize and, if unset, DataBytes and DataOffset. It
// is idempotent and safe to call multiple times. A nil dataType or
// byteOrder leaves the cube's current value untouched; a non-nil one
// overrides it.
func (c *Cube) Initialize(dataType *DataType, byteOrder *ByteOrder) {
	if dataType != nil {
		c.DataType = *dataType
	}
	if byteOrder != nil {
		c.ByteOrder = *byteOrder
	}

	if c.DataType != DataTypeUnknown {
		c.ItemSize = c.DataType.ItemSize()
	}

	if c.DataBytes == 0 {
		c.DataBytes = int64(c.ItemSize) * int64(c.Lines) * int64(c.Samples) * int64(c.Bands)
	}

	if (c.HeaderOffset > 0 || c.FileOffset > 0) && c.DataOffset == 0 {
		c.DataOffset = c.FileOffset + c.HeaderOffset
	}
}

// VerifyAttributes fills in defaults that can be derived after a cube has
// been opened: scale factor, bad-band list, wavelength units, and file
// modification time. It never substitutes defaults for geometry or data
// type.
func (c *Cube) VerifyAttributes() {
	if c.ScaleFactor == 0 {
		c.ScaleFactor = c.guessScaleFactor()
	}

	if len(c.BBL) == 0 && c.Bands > 0 {
		c.BBL = make([]int, c.Bands)
		for i := range c.BBL {
			c.BBL[i] = 1
		}
	}

	if len(c.Wavelengths) > 0 && c.WavelengthUnits == "" {
		c.WavelengthUnits = c.guessWavelengthUnits()
	}

	if c.URL != "" && c.vfs != nil {
		if mtime, ok, err := c.vfs.GetMTime(c.URL); err == nil && ok {
			c.ModTime = mtime
		}
	}
}

// guessScaleFactor returns a reasonable default scale factor based on the
// cube's data type: 10000.0 for integer types (including 64-bit; see
// DESIGN.md's Open Question decision), 1.0 for float or unknown types.
func (c *Cube) guessScaleFactor() float64 {
	if c.DataType.IsInteger() {
		return 10000.0
	}
	return 1.0
}

// guessWavelengthUnits guesses "um" or "nm" from the magnitude of the last
// wavelength value, matching the heuristic in spec.md section 3: a last
// value under 100 implies micrometers.
func (c *Cube) guessWavelengthUnits() string {
	if c.Wavelengths[len(c.Wavelengths)-1] < 100.0 {
		return "um"
	}
	return "nm"
}

// GuessDisplayBands returns the bands nearest 660nm (red), 550nm (green),
// and 440nm (blue) for a false-color RGB display, or a single band if all
// three collapse together (visible light outside the cube's range), or
// [0] if there aren't enough bands or wavelengths to guess from.
func (c *Cube) GuessDisplayBands() []int {
	if c.Bands >= 3 && len(c.Wavelengths) > 0 {
		bands := make([]int, 3)
		for i, wl := range []float64{660, 550, 440} {
			list := c.GetBandListByWavelength(wl, wl, "nm")
			if len(list) == 0 {
				return []int{0}
			}
			bands[i] = list[0]
		}
		if bands[0] == bands[1] && bands[1] == bands[2] {
			return []int{bands[0]}
		}
		return bands
	}
	return []int{0}
}

// GetWavelengthString returns a formatted "<value> <units>" label for band,
// or "no value" if band is out of range or wavelengths aren't populated.
func (c *Cube) GetWavelengthString(band int) string {
	if len(c.Wavelengths) > 0 && band >= 0 && band < len(c.Wavelengths) {
		return fmt.Sprintf("%.2f %s", c.Wavelengths[band], c.WavelengthUnits)
	}
	return "no value"
}

// GetDescriptiveBandName composes a human-readable label for band from its
// wavelength and band name, whichever are available.
func (c *Cube) GetDescriptiveBandName(band int) string {
	var text string
	if len(c.Wavelengths) > 0 && band >= 0 && band < len(c.Wavelengths) {
		text = fmt.Sprintf("λ=%.2f %s", c.Wavelengths[band], c.WavelengthUnits)
	}
	if len(c.BandNames) > 0 && band >= 0 && band < len(c.BandNames) {
		if text != "" {
			text += " "
		}
		text += c.BandNames[band]
	}
	return text
}

// GetBadBandList returns the cube's bad-band list, or, if other is
// non-nil, the elementwise AND of both cubes' lists (for comparing bands
// shared by two cubes from the same sensor).
func (c *Cube) GetBadBandList(other *Cube) []int {
	if other == nil {
		return c.BBL
	}
	out := make([]int, c.Bands)
	for i := 0; i < c.Bands && i < len(c.BBL) && i < len(other.BBL); i++ {
		if c.BBL[i] != 0 && other.BBL[i] != 0 {
			out[i] = 1
		}
	}
	return out
}

// Metadata is a structured, read-only snapshot of the cube's metadata,
// returned by [Cube.Describe]. Formatting (e.g. into the CLI's table
// output) is the caller's responsibility; see spec.md section 9's redesign
// of the Python original's dynamic __str__ dump.
type Metadata struct {
	URL                      string
	Description              string
	DataOffset, HeaderOffset int64
	FileOffset               int64
	DataType                 DataType
	Samples, Lines, Bands    int
	DataBytes                int64
	Interleave               Interleave
	ByteOrder                ByteOrder
	NativeByteOrder          ByteOrder
	ScaleFactor              float64
	WavelengthUnits          string
	BadBandCount             int
}

// Describe returns a structured snapshot of the cube's metadata suitable
// for display or logging.
func (c *Cube) Describe() Metadata {
	bad := 0
	for _, b := range c.BBL {
		if b == 0 {
			bad++
		}
	}
	return Metadata{
		URL:             c.URL,
		Description:     c.Description,
		DataOffset:      c.DataOffset,
		HeaderOffset:    c.HeaderOffset,
		FileOffset:      c.FileOffset,
		DataType:        c.DataType,
		Samples:         c.Samples,
		Lines:           c.Lines,
		Bands:           c.Bands,
		DataBytes:       c.DataBytes,
		Interleave:      c.Interleave,
		ByteOrder:       c.ByteOrder,
		NativeByteOrder: nativeByteOrder,
		ScaleFactor:     c.ScaleFactor,
		WavelengthUnits: c.WavelengthUnits,
		BadBandCount:    bad,
	}
}
