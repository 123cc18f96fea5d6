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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// arange16 returns a little-endian-encoded []int16{0, 1, ..., n-1}.
func arange16(n int) []byte {
	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(i))
	}
	return buf
}

func TestCreateCube_BIP(t *testing.T) {
	t.Parallel()

	// S1 from spec.md section 8: create_cube('bip', L=4, S=5, B=3,
	// data_type=int16, data=arange(60)).
	c, err := CreateCube(InterleaveBIP, 4, 5, 3, DataTypeInt16, LittleEndian, 1.0, arange16(60), false)
	if err != nil {
		t.Fatalf("CreateCube: %v", err)
	}

	testCases := []struct {
		name               string
		line, sample, band int
		want               float64
	}{
		{"origin", 0, 0, 0, 0},
		{"next band", 0, 0, 1, 1},
		{"band 2", 0, 0, 2, 2},
		{"next sample", 0, 1, 0, 3},
		{"next line", 1, 0, 0, 15},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := c.GetPixel(tc.line, tc.sample, tc.band)
			if err != nil {
				t.Fatalf("GetPixel: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("GetPixel (-want, +got):\n%s", diff)
			}
		})
	}

	flat, err := c.LocToFlat(1, 0, 0)
	if err != nil {
		t.Fatalf("LocToFlat: %v", err)
	}
	if diff := cmp.Diff(15, flat); diff != "" {
		t.Errorf("LocToFlat (-want, +got):\n%s", diff)
	}

	line, sample, band, err := c.FlatToLoc(59)
	if err != nil {
		t.Fatalf("FlatToLoc: %v", err)
	}
	if diff := cmp.Diff([]int{3, 4, 2}, []int{line, sample, band}); diff != "" {
		t.Errorf("FlatToLoc (-want, +got):\n%s", diff)
	}
}

// TestFlatRoundTrip exercises P1: for every valid flat index, FlatToLoc then
// LocToFlat returns the original index, across all three interleaves.
func TestFlatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, il := range []Interleave{InterleaveBIP, InterleaveBIL, InterleaveBSQ} {
		il := il
		t.Run(il.String(), func(t *testing.T) {
			t.Parallel()

			const lines, samples, bands = 3, 4, 5
			c, err := CreateCube(il, lines, samples, bands, DataTypeFloat32, LittleEndian, 1.0, nil, false)
			if err != nil {
				t.Fatalf("CreateCube: %v", err)
			}

			for flat := 0; flat < lines*samples*bands; flat++ {
				line, sample, band, err := c.FlatToLoc(flat)
				if err != nil {
					t.Fatalf("FlatToLoc(%d): %v", flat, err)
				}
				got, err := c.LocToFlat(line, sample, band)
				if err != nil {
					t.Fatalf("LocToFlat(%d,%d,%d): %v", line, sample, band, err)
				}
				if diff := cmp.Diff(flat, got); diff != "" {
					t.Errorf("flat %d round trip (-want, +got):\n%s", flat, diff)
				}
			}
		})
	}
}

// TestPixelConsistency exercises P2: GetPixel, a band's view, a spectrum's
// view, and a focal plane's view all agree on the same pixel's value.
func TestPixelConsistency(t *testing.T) {
	t.Parallel()

	for _, il := range []Interleave{InterleaveBIP, InterleaveBIL, InterleaveBSQ} {
		il := il
		t.Run(il.String(), func(t *testing.T) {
			t.Parallel()

			const lines, samples, bands = 2, 3, 4
			data := arange16(lines * samples * bands)
			c, err := CreateCube(il, lines, samples, bands, DataTypeInt16, LittleEndian, 1.0, data, false)
			if err != nil {
				t.Fatalf("CreateCube: %v", err)
			}

			line, sample, band := 1, 2, 3
			pixel, err := c.Reader().GetPixel(line, sample, band)
			if err != nil {
				t.Fatalf("GetPixel: %v", err)
			}

			bandPlane, err := c.Reader().GetBandRaw(band)
			if err != nil {
				t.Fatalf("GetBandRaw: %v", err)
			}
			if diff := cmp.Diff(pixel, bandPlane.At(line, sample)); diff != "" {
				t.Errorf("band view (-want, +got):\n%s", diff)
			}

			spectrum, err := c.Reader().GetSpectrumRaw(line, sample)
			if err != nil {
				t.Fatalf("GetSpectrumRaw: %v", err)
			}
			if diff := cmp.Diff(pixel, spectrum.At(band)); diff != "" {
				t.Errorf("spectrum view (-want, +got):\n%s", diff)
			}

			focal, err := c.Reader().GetFocalPlaneRaw(line)
			if err != nil {
				t.Fatalf("GetFocalPlaneRaw: %v", err)
			}
			if diff := cmp.Diff(pixel, focal.At(band, sample)); diff != "" {
				t.Errorf("focal plane view (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestLineOfSpectraShape exercises the Open Question resolution recorded in
// DESIGN.md: GetLineOfSpectraRaw is always shaped (bands, samples),
// regardless of interleave.
func TestLineOfSpectraShape(t *testing.T) {
	t.Parallel()

	for _, il := range []Interleave{InterleaveBIP, InterleaveBIL, InterleaveBSQ} {
		il := il
		t.Run(il.String(), func(t *testing.T) {
			t.Parallel()

			const lines, samples, bands = 2, 3, 4
			c, err := CreateCube(il, lines, samples, bands, DataTypeFloat32, LittleEndian, 1.0, nil, false)
			if err != nil {
				t.Fatalf("CreateCube: %v", err)
			}
			p, err := c.Reader().GetLineOfSpectraRaw(0)
			if err != nil {
				t.Fatalf("GetLineOfSpectraRaw: %v", err)
			}
			if diff := cmp.Diff([2]int{bands, samples}, [2]int{p.Rows(), p.Cols()}); diff != "" {
				t.Errorf("shape (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestByteOrderNeutral exercises P4/S4: a cube read big-endian and the same
// bytes swapped and read little-endian decode to the same values.
func TestByteOrderNeutral(t *testing.T) {
	t.Parallel()

	const n = 6
	little := arange16(n)
	big := make([]byte, len(little))
	for i := 0; i < n; i++ {
		v := binary.LittleEndian.Uint16(little[i*2:])
		binary.BigEndian.PutUint16(big[i*2:], v)
	}

	cLittle, err := CreateCube(InterleaveBSQ, 1, n, 1, DataTypeInt16, LittleEndian, 1.0, little, false)
	if err != nil {
		t.Fatalf("CreateCube (little): %v", err)
	}
	cBig, err := CreateCube(InterleaveBSQ, 1, n, 1, DataTypeInt16, BigEndian, 1.0, big, false)
	if err != nil {
		t.Fatalf("CreateCube (big): %v", err)
	}

	for i := 0; i < n; i++ {
		wantV, err := cLittle.GetPixel(0, i, 0)
		if err != nil {
			t.Fatalf("GetPixel: %v", err)
		}
		gotV, err := cBig.GetPixel(0, i, 0)
		if err != nil {
			t.Fatalf("GetPixel: %v", err)
		}
		if diff := cmp.Diff(wantV, gotV); diff != "" {
			t.Errorf("pixel %d (-want, +got):\n%s", i, diff)
		}
	}
}

// TestExtremaMonotone exercises P7: the widened spectra extrema always
// bracket every value observed by cooked accessors.
func TestExtremaMonotone(t *testing.T) {
	t.Parallel()

	const lines, samples, bands = 3, 3, 3
	c, err := CreateCube(InterleaveBIL, lines, samples, bands, DataTypeInt16, LittleEndian, 1.0, arange16(lines*samples*bands), false)
	if err != nil {
		t.Fatalf("CreateCube: %v", err)
	}

	if _, _, ok := c.SpectraExtrema(); ok {
		t.Fatalf("SpectraExtrema: expected unset extrema before any access")
	}

	for line := 0; line < lines; line++ {
		values, err := c.GetFocalPlane(line)
		if err != nil {
			t.Fatalf("GetFocalPlane(%d): %v", line, err)
		}
		min, max, ok := c.SpectraExtrema()
		if !ok {
			t.Fatalf("SpectraExtrema: expected set extrema after access")
		}
		if min > max {
			t.Errorf("extrema inverted: min=%v max=%v", min, max)
		}
		for _, v := range values {
			if v < min || v > max {
				t.Errorf("value %v outside extrema [%v, %v]", v, min, max)
			}
		}
	}
}

// TestCookedAccessorsApplyNoScale exercises spec.md section 4.3's cooked
// accessor contract precisely: get_band/get_focal_plane are a byte-swapped
// copy with no bbl and no scale division; get_spectrum/get_line_of_spectra
// are a byte-swapped copy with bbl applied and no scale division.
// ScaleFactor is metadata for the caller to divide by, not something these
// accessors apply.
func TestCookedAccessorsApplyNoScale(t *testing.T) {
	t.Parallel()

	const lines, samples, bands = 2, 2, 3
	data := arange16(lines * samples * bands)
	c, err := CreateCube(InterleaveBIL, lines, samples, bands, DataTypeInt16, LittleEndian, 10000.0, data, false)
	if err != nil {
		t.Fatalf("CreateCube: %v", err)
	}
	c.BBL = []int{1, 0, 1} // band 1 is flagged unusable

	rawBand1, err := c.Reader().GetBandRaw(1)
	if err != nil {
		t.Fatalf("GetBandRaw: %v", err)
	}
	band1, err := c.GetBand(1)
	if err != nil {
		t.Fatalf("GetBand: %v", err)
	}
	if diff := cmp.Diff(rawBand1.Copy(), band1); diff != "" {
		t.Errorf("GetBand should not scale or mask a bad band (-want raw, +got cooked):\n%s", diff)
	}

	rawFocal, err := c.Reader().GetFocalPlaneRaw(0)
	if err != nil {
		t.Fatalf("GetFocalPlaneRaw: %v", err)
	}
	focal, err := c.GetFocalPlane(0)
	if err != nil {
		t.Fatalf("GetFocalPlane: %v", err)
	}
	if diff := cmp.Diff(rawFocal.Copy(), focal); diff != "" {
		t.Errorf("GetFocalPlane should not scale or mask a bad band (-want raw, +got cooked):\n%s", diff)
	}

	rawSpectrum, err := c.Reader().GetSpectrumRaw(0, 0)
	if err != nil {
		t.Fatalf("GetSpectrumRaw: %v", err)
	}
	spectrum, err := c.GetSpectrum(0, 0)
	if err != nil {
		t.Fatalf("GetSpectrum: %v", err)
	}
	wantSpectrum := rawSpectrum.Copy()
	wantSpectrum[1] = 0 // band 1 masked, unscaled
	if diff := cmp.Diff(wantSpectrum, spectrum); diff != "" {
		t.Errorf("GetSpectrum (-want, +got):\n%s", diff)
	}

	rawLine, err := c.Reader().GetLineOfSpectraRaw(0)
	if err != nil {
		t.Fatalf("GetLineOfSpectraRaw: %v", err)
	}
	line, err := c.GetLineOfSpectra(0)
	if err != nil {
		t.Fatalf("GetLineOfSpectra: %v", err)
	}
	wantLine := rawLine.Copy()
	for col := 0; col < rawLine.Cols(); col++ {
		wantLine[1*rawLine.Cols()+col] = 0 // row for band 1 masked, unscaled
	}
	if diff := cmp.Diff(wantLine, line); diff != "" {
		t.Errorf("GetLineOfSpectra (-want, +got):\n%s", diff)
	}
}

// TestCreateCubeDummy exercises the descriptor-only construction path: a
// dummy cube answers addressing queries but refuses to read data.
func TestCreateCubeDummy(t *testing.T) {
	t.Parallel()

	c, err := CreateCube(InterleaveBIP, 2, 2, 2, DataTypeFloat32, LittleEndian, 1.0, nil, true)
	if err != nil {
		t.Fatalf("CreateCube: %v", err)
	}

	if _, err := c.LocToFlat(0, 0, 0); err != nil {
		t.Errorf("LocToFlat on dummy cube: %v", err)
	}

	_, err = c.GetPixel(0, 0, 0)
	if diff := cmp.Diff(ErrOutOfResources, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("GetPixel on dummy cube (-want, +got):\n%s", diff)
	}
}
