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
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestGetBandListByWavelength exercises P6: band selection by wavelength
// window, including the out-of-range fallback behavior.
func TestGetBandListByWavelength(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		bbl      []int
		min, max float64
		want     []int
	}{
		{
			name: "window within range",
			min:  495, max: 505,
			want: []int{2},
		},
		{
			name: "single point exact match",
			min:  450, max: 450,
			want: []int{1},
		},
		{
			name: "below lowest wavelength falls back to first usable band",
			min:  100, max: 100,
			want: []int{0},
		},
		{
			name: "above highest wavelength falls back to last usable band",
			min:  900, max: 900,
			want: []int{4},
		},
		{
			name: "empty window between bands picks nearest",
			min:  520, max: 520,
			want: []int{2},
		},
		{
			name: "all bands bad yields no match",
			bbl:  []int{0, 0, 0, 0, 0},
			min:  500, max: 500,
			want: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := NewCube()
			c.Bands = 5
			c.Wavelengths = []float64{400, 450, 500, 600, 700}
			c.WavelengthUnits = "nm"
			if tc.bbl != nil {
				c.BBL = tc.bbl
			}

			got := c.GetBandListByWavelength(tc.min, tc.max, "nm")
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("GetBandListByWavelength (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestGetBandListByWavelength_unitConversion exercises cross-unit wavelength
// lookups (micrometers against a nanometer-denominated cube).
func TestGetBandListByWavelength_unitConversion(t *testing.T) {
	t.Parallel()

	c := NewCube()
	c.Bands = 3
	c.Wavelengths = []float64{400, 500, 600}
	c.WavelengthUnits = "nm"

	got := c.GetBandListByWavelength(0.5, 0.5, "um")
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("GetBandListByWavelength (-want, +got):\n%s", diff)
	}
}

// TestGuessDisplayBands exercises the false-color band picker.
func TestGuessDisplayBands(t *testing.T) {
	t.Parallel()

	c := NewCube()
	c.Bands = 5
	c.Wavelengths = []float64{400, 450, 500, 600, 700}
	c.WavelengthUnits = "nm"

	got := c.GuessDisplayBands()
	want := []int{4, 3, 1} // nearest to 660, 550, 440
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GuessDisplayBands (-want, +got):\n%s", diff)
	}
}

// TestGuessDisplayBandsInsufficientData exercises the [0] fallback when
// there aren't enough bands or wavelengths to guess from.
func TestGuessDisplayBandsInsufficientData(t *testing.T) {
	t.Parallel()

	c := NewCube()
	c.Bands = 2

	got := c.GuessDisplayBands()
	if diff := cmp.Diff([]int{0}, got); diff != "" {
		t.Errorf("GuessDisplayBands (-want, +got):\n%s", diff)
	}
}
