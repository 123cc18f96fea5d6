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

// unitScale maps a wavelength unit name to its scale relative to meters,
// matching original_source/peppy/hsi/utils.py's units_scale table.
var unitScale = map[string]float64{
	"m":  1.0,
	"nm": 1e-9,
	"um": 1e-6,
}

// normalizeUnits converts val, given in units, into the cube's own
// WavelengthUnits. If the cube has no wavelength units set, val is
// returned unchanged (there is nothing to normalize against).
func (c *Cube) normalizeUnits(val float64, units string) float64 {
	if c.WavelengthUnits == "" {
		return val
	}
	cubeScale := unitScale[c.WavelengthUnits]
	theseScale := unitScale[units]
	if cubeScale == 0 || theseScale == 0 {
		return val
	}
	return val * theseScale / cubeScale
}

// GetBandListByWavelength returns every band whose bad-band flag is set and
// whose wavelength falls within [min, max] (inclusive), both normalized
// into the cube's own wavelength units. If max is omitted by the caller,
// pass the same value as min.
//
// If the window selects no bands, GetBandListByWavelength falls back to a
// single nearest band: the first usable band if the window's center lies
// below the lowest wavelength, the last usable band if it lies above the
// highest, or whichever of the two bands straddling the center is closer.
func (c *Cube) GetBandListByWavelength(wavelenMin, wavelenMax float64, units string) []int {
	wavelenMin = c.normalizeUnits(wavelenMin, units)
	wavelenMax = c.normalizeUnits(wavelenMax, units)

	if len(c.Wavelengths) == 0 {
		return nil
	}

	var bandList []int
	for band := 0; band < c.Bands; band++ {
		if c.bblAt(band) == 1 && c.Wavelengths[band] >= wavelenMin && c.Wavelengths[band] <= wavelenMax {
			bandList = append(bandList, band)
		}
	}
	if len(bandList) > 0 {
		return bandList
	}

	center := (wavelenMax + wavelenMin) / 2.0
	switch {
	case center < c.Wavelengths[0]:
		for band := 0; band < c.Bands; band++ {
			if c.bblAt(band) == 1 {
				return []int{band}
			}
		}
	case center > c.Wavelengths[c.Bands-1]:
		for band := c.Bands - 1; band >= 0; band-- {
			if c.bblAt(band) == 1 {
				return []int{band}
			}
		}
	default:
		for band := 0; band < c.Bands-1; band++ {
			if c.bblAt(band) != 1 || c.Wavelengths[band] >= center || c.Wavelengths[band+1] <= center {
				continue
			}
			if center-c.Wavelengths[band] < c.Wavelengths[band+1]-center {
				return []int{band}
			}
			return []int{band + 1}
		}
	}
	return nil
}

// bblAt returns the cube's bad-band flag for band, defaulting to 1 (usable)
// when the bad-band list hasn't been populated.
func (c *Cube) bblAt(band int) int {
	if len(c.BBL) == 0 {
		return 1
	}
	if band < 0 || band >= len(c.BBL) {
		return 0
	}
	return c.BBL[band]
}
