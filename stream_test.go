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
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestWriteRawRoundTrip exercises P3/P5: transcoding a cube from one
// interleave to another and loading the output as a cube of the target
// interleave gives the same pixel at every location, for every block size
// tried.
func TestWriteRawRoundTrip(t *testing.T) {
	t.Parallel()

	const lines, samples, bands = 3, 4, 5
	original := arange16(lines * samples * bands)

	interleaves := []Interleave{InterleaveBIP, InterleaveBIL, InterleaveBSQ}

	for _, from := range interleaves {
		from := from
		for _, to := range interleaves {
			to := to
			for _, blockSize := range []int{1, 7, 64, 1 << 20} {
				blockSize := blockSize
				t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
					t.Parallel()

					src, err := CreateCube(from, lines, samples, bands, DataTypeInt16, LittleEndian, 1.0, append([]byte(nil), original...), false)
					if err != nil {
						t.Fatalf("CreateCube(src): %v", err)
					}

					var transcoded bytes.Buffer
					if err := src.WriteRaw(&transcoded, blockSize, to.String(), nil); err != nil {
						t.Fatalf("WriteRaw: %v", err)
					}

					dst, err := CreateCube(to, lines, samples, bands, DataTypeInt16, LittleEndian, 1.0, transcoded.Bytes(), false)
					if err != nil {
						t.Fatalf("CreateCube(dst): %v", err)
					}

					for line := 0; line < lines; line++ {
						for sample := 0; sample < samples; sample++ {
							for band := 0; band < bands; band++ {
								want, err := src.GetPixel(line, sample, band)
								if err != nil {
									t.Fatalf("src.GetPixel: %v", err)
								}
								got, err := dst.GetPixel(line, sample, band)
								if err != nil {
									t.Fatalf("dst.GetPixel: %v", err)
								}
								if diff := cmp.Diff(want, got); diff != "" {
									t.Errorf("pixel (%d,%d,%d) (-want, +got):\n%s", line, sample, band, diff)
								}
							}
						}
					}
				})
			}
		}
	}
}

// TestWriteRawProgress exercises that progress is reported monotonically
// and reaches 100% by the end of the stream.
func TestWriteRawProgress(t *testing.T) {
	t.Parallel()

	const lines, samples, bands = 4, 4, 4
	c, err := CreateCube(InterleaveBIL, lines, samples, bands, DataTypeFloat32, LittleEndian, 1.0, nil, false)
	if err != nil {
		t.Fatalf("CreateCube: %v", err)
	}

	var last int
	var saw100 bool
	progress := func(pct int) {
		if pct < last {
			t.Errorf("progress went backwards: %d after %d", pct, last)
		}
		last = pct
		if pct == 100 {
			saw100 = true
		}
	}

	var buf bytes.Buffer
	if err := c.WriteRaw(&buf, 32, "bip", progress); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	if !saw100 {
		t.Errorf("progress never reached 100%%, last was %d", last)
	}
}

// TestWriteRawUnsupportedInterleave exercises the error path for an
// unrecognized target interleave tag.
func TestWriteRawUnsupportedInterleave(t *testing.T) {
	t.Parallel()

	c, err := CreateCube(InterleaveBIP, 2, 2, 2, DataTypeInt8, LittleEndian, 1.0, nil, false)
	if err != nil {
		t.Fatalf("CreateCube: %v", err)
	}
	var buf bytes.Buffer
	err = c.WriteRaw(&buf, 16, "xyz", nil)
	if err == nil {
		t.Fatalf("WriteRaw: expected error, got nil")
	}
}
