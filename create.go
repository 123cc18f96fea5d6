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

import "fmt"

// CreateCube builds a Cube descriptor with the given geometry and runs
// Initialize and VerifyAttributes on it, without ever going through
// [Cube.Open]. The returned cube's Reader is built over exactly one of
// three backing stores:
//
//   - data, reinterpreted in place as dataType, if data is non-nil;
//   - a freshly zero-allocated buffer of lines*samples*bands elements, if
//     data is nil and dummy is false;
//   - no buffer at all (descriptor-only; any data accessor call returns
//     ErrOutOfResources, while LocToFlat, FlatToLoc, and BandBoundary
//     still work) if dummy is true.
//
// scale is the cube's scale factor; pass 0 to let VerifyAttributes guess
// one from dataType.
func CreateCube(interleave Interleave, lines, samples, bands int, dataType DataType, byteOrder ByteOrder, scale float64, data []byte, dummy bool) (*Cube, error) {
	c := NewCube()
	c.Interleave = interleave
	c.Lines, c.Samples, c.Bands = lines, samples, bands
	c.ScaleFactor = scale

	c.Initialize(&dataType, &byteOrder)

	if dummy {
		reader, err := newReader(interleave, nil, c.ItemSize, c.DataType, c.ByteOrder.binary(), lines, samples, bands)
		if err != nil {
			return nil, err
		}
		c.reader = reader
		c.dummy = true
		c.VerifyAttributes()
		return c, nil
	}

	buf := data
	if buf == nil {
		buf = make([]byte, c.DataBytes)
	} else if int64(len(buf)) < c.DataBytes {
		return nil, fmt.Errorf("%w: data has %d bytes, need %d", ErrCorruptDescriptor, len(buf), c.DataBytes)
	}

	reader, err := newReader(interleave, buf, c.ItemSize, c.DataType, c.ByteOrder.binary(), lines, samples, bands)
	if err != nil {
		return nil, err
	}
	c.reader = reader

	c.VerifyAttributes()
	return c, nil
}
