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
	"io"
)

// rawChunkFunc emits a cube's raw bytes, already reshuffled into some target
// interleave's natural emission order, one plane or band at a time. yield is
// called once per chunk; a non-nil error from yield aborts iteration.
type rawChunkFunc func(yield func([]byte) error) error

// bipChunks emits one chunk per line: the line's spectra, transposed from
// the package's canonical (bands, samples) shape into BIP's natural
// (samples, bands) byte order (bands vary fastest). Grounded on
// original_source/peppy/hsi/cube.py's iterRawBIP.
func (c *Cube) bipChunks(yield func([]byte) error) error {
	for line := 0; line < c.Lines; line++ {
		p, err := c.reader.GetLineOfSpectraRaw(line)
		if err != nil {
			return err
		}
		if err := yield(transposePlane(p).RawBytes()); err != nil {
			return err
		}
	}
	return nil
}

// bilChunks emits one chunk per line: the line's spectra in the package's
// canonical (bands, samples) shape, which is already BIL's natural byte
// order (samples vary fastest, then bands). Grounded on
// original_source/peppy/hsi/cube.py's iterRawBIL.
func (c *Cube) bilChunks(yield func([]byte) error) error {
	for line := 0; line < c.Lines; line++ {
		p, err := c.reader.GetLineOfSpectraRaw(line)
		if err != nil {
			return err
		}
		if err := yield(p.RawBytes()); err != nil {
			return err
		}
	}
	return nil
}

// bsqChunks emits one chunk per band: the whole (lines, samples) plane,
// BSQ's natural byte order. Grounded on
// original_source/peppy/hsi/cube.py's iterRawBSQ.
func (c *Cube) bsqChunks(yield func([]byte) error) error {
	for band := 0; band < c.Bands; band++ {
		p, err := c.reader.GetBandRaw(band)
		if err != nil {
			return err
		}
		if err := yield(p.RawBytes()); err != nil {
			return err
		}
	}
	return nil
}

// WriteRaw streams the cube's data to sink, re-interleaved into the named
// target interleave ("bip", "bil", or "bsq"), in blockSize-byte blocks (the
// final block may be shorter). It never materializes the whole transcoded
// buffer in memory: chunks are accumulated into a single blockSize-sized
// staging buffer and flushed to sink as they fill, following
// original_source/peppy/hsi/cube.py's iterRaw/writeRawData. progress, if
// non-nil, is called after every block with a percentage in [0,100].
func (c *Cube) WriteRaw(sink io.Writer, blockSize int, interleave string, progress func(int)) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if blockSize <= 0 {
		return fmt.Errorf("%w: block size must be positive", errHSI)
	}

	target, err := ParseInterleave(interleave)
	if err != nil {
		return err
	}

	var chunks rawChunkFunc
	switch target {
	case InterleaveBIP:
		chunks = c.bipChunks
	case InterleaveBIL:
		chunks = c.bilChunks
	case InterleaveBSQ:
		chunks = c.bsqChunks
	default:
		return unsupportedInterleaveErr(interleave)
	}

	numBlocks := (c.DataBytes + int64(blockSize) - 1) / int64(blockSize)
	if numBlocks == 0 {
		numBlocks = 1
	}

	buf := make([]byte, 0, blockSize)
	blocksWritten := int64(0)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if _, err := sink.Write(buf); err != nil {
			return fmt.Errorf("%w: writing block: %w", errHSI, err)
		}
		blocksWritten++
		if progress != nil {
			progress(int(blocksWritten * 100 / numBlocks))
		}
		buf = buf[:0]
		return nil
	}

	err = chunks(func(chunk []byte) error {
		for len(chunk) > 0 {
			room := blockSize - len(buf)
			if room > len(chunk) {
				buf = append(buf, chunk...)
				break
			}
			buf = append(buf, chunk[:room]...)
			chunk = chunk[room:]
			if err := flush(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}
