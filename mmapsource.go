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
	"strings"
	"time"

	"golang.org/x/exp/mmap"
)

// VFSOpener supplies the bytes for "mem:" URLs and resolves every location
// URL scheme other than "file:". Implementations typically wrap an embedded or
// networked virtual filesystem; the core never constructs one itself.
type VFSOpener interface {
	// Open returns a readable handle for url.
	Open(url string) (io.ReadCloser, error)

	// OpenMemMap returns a mappable byte range for url and its length, if
	// the implementation can provide one.
	OpenMemMap(url string) (io.ReaderAt, int64, error)

	// GetMTime returns url's modification time, if known.
	GetMTime(url string) (time.Time, bool, error)

	// Exists reports whether url can be resolved.
	Exists(url string) bool

	// Normalize canonicalizes url (e.g. resolving relative paths).
	Normalize(url string) string
}

// HeaderParser builds a [Cube] descriptor from a format-specific header
// (e.g. an ENVI .hdr sidecar). It is a producer the core depends on only
// through this contract; no concrete implementation lives in this package.
type HeaderParser interface {
	ParseHeader(r io.Reader) (*Cube, error)
}

// schemeOf returns the scheme prefix of url ("file", "mem", or whatever
// precedes the first ":"), or "" if url has no scheme.
func schemeOf(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i]
	}
	if i := strings.Index(url, ":"); i >= 0 {
		return url[:i]
	}
	return ""
}

// schemePath strips the scheme prefix (and an optional "//") from url.
func schemePath(url, scheme string) string {
	rest := strings.TrimPrefix(url, scheme+":")
	return strings.TrimPrefix(rest, "//")
}

// resolveBytes resolves url to an owned byte slice covering the entire byte
// source, dispatching on scheme per spec.md section 4.1: "file" acquires a
// read-only memory mapping of the whole file, "mem" reads all bytes from
// the VFS hook, and any other scheme delegates to the VFS hook's
// OpenMemMap/Open methods.
func resolveBytes(url string, vfs VFSOpener) ([]byte, error) {
	scheme := schemeOf(url)
	switch scheme {
	case "file":
		path := schemePath(url, scheme)
		r, err := mmap.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: mapping %q: %w", ErrOutOfResources, path, err)
		}
		defer r.Close()
		buf := make([]byte, r.Len())
		if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: reading mapped file %q: %w", ErrOutOfResources, path, err)
		}
		return buf, nil

	case "mem":
		if vfs == nil {
			return nil, unsupportedSchemeErr(scheme)
		}
		rc, err := vfs.Open(url)
		if err != nil {
			return nil, fmt.Errorf("%w: opening %q: %w", ErrUnsupportedScheme, url, err)
		}
		defer rc.Close()
		buf, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %w", errHSI, url, err)
		}
		return buf, nil

	case "":
		return nil, unsupportedSchemeErr("")

	default:
		if vfs == nil {
			return nil, unsupportedSchemeErr(scheme)
		}
		if ra, size, err := vfs.OpenMemMap(url); err == nil {
			buf := make([]byte, size)
			if _, err := ra.ReadAt(buf, 0); err != nil && err != io.EOF {
				return nil, fmt.Errorf("%w: reading %q: %w", ErrOutOfResources, url, err)
			}
			return buf, nil
		}
		rc, err := vfs.Open(url)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrUnsupportedScheme, scheme, err)
		}
		defer rc.Close()
		buf, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %w", errHSI, url, err)
		}
		return buf, nil
	}
}

// sliceData slices buf down to the cube's data region:
// [DataOffset, DataOffset+DataBytes) when DataBytes is set, else
// [DataOffset, end). A mismatch between the descriptor's offsets/size and
// the actual byte source length is reported as ErrCorruptDescriptor rather
// than silently truncated or zero-padded.
func (c *Cube) sliceData(buf []byte) ([]byte, error) {
	if c.DataOffset < 0 || int(c.DataOffset) > len(buf) {
		return nil, corruptDescriptorErr("data_offset %d exceeds source length %d", c.DataOffset, len(buf))
	}
	start := int(c.DataOffset)
	if c.DataBytes > 0 {
		end := start + int(c.DataBytes)
		if end > len(buf) {
			return nil, corruptDescriptorErr(
				"data_bytes %d exceeds %d bytes available after offset %d", c.DataBytes, len(buf)-start, start)
		}
		return buf[start:end], nil
	}
	return buf[start:], nil
}

// Open resolves url to a byte source, builds the Reader matching the
// cube's interleave, and verifies attributes. If url is empty, the cube's
// existing URL is reused (Open is a no-op if a Reader is already bound).
// vfs may be nil if the cube only ever uses "file:" URLs; "mem:" and
// every other scheme are read through it.
func (c *Cube) Open(url string, vfs VFSOpener) error {
	if url != "" {
		if vfs != nil {
			url = vfs.Normalize(url)
		}
		c.URL = url
		c.reader = nil
	}
	if c.URL == "" {
		return fmt.Errorf("%w: no url specified", errHSI)
	}
	if c.reader != nil {
		return nil
	}
	c.vfs = vfs

	c.Initialize(nil, nil)

	buf, err := resolveBytes(c.URL, vfs)
	if err != nil {
		return err
	}
	raw, err := c.sliceData(buf)
	if err != nil {
		return err
	}

	reader, err := newReader(c.Interleave, raw, c.ItemSize, c.DataType, c.ByteOrder.binary(), c.Lines, c.Samples, c.Bands)
	if err != nil {
		return err
	}
	c.reader = reader

	c.VerifyAttributes()
	return nil
}

// Save writes the cube's data back to url (or the cube's current URL if
// url is empty).
func (c *Cube) Save(url string, vfs VFSOpener) error {
	if url != "" {
		c.URL = url
	}
	if c.reader == nil {
		return fmt.Errorf("%w: cube has no open reader", errHSI)
	}

	scheme := schemeOf(c.URL)
	if scheme == "file" {
		f, err := createFile(schemePath(c.URL, scheme))
		if err != nil {
			return fmt.Errorf("%w: creating %q: %w", errHSI, c.URL, err)
		}
		defer f.Close()
		return c.reader.Save(f)
	}
	if vfs == nil {
		return unsupportedSchemeErr(scheme)
	}
	rc, err := vfs.Open(c.URL)
	if err != nil {
		return fmt.Errorf("%w: opening %q: %w", errHSI, c.URL, err)
	}
	defer rc.Close()
	w, ok := rc.(io.Writer)
	if !ok {
		return fmt.Errorf("%w: %q is not writable", errHSI, c.URL)
	}
	return c.reader.Save(w)
}
