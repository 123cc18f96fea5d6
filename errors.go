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
	"errors"
	"fmt"
)

var (
	// errHSI is the base error for all go-hsicube errors.
	errHSI = errors.New("hsi")

	// ErrUnsupportedInterleave indicates an interleave tag outside
	// {bip, bil, bsq}.
	ErrUnsupportedInterleave = fmt.Errorf("%w: unsupported interleave", errHSI)

	// ErrUnsupportedScheme indicates a location URL scheme the byte source
	// does not know how to resolve.
	ErrUnsupportedScheme = fmt.Errorf("%w: unsupported scheme", errHSI)

	// ErrCorruptDescriptor indicates the cube's geometry or offsets are
	// inconsistent with the length of the underlying byte source.
	ErrCorruptDescriptor = fmt.Errorf("%w: corrupt descriptor", errHSI)

	// ErrOutOfResources indicates the byte source could not be mapped, e.g.
	// because the file is larger than the address space.
	ErrOutOfResources = fmt.Errorf("%w: out of resources", errHSI)

	// ErrIndexOutOfRange indicates a pixel, band, line, sample, or flat
	// index fell outside the cube's geometry.
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", errHSI)
)

// unsupportedInterleaveErr wraps [ErrUnsupportedInterleave] with the
// offending tag.
func unsupportedInterleaveErr(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedInterleave, tag)
}

// unsupportedSchemeErr wraps [ErrUnsupportedScheme] with the offending
// scheme.
func unsupportedSchemeErr(scheme string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
}

// corruptDescriptorErr wraps [ErrCorruptDescriptor] with detail.
func corruptDescriptorErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptDescriptor, fmt.Sprintf(format, args...))
}

// indexOutOfRangeErr wraps [ErrIndexOutOfRange] with detail.
func indexOutOfRangeErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIndexOutOfRange, fmt.Sprintf(format, args...))
}
