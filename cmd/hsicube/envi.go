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

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ianlewis/go-hsicube"
)

// enviHeader is a minimal ENVI .hdr key=value sidecar parser. It is not a
// complete ENVI reader: it understands only the fields hsi.Cube needs
// (geometry, data type, byte order, interleave, and per-band metadata) and
// ignores everything else, per SPEC_FULL.md section 4.6.
type enviHeader struct{}

var _ hsi.HeaderParser = enviHeader{}

// ParseHeader reads an ENVI .hdr file from r and returns a populated,
// unopened Cube. Geometry and data type fields are required; everything
// else is optional.
func (enviHeader) ParseHeader(r io.Reader) (*hsi.Cube, error) {
	fields, err := parseEnviFields(r)
	if err != nil {
		return nil, err
	}

	c := hsi.NewCube()

	c.Lines, err = enviInt(fields, "lines")
	if err != nil {
		return nil, err
	}
	c.Samples, err = enviInt(fields, "samples")
	if err != nil {
		return nil, err
	}
	c.Bands, err = enviInt(fields, "bands")
	if err != nil {
		return nil, err
	}

	dtCode, err := enviInt(fields, "data type")
	if err != nil {
		return nil, err
	}
	c.DataType = hsi.DataType(dtCode)

	if v, ok := fields["byte order"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: byte order: %w", errHSICube, err)
		}
		if n == 1 {
			c.ByteOrder = hsi.BigEndian
		} else {
			c.ByteOrder = hsi.LittleEndian
		}
	}

	if v, ok := fields["interleave"]; ok {
		c.Interleave, err = hsi.ParseInterleave(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
	}

	if v, ok := fields["header offset"]; ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: header offset: %w", errHSICube, err)
		}
		c.HeaderOffset = n
	}

	if v, ok := fields["description"]; ok {
		c.Description = strings.TrimSpace(v)
	}
	if v, ok := fields["sensor type"]; ok {
		c.SensorType = strings.TrimSpace(v)
	}
	if v, ok := fields["wavelength units"]; ok {
		c.WavelengthUnits = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := fields["wavelength"]; ok {
		c.Wavelengths, err = enviFloatList(v)
		if err != nil {
			return nil, fmt.Errorf("%w: wavelength: %w", errHSICube, err)
		}
	}
	if v, ok := fields["fwhm"]; ok {
		c.FWHM, err = enviFloatList(v)
		if err != nil {
			return nil, fmt.Errorf("%w: fwhm: %w", errHSICube, err)
		}
	}
	if v, ok := fields["bbl"]; ok {
		floats, err := enviFloatList(v)
		if err != nil {
			return nil, fmt.Errorf("%w: bbl: %w", errHSICube, err)
		}
		c.BBL = make([]int, len(floats))
		for i, f := range floats {
			c.BBL[i] = int(f)
		}
	}
	if v, ok := fields["band names"]; ok {
		for _, name := range strings.Split(v, ",") {
			c.BandNames = append(c.BandNames, strings.TrimSpace(name))
		}
	}

	return c, nil
}

// parseEnviFields reads "key = value" pairs from r, concatenating the lines
// of brace-delimited "{ ... }" values that span multiple lines into a single
// string with no separator added; ENVI's list-valued fields already carry
// their own commas between items.
func parseEnviFields(r io.Reader) (map[string]string, error) {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pendingKey string
	var pendingValue strings.Builder
	inBrace := false

	for scanner.Scan() {
		line := scanner.Text()
		if !inBrace {
			if strings.TrimSpace(line) == "" || strings.EqualFold(strings.TrimSpace(line), "ENVI") {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			value = strings.TrimSpace(value)
			if strings.HasPrefix(value, "{") {
				value = strings.TrimPrefix(value, "{")
				if end := strings.Index(value, "}"); end >= 0 {
					fields[key] = strings.TrimSpace(value[:end])
					continue
				}
				pendingKey = key
				pendingValue.Reset()
				pendingValue.WriteString(value)
				inBrace = true
				continue
			}
			fields[key] = value
			continue
		}

		if end := strings.Index(line, "}"); end >= 0 {
			pendingValue.WriteString(line[:end])
			fields[pendingKey] = strings.TrimSpace(pendingValue.String())
			inBrace = false
			continue
		}
		pendingValue.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning header: %w", errHSICube, err)
	}
	return fields, nil
}

func enviInt(fields map[string]string, key string) (int, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", errHSICube, key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", errHSICube, key, err)
	}
	return n, nil
}

func enviFloatList(v string) ([]float64, error) {
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
