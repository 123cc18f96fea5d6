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
	"fmt"
	"os"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-hsicube"
)

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print a cube's geometry and metadata",
		ArgsUsage: "PATH",
		Flags:     geometryFlags(),
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("%w: info requires exactly one PATH argument", ErrFlagParse)
			}
			i := &info{path: c.Args().First()}
			return i.Run(c)
		},
	}
}

type info struct {
	path string
}

func (i *info) Run(c *cli.Context) error {
	cube, err := openCube(c, i.path)
	if err != nil {
		return err
	}

	d := cube.Describe()
	tbl := table.New("field", "value")
	tbl.AddRow("url", d.URL)
	tbl.AddRow("geometry (L x S x B)", fmt.Sprintf("%d x %d x %d", d.Lines, d.Samples, d.Bands))
	tbl.AddRow("interleave", d.Interleave)
	tbl.AddRow("data type", d.DataType)
	tbl.AddRow("byte order", d.ByteOrder)
	tbl.AddRow("native byte order", d.NativeByteOrder)
	tbl.AddRow("scale factor", fmt.Sprintf("%g", d.ScaleFactor))
	tbl.AddRow("data bytes", d.DataBytes)
	tbl.AddRow("bad bands", d.BadBandCount)
	if d.WavelengthUnits != "" {
		tbl.AddRow("wavelength units", d.WavelengthUnits)
	}
	tbl.Print()

	return nil
}

// geometryFlags are the flags accepted by both "info" and "convert" to
// describe a cube's geometry when it has no .hdr sidecar.
func geometryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "lines", Usage: "override/supply the number of lines"},
		&cli.IntFlag{Name: "samples", Usage: "override/supply the number of samples"},
		&cli.IntFlag{Name: "bands", Usage: "override/supply the number of bands"},
		&cli.StringFlag{Name: "interleave", Usage: "override/supply the interleave (bip, bil, bsq)"},
		&cli.IntFlag{Name: "datatype", Usage: "override/supply the ENVI data type code"},
		&cli.StringFlag{Name: "byteorder", Usage: "override/supply the byte order (little, big)"},
	}
}

// openCube opens the cube at path: it first tries a "<path>.hdr" ENVI
// sidecar, falling back to the geometry flags when no sidecar exists or
// when flags are given to override it.
func openCube(c *cli.Context, path string) (*hsi.Cube, error) {
	var cube *hsi.Cube

	if hdr, err := os.Open(path + ".hdr"); err == nil {
		defer hdr.Close()
		cube, err = (enviHeader{}).ParseHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %q: %w", errHSICube, hdr.Name(), err)
		}
	} else {
		cube = hsi.NewCube()
	}

	if v := c.Int("lines"); v != 0 {
		cube.Lines = v
	}
	if v := c.Int("samples"); v != 0 {
		cube.Samples = v
	}
	if v := c.Int("bands"); v != 0 {
		cube.Bands = v
	}
	if v := c.String("interleave"); v != "" {
		il, err := hsi.ParseInterleave(v)
		if err != nil {
			return nil, err
		}
		cube.Interleave = il
	}
	if v := c.Int("datatype"); v != 0 {
		cube.DataType = hsi.DataType(v)
	}
	if v := c.String("byteorder"); v != "" {
		if v == "big" {
			cube.ByteOrder = hsi.BigEndian
		} else {
			cube.ByteOrder = hsi.LittleEndian
		}
	}

	if cube.Lines == 0 || cube.Samples == 0 || cube.Bands == 0 || cube.Interleave == hsi.InterleaveUnknown {
		return nil, fmt.Errorf(
			"%w: no .hdr sidecar found for %q; supply --lines/--samples/--bands/--interleave/--datatype",
			ErrFlagParse, path)
	}

	if err := cube.Open("file://"+path, nil); err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", errHSICube, path, err)
	}
	return cube, nil
}
