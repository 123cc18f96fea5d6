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

	"github.com/urfave/cli/v2"
)

func newConvertCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:     "to",
			Usage:    "target interleave (bip, bil, bsq)",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "block-size",
			Usage: "streaming block size, in bytes",
			Value: 1 << 20,
		},
		&cli.BoolFlag{
			Name:               "verbose",
			Usage:              "print a percentage-complete line per block",
			Aliases:            []string{"v"},
			DisableDefaultText: true,
		},
	}, geometryFlags()...)

	return &cli.Command{
		Name:      "convert",
		Usage:     "re-interleave a cube into a new file",
		ArgsUsage: "PATH OUTPUT",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("%w: convert requires PATH and OUTPUT arguments", ErrFlagParse)
			}
			conv := &convert{
				path:      c.Args().Get(0),
				output:    c.Args().Get(1),
				to:        c.String("to"),
				blockSize: c.Int("block-size"),
				verbose:   c.Bool("verbose"),
			}
			return conv.Run(c)
		},
	}
}

type convert struct {
	path      string
	output    string
	to        string
	blockSize int
	verbose   bool
}

func (conv *convert) Run(c *cli.Context) error {
	cube, err := openCube(c, conv.path)
	if err != nil {
		return err
	}

	dst, err := os.OpenFile(conv.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening target file: %w", errHSICube, err)
	}
	defer dst.Close()

	var progress func(int)
	if conv.verbose {
		progress = func(pct int) {
			fmt.Fprintf(c.App.Writer, "\rconverting... %d%%", pct)
		}
	}

	if err := cube.WriteRaw(dst, conv.blockSize, conv.to, progress); err != nil {
		return fmt.Errorf("%w: converting %q: %w", errHSICube, conv.path, err)
	}
	if conv.verbose {
		fmt.Fprintln(c.App.Writer)
	}

	return nil
}
