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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = errors.New("parsing flags")

// errHSICube is the base error for hsicube CLI errors.
var errHSICube = errors.New("hsicube")

func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name
	// argument but we don't use commands for it.
	//
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check panics if err is not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// must panics if err is not nil, otherwise returns val.
func must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func newHSICubeApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Inspect and convert hyperspectral image data cubes.",
		Description: strings.Join([]string{
			"hsicube(1) reads and converts BIP/BIL/BSQ hyperspectral data cubes.",
			"https://github.com/ianlewis/go-hsicube",
		}, "\n"),
		Commands: []*cli.Command{
			newInfoCommand(),
			newConvertCommand(),
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "license",
				Usage:              "print license information and exit",
				DisableDefaultText: true,
			},
		},
		ArgsUsage:       "COMMAND [arguments...]",
		Copyright:       "Google LLC",
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			switch {
			case c.Bool("version"):
				return printVersion(c)
			case c.Bool("license"):
				return printLicense(c)
			case c.Bool("help"), c.Args().Len() == 0:
				check(cli.ShowAppHelp(c))
				return nil
			}
			return fmt.Errorf("%w: unknown command %q", ErrFlagParse, c.Args().First())
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			_ = must(fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err))
			if errors.Is(err, ErrFlagParse) {
				cli.OsExiter(ExitCodeFlagParseError)
				return
			}
			cli.OsExiter(ExitCodeUnknownError)
		},
	}
}
