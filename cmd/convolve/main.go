// seehuhn.de/go/convolve - exact filtered rasterization
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command convolve renders scenes to PNG images using exact filtered
// rasterization.
//
// Usage:
//
//	convolve render [-f name | -c file] [--scale s] [--workers n] [--debug] <scene.json|testcase> <out.png>
//	convolve filters
//	convolve dump [--format json|toml] <filter>
//	convolve testcases
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "convolve:", err)
		var usage *usageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "convolve",
		Short:         "Render vector outlines by exact convolution with a filter kernel",
		SilenceUsage:  true,
		SilenceErrors: true,

		// Conflicting flags are otherwise only reported after all hooks
		// have run, as plain errors.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.ValidateFlagGroups(); err != nil {
				return &usageError{msg: err.Error()}
			}
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})
	root.AddCommand(renderCmd(), filtersCmd(), dumpCmd(), testcasesCmd())
	return root
}

// usageError reports invalid command line arguments.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// usageArgs turns the errors of an argument validator into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{msg: err.Error()}
		}
		return nil
	}
}
