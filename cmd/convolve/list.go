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

package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"seehuhn.de/go/convolve/filter"
	"seehuhn.de/go/convolve/testcases"
)

func filtersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the built-in filters",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range filter.Names() {
				f, err := filter.Named(name)
				if err != nil {
					return err
				}
				s := f.Support()
				mark := ""
				if name == filter.DefaultName {
					mark = " (default)"
				}
				fmt.Fprintf(out, "%-12s [%g, %g] x [%g, %g]%s\n",
					name, s.X.Min, s.X.Max, s.Y.Min, s.Y.Max, mark)
			}
			return nil
		},
	}
}

func dumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump [--format json|toml] <filter>",
		Short: "Write the description of a built-in filter",
		Long: `Write the description of a built-in filter to standard output.
The output can be edited and passed to "convolve render -c".`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != filter.FormatJSON && format != filter.FormatTOML {
				return &usageError{msg: fmt.Sprintf("unknown format %q", format)}
			}
			f, err := filter.Named(args[0])
			if err != nil {
				return err
			}
			return filter.Encode(cmd.OutOrStdout(), f.Description(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", filter.FormatTOML, "output format (json or toml)")
	return cmd
}

func testcasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "testcases",
		Short: "List the built-in test cases",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
				for _, tc := range testcases.All[category] {
					op := ""
					if tc.Stroke != nil {
						op = "\tstroke"
					}
					fmt.Fprintf(out, "%s_%s\t%dx%d%s\n", category, tc.Name, tc.Width, tc.Height, op)
				}
			}
		},
	}
}
