// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pvscreen/pkginfo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type versionOptions struct {
	deps   bool
	filter string
	short  bool
	asJSON bool
}

var versionOpts versionOptions

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Long: `Print the pvscreen version, build stamp and optionally the modules
compiled into the binary. Use --json for machine readable output.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := printVersion(os.Stdout, versionOpts); err != nil {
			log.Fatal().Err(err).Msg("could not print version info")
		}
	},
}

func printVersion(w io.Writer, opts versionOptions) error {
	info := pkginfo.BuildInfo(opts.deps, opts.filter)

	if opts.asJSON {
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	if opts.short {
		_, err := fmt.Fprintln(w, info.Version)
		return err
	}

	if _, err := fmt.Fprintln(w, pkginfo.BuildVersionString()); err != nil {
		return err
	}

	if len(info.Deps) > 0 {
		_, err := fmt.Fprintf(w, "\nDependencies:\n%s\n", strings.Join(info.Deps, "\n"))
		return err
	}

	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionOpts.deps, "deps", "d", false, "print dependencies")
	versionCmd.Flags().StringVar(&versionOpts.filter, "filter", "", "only print dependencies whose path contains this string")
	versionCmd.Flags().BoolVarP(&versionOpts.short, "short", "s", false, "only print version number")
	versionCmd.Flags().BoolVar(&versionOpts.asJSON, "json", false, "print version info as json")
}
