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
	"strings"

	"github.com/penny-vault/ibovespa/pkginfo"
	"github.com/spf13/cobra"
)

var (
	versionDeps  bool
	versionShort bool
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version info",
	Long: `Print the version of ibovespa together with the commit and date it was built
from. Values not set at link time are read from the module build info.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := pkginfo.Current()
		if versionShort {
			fmt.Println(info.Version)
			return
		}

		fmt.Printf("%s %s\n\n", pkginfo.Name, info.Version)
		for _, field := range [][2]string{
			{"Commit", info.CommitHash},
			{"Build Date", info.BuildDate},
			{"Go Version", info.GoVersion},
			{"Platform", info.Platform},
		} {
			value := field[1]
			if value == "" {
				value = "unknown"
			}
			fmt.Printf("%-12s %s\n", field[0]+":", value)
		}

		if versionDeps {
			fmt.Printf("\nDependencies:\n%s\n", strings.Join(pkginfo.GetDependencyList(), "\n"))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionDeps, "deps", "d", false, "print dependencies")
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "only print version number")
}
