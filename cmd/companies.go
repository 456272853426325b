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

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// companiesCmd represents the companies command
var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the companies a run loads",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		r, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)

		builder := strings.Builder{}
		builder.WriteString("# Companies\n\n")
		builder.WriteString("| Ticker | Name |\n| --- | --- |\n")
		for _, company := range cfg.Companies {
			builder.WriteString(fmt.Sprintf("| %s | %s |\n", company.Ticker, company.Name))
		}

		builder.WriteString(fmt.Sprintf("\nPrices from %s, indicators for %s, calendar %s\n",
			cfg.PriceWindow, cfg.IndicatorGrid, cfg.CalendarRange))

		out, err := r.Render(builder.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render company document")
		}

		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}
