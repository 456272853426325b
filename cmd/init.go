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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackc/pgx/v5"
	"github.com/penny-vault/ibovespa/config"
	"github.com/penny-vault/ibovespa/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather database configuration and setup schema",
	Run: func(cmd *cobra.Command, args []string) {
		dbConfig := config.DBConfig{
			Host:    config.DefaultDBHost,
			User:    config.DefaultDBUser,
			Name:    config.DefaultDBName,
			SSLMode: config.DefaultDBSSLMode,
		}
		port := strconv.Itoa(config.DefaultDBPort)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("PostgreSQL host:").
					Value(&dbConfig.Host),
				huh.NewInput().
					Title("Port:").
					Value(&port).
					Validate(func(s string) error {
						_, err := strconv.Atoi(s)
						return err
					}),
				huh.NewInput().
					Title("Database name:").
					Value(&dbConfig.Name),
				huh.NewSelect[string]().
					Title("SSL mode:").
					Options(huh.NewOptions("disable", "prefer", "require", "verify-full")...).
					Value(&dbConfig.SSLMode),
			),

			huh.NewGroup(
				huh.NewInput().
					Title("User:").
					Value(&dbConfig.User),
				huh.NewInput().
					Title("Password:").
					Password(true).
					Value(&dbConfig.Password).
					Validate(func(password string) error {
						// port is validated by the previous group
						candidate := dbConfig
						candidate.Password = password
						candidate.Port, _ = strconv.Atoi(port)
						_, err := pgx.ParseConfig(config.BuildConnString(candidate))
						return err
					}),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering database settings")
		}

		dbConfig.Port, _ = strconv.Atoi(port)

		configFN := cfgFile
		if configFN == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("could not determine user home directory")
			}
			configFN = filepath.Join(home, ".ibovespa.toml")
		}

		printInitSummary(dbConfig, configFN)

		confirmed := true
		confirmForm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Create tables and save configuration?").
					Value(&confirmed),
			),
		)

		if err := confirmForm.Run(); err != nil {
			log.Fatal().Err(err).Msg("failed to create wizard")
		}

		if !confirmed {
			log.Info().Msg("Not saving configuration")
			return
		}

		log.Info().Msg("creating database tables")

		if err := db.Migrate(config.BuildConnString(dbConfig)); err != nil {
			log.Fatal().Err(err).Msg("error running database migration")
		}

		log.Info().Msg("database tables created")

		log.Info().Str("ConfigFile", configFN).Msg("Saving database connection info to config file")
		if err := config.WriteFile(configFN, dbConfig); err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("Your warehouse has been initialized")
	},
}

func printInitSummary(dbConfig config.DBConfig, configFN string) {
	var sb strings.Builder
	keyword := func(s string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render(s)
	}

	fmt.Fprintf(&sb,
		"%s\n\nHost: %s\nPort: %s\nDatabase: %s\nUser: %s\nSSL mode: %s\nConfig file: %s",
		lipgloss.NewStyle().Bold(true).Render("WAREHOUSE"),
		keyword(dbConfig.Host),
		keyword(strconv.Itoa(dbConfig.Port)),
		keyword(dbConfig.Name),
		keyword(dbConfig.User),
		keyword(dbConfig.SSLMode),
		keyword(configFN),
	)

	fmt.Println(
		lipgloss.NewStyle().
			Width(60).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2).
			Render(sb.String()),
	)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
