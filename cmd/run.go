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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penny-vault/ibovespa/config"
	"github.com/penny-vault/ibovespa/data"
	"github.com/penny-vault/ibovespa/db"
	"github.com/penny-vault/ibovespa/etl"
	"github.com/penny-vault/ibovespa/healthcheck"
	"github.com/penny-vault/ibovespa/provider"
	"github.com/penny-vault/ibovespa/warehouse"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	runOnly           []string
	runSkipPrices     bool
	runSkipIndicators bool
	runMigrate        bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load companies, calendar, prices and indicators into the warehouse",
	Long: `The run sub-command executes the full load: it registers every configured
company, populates the calendar and then, company by company, loads daily prices
and quarterly indicators. Each step is committed separately. The first failure
stops the run; steps committed before it are kept. Use --only to reload a subset
of tickers.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctx = log.Logger.WithContext(ctx)
		cfg := loadConfig()

		summary, err := runPipeline(ctx, cfg)
		if err != nil {
			stop()
			log.Fatal().Err(err).Msg("run failed")
		}

		log.Info().Object("Summary", summary).Msg("run finished")
	},
}

// runPipeline owns the warehouse connection so it is closed before the
// command decides how to exit
func runPipeline(ctx context.Context, cfg *config.Config) (*data.RunSummary, error) {
	dbURL := cfg.DatabaseURL()

	if runMigrate {
		log.Info().Msg("migrating database schema")
		if err := db.Migrate(dbURL); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	wh, err := warehouse.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect to warehouse: %w", err)
	}
	defer wh.Close()

	check := healthcheck.New(cfg.PingURL)
	if err := check.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("healthcheck start ping failed")
	}

	yahoo := provider.NewYahoo(provider.YahooOptions{
		BaseURL:   cfg.Yahoo.BaseURL,
		CookieURL: cfg.Yahoo.CookieURL,
		UserAgent: cfg.Yahoo.UserAgent,
		RateLimit: cfg.Yahoo.RateLimit,
	})

	pipeline := etl.New(etl.WarehouseRunner(wh), yahoo)
	summary, err := pipeline.Run(ctx, &etl.Options{
		Companies:      cfg.Companies,
		CalendarRange:  cfg.CalendarRange,
		PriceWindow:    cfg.PriceWindow,
		IndicatorGrid:  cfg.IndicatorGrid,
		Only:           runOnly,
		SkipPrices:     runSkipPrices,
		SkipIndicators: runSkipIndicators,
	})

	pingCtx := context.WithoutCancel(ctx)
	if err != nil {
		if pingErr := check.Fail(pingCtx, err.Error()); pingErr != nil {
			log.Warn().Err(pingErr).Msg("healthcheck fail ping failed")
		}
		return summary, err
	}

	msg := fmt.Sprintf("run %s: %d companies, %d calendar days, %d prices, %d indicators",
		summary.ID, summary.NumCompanies, summary.NumCalendarDays, summary.NumPrices, summary.NumIndicators)
	if pingErr := check.Success(pingCtx, msg); pingErr != nil {
		log.Warn().Err(pingErr).Msg("healthcheck success ping failed")
	}

	return summary, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVar(&runOnly, "only", nil, "only load prices and indicators for this ticker (repeatable)")
	runCmd.Flags().BoolVar(&runSkipPrices, "skip-prices", false, "do not load daily prices")
	runCmd.Flags().BoolVar(&runSkipIndicators, "skip-indicators", false, "do not load quarterly indicators")
	runCmd.Flags().BoolVar(&runMigrate, "migrate", false, "apply database migrations before loading")
}
