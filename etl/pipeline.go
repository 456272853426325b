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
package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penny-vault/ibovespa/data"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownTicker = errors.New("ticker is not in the company list")
)

// Options describes what a run loads
type Options struct {
	Companies     []*data.Company
	CalendarRange data.YearRange
	PriceWindow   data.DateWindow
	IndicatorGrid data.YearRange

	// Only restricts price and indicator loading to these tickers. Every
	// company is still registered.
	Only           []string
	SkipPrices     bool
	SkipIndicators bool
}

// Pipeline runs the load steps in order against a warehouse
type Pipeline struct {
	runner Runner
	source Source
}

func New(runner Runner, source Source) *Pipeline {
	return &Pipeline{
		runner: runner,
		source: source,
	}
}

// Run registers every company, populates the calendar and then loads prices
// and indicators company by company. Each step is committed on its own; the
// first failure aborts the run and leaves earlier steps committed. The summary
// is returned in both cases and saved to the run ledger.
func (pipeline *Pipeline) Run(ctx context.Context, opts *Options) (*data.RunSummary, error) {
	summary := data.NewRunSummary()
	logger := zerolog.Ctx(ctx).With().Str("RunID", summary.ID.String()).Logger()
	ctx = logger.WithContext(ctx)

	summary.Err = pipeline.run(ctx, opts, summary)
	summary.EndTime = time.Now()

	// record the run even if ctx was cancelled
	if err := pipeline.runner.SaveRun(context.WithoutCancel(ctx), summary); err != nil {
		logger.Error().Err(err).Msg("could not save run summary")
	}

	return summary, summary.Err
}

func (pipeline *Pipeline) run(ctx context.Context, opts *Options, summary *data.RunSummary) error {
	logger := zerolog.Ctx(ctx)

	companies, err := selectCompanies(opts.Companies, opts.Only)
	if err != nil {
		return err
	}

	for _, company := range opts.Companies {
		err := pipeline.runner.RunInTx(ctx, func(store Store) error {
			return RegisterCompany(ctx, store, company)
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", company.Ticker, err)
		}
		summary.NumCompanies++
	}

	logger.Info().Int("NumCompanies", summary.NumCompanies).Msg("registered companies")

	err = pipeline.runner.RunInTx(ctx, func(store Store) error {
		numDays, err := PopulateCalendar(ctx, store, opts.CalendarRange)
		summary.NumCalendarDays = numDays
		return err
	})
	if err != nil {
		return fmt.Errorf("populate calendar: %w", err)
	}

	for _, company := range companies {
		if !opts.SkipPrices {
			err := pipeline.runner.RunInTx(ctx, func(store Store) error {
				numPrices, err := LoadPrices(ctx, store, pipeline.source, company.Ticker, opts.PriceWindow)
				if err == nil {
					summary.NumPrices += numPrices
				}
				return err
			})
			if err != nil {
				return fmt.Errorf("load prices for %s: %w", company.Ticker, err)
			}
		}

		if !opts.SkipIndicators {
			err := pipeline.runner.RunInTx(ctx, func(store Store) error {
				numIndicators, err := LoadIndicators(ctx, store, pipeline.source, company.Ticker, opts.IndicatorGrid)
				if err == nil {
					summary.NumIndicators += numIndicators
				}
				return err
			})
			if err != nil {
				return fmt.Errorf("load indicators for %s: %w", company.Ticker, err)
			}
		}
	}

	return nil
}

// selectCompanies returns the companies named in only, keeping the order of
// the company list
func selectCompanies(companies []*data.Company, only []string) ([]*data.Company, error) {
	if len(only) == 0 {
		return companies, nil
	}

	wanted := make(map[string]bool, len(only))
	for _, ticker := range only {
		wanted[ticker] = true
	}

	selected := make([]*data.Company, 0, len(only))
	for _, company := range companies {
		if wanted[company.Ticker] {
			selected = append(selected, company)
			delete(wanted, company.Ticker)
		}
	}

	for _, ticker := range only {
		if wanted[ticker] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
		}
	}

	return selected, nil
}
