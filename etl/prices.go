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
	"fmt"

	"github.com/penny-vault/ibovespa/data"
	"github.com/rs/zerolog"
)

// LoadPrices downloads the daily bars of ticker inside window and appends one
// price fact per bar. The ticker must already be registered and every bar date
// must exist in the calendar. Loading the same window twice stores duplicate
// rows.
func LoadPrices(ctx context.Context, store Store, source Source, ticker string, window data.DateWindow) (int, error) {
	logger := zerolog.Ctx(ctx).With().Str("Ticker", ticker).Logger()

	companyID, err := store.CompanyID(ctx, ticker)
	if err != nil {
		return 0, err
	}

	bars, err := source.DailyBars(ctx, ticker, window)
	if err != nil {
		return 0, fmt.Errorf("fetch prices for %s: %w", ticker, err)
	}

	for _, bar := range bars {
		dateID, err := store.DateID(ctx, bar.Date)
		if err != nil {
			logger.Error().Err(err).Object("Bar", bar).Msg("bar date is not in the calendar")
			return 0, err
		}

		if err := store.InsertPrice(ctx, data.NewPriceFact(companyID, dateID, bar)); err != nil {
			return 0, err
		}
	}

	logger.Info().Int("NumPrices", len(bars)).Str("Window", window.String()).Msg("loaded prices")

	return len(bars), nil
}
