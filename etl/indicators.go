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

// LoadIndicators stores one indicator fact for every quarter of grid in which
// ticker published a quarterly statement. The values come from the current
// fundamentals snapshot, so every matched quarter receives the same figures.
// Quarters already present for the company are left untouched. It returns the
// number of new rows.
func LoadIndicators(ctx context.Context, store Store, source Source, ticker string, grid data.YearRange) (int, error) {
	logger := zerolog.Ctx(ctx).With().Str("Ticker", ticker).Logger()

	companyID, err := store.CompanyID(ctx, ticker)
	if err != nil {
		return 0, err
	}

	fundamentals, statements, err := source.Fundamentals(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("fetch fundamentals for %s: %w", ticker, err)
	}

	inserted := 0
	for _, quarter := range data.Quarters(grid) {
		if !statements.HasQuarter(quarter) {
			continue
		}

		dateID, ok, err := store.QuarterDateID(ctx, quarter)
		if err != nil {
			return inserted, err
		}

		if !ok {
			logger.Debug().Int("Year", quarter.Year).Int("Quarter", quarter.Quarter).Msg("quarter not in calendar, skipping")
			continue
		}

		isNew, err := store.InsertIndicator(ctx, fundamentals.Indicator(companyID, dateID))
		if err != nil {
			return inserted, err
		}

		if isNew {
			inserted++
		}
	}

	logger.Info().Int("NumIndicators", inserted).Int("NumStatements", len(statements)).Msg("loaded indicators")

	return inserted, nil
}
