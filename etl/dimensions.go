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

	"github.com/penny-vault/ibovespa/data"
	"github.com/rs/zerolog"
)

// RegisterCompany adds company to the company dimension. Registering a ticker
// a second time is a no-op and does not change the stored name.
func RegisterCompany(ctx context.Context, store Store, company *data.Company) error {
	zerolog.Ctx(ctx).Debug().Object("Company", company).Msg("register company")
	return store.InsertCompany(ctx, company)
}

// PopulateCalendar inserts every day of years into the calendar dimension,
// skipping dates that are already present. It returns the number of days
// visited.
func PopulateCalendar(ctx context.Context, store Store, years data.YearRange) (int, error) {
	days := data.CalendarDays(years)
	for _, day := range days {
		if err := store.InsertCalendarDay(ctx, day); err != nil {
			return 0, err
		}
	}

	zerolog.Ctx(ctx).Info().Str("Years", years.String()).Int("NumDays", len(days)).Msg("populated calendar")

	return len(days), nil
}
