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
// Package etl loads the company and calendar dimensions and the price and
// indicator fact tables of the warehouse.
package etl

import (
	"context"
	"time"

	"github.com/penny-vault/ibovespa/data"
)

// Store is the set of warehouse operations the loaders need. All calls made
// through one Store value belong to the same transaction.
type Store interface {
	InsertCompany(ctx context.Context, company *data.Company) error
	InsertCalendarDay(ctx context.Context, day *data.CalendarDay) error
	CompanyID(ctx context.Context, ticker string) (int64, error)
	DateID(ctx context.Context, date time.Time) (int64, error)
	QuarterDateID(ctx context.Context, q data.Quarter) (int64, bool, error)
	InsertPrice(ctx context.Context, price *data.PriceFact) error
	InsertIndicator(ctx context.Context, indicator *data.IndicatorFact) (bool, error)
}

// Runner executes each top-level step of a run in its own transaction and
// records the outcome of the run
type Runner interface {
	RunInTx(ctx context.Context, fn func(Store) error) error
	SaveRun(ctx context.Context, summary *data.RunSummary) error
}

// Source is the upstream market data provider
type Source interface {
	DailyBars(ctx context.Context, ticker string, window data.DateWindow) ([]*data.Bar, error)
	Fundamentals(ctx context.Context, ticker string) (*data.Fundamentals, data.StatementIndex, error)
}
