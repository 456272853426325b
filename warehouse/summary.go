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
package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CompanyStats counts the fact rows loaded for one company
type CompanyStats struct {
	Ticker        string `db:"ticker"`
	Name          string `db:"nome_empresa"`
	NumPrices     int64  `db:"num_prices"`
	NumIndicators int64  `db:"num_indicators"`
}

// CalendarCoverage describes the populated calendar dimension
type CalendarCoverage struct {
	NumDays   int64      `db:"num_days"`
	FirstDate *time.Time `db:"first_date"`
	LastDate  *time.Time `db:"last_date"`
}

// LastRun is the most recent entry of the run ledger
type LastRun struct {
	StartedAt     time.Time `db:"started_at"`
	NumPrices     int64     `db:"num_prices"`
	NumIndicators int64     `db:"num_indicators"`
	Succeeded     bool      `db:"succeeded"`
	ErrorMessage  *string   `db:"error_message"`
}

// Companies returns fact row counts for every registered company ordered by ticker
func (wh *Warehouse) Companies(ctx context.Context) ([]*CompanyStats, error) {
	stats := make([]*CompanyStats, 0, 10)
	err := pgxscan.Select(ctx, wh.Pool, &stats, `SELECT e.ticker, e.nome_empresa,
	(SELECT count(*) FROM fato_acoes a WHERE a.id_empresa = e.id_empresa) AS num_prices,
	(SELECT count(*) FROM fato_indicadores i WHERE i.id_empresa = e.id_empresa) AS num_indicators
FROM dim_empresa e
ORDER BY e.ticker`)
	return stats, err
}

// Calendar returns the extent of the calendar dimension
func (wh *Warehouse) Calendar(ctx context.Context) (*CalendarCoverage, error) {
	coverage := &CalendarCoverage{}
	err := pgxscan.Get(ctx, wh.Pool, coverage, `SELECT count(*) AS num_days, min(data) AS first_date,
	max(data) AS last_date FROM dim_calendario`)
	return coverage, err
}

// LastRun returns the most recent run or nil if the loader never ran
func (wh *Warehouse) LastRun(ctx context.Context) (*LastRun, error) {
	lastRun := &LastRun{}
	err := pgxscan.Get(ctx, wh.Pool, lastRun, `SELECT started_at, num_prices, num_indicators,
	succeeded, error_message FROM etl_runs ORDER BY started_at DESC LIMIT 1`)
	if pgxscan.NotFound(err) {
		return nil, nil
	}

	return lastRun, err
}

// Summary returns a description of the warehouse in markdown
func (wh *Warehouse) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Ibovespa warehouse\n")
	builder.WriteString("## Details\n\n")

	calendar, err := wh.Calendar(ctx)
	if err != nil {
		return "", err
	}

	if calendar.FirstDate == nil || calendar.LastDate == nil {
		builder.WriteString("Calendar: empty\n\n")
	} else {
		builder.WriteString(p.Sprintf("Calendar: %d days (%s to %s)\n\n", calendar.NumDays,
			calendar.FirstDate.Format(time.DateOnly), calendar.LastDate.Format(time.DateOnly)))
	}

	lastRun, err := wh.LastRun(ctx)
	if err != nil {
		return "", err
	}

	if lastRun == nil {
		builder.WriteString("Last Run: Never\n\n")
	} else {
		status := "succeeded"
		if !lastRun.Succeeded {
			status = "failed"
			if lastRun.ErrorMessage != nil {
				status = fmt.Sprintf("failed: %s", *lastRun.ErrorMessage)
			}
		}

		builder.WriteString(p.Sprintf("Last Run: %s (%s), %d prices, %d indicators, %s\n\n",
			timeago.English.Format(lastRun.StartedAt), lastRun.StartedAt.Local().Format("01/02/2006"),
			lastRun.NumPrices, lastRun.NumIndicators, status))
	}

	builder.WriteString("## Companies\n\n")

	companies, err := wh.Companies(ctx)
	if err != nil {
		return "", err
	}

	if len(companies) == 0 {
		builder.WriteString("No companies registered\n")
	}

	var totalPrices, totalIndicators int64
	for _, company := range companies {
		totalPrices += company.NumPrices
		totalIndicators += company.NumIndicators
		builder.WriteString(p.Sprintf("  * %s %s: %d prices, %d indicators\n", company.Ticker,
			company.Name, company.NumPrices, company.NumIndicators))
	}

	builder.WriteString(p.Sprintf("\nTotal Records: %d prices, %d indicators\n", totalPrices, totalIndicators))

	return builder.String(), nil
}
