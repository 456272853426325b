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
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/penny-vault/ibovespa/data"
	"github.com/rs/zerolog"
)

// Tx exposes the warehouse operations available inside a transaction
type Tx struct {
	tx pgx.Tx
}

// InsertCompany adds company to the company dimension. An existing ticker is
// left untouched, including its name.
func (t *Tx) InsertCompany(ctx context.Context, company *data.Company) error {
	sql := `INSERT INTO dim_empresa (ticker, nome_empresa) VALUES ($1, $2) ON CONFLICT (ticker) DO NOTHING`
	if _, err := t.tx.Exec(ctx, sql, company.Ticker, company.Name); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("SQL", sql).Object("Company", company).Msg("save company to DB failed")
		return err
	}

	return nil
}

// InsertCalendarDay adds day to the calendar dimension if its date is not
// already present
func (t *Tx) InsertCalendarDay(ctx context.Context, day *data.CalendarDay) error {
	sql := `INSERT INTO dim_calendario (data, ano, mes, trimestre) VALUES ($1, $2, $3, $4) ON CONFLICT (data) DO NOTHING`
	if _, err := t.tx.Exec(ctx, sql, day.Date, day.Year, day.Month, day.Quarter); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("SQL", sql).Object("CalendarDay", day).Msg("save calendar day to DB failed")
		return err
	}

	return nil
}

// CompanyID returns the surrogate key of ticker
func (t *Tx) CompanyID(ctx context.Context, ticker string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `SELECT id_empresa FROM dim_empresa WHERE ticker = $1`, ticker).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
	}

	return id, err
}

// DateID returns the surrogate key of the calendar day matching date
func (t *Tx) DateID(ctx context.Context, date time.Time) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `SELECT id_data FROM dim_calendario WHERE data = $1`, data.DateOnly(date)).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrDateNotFound, date.Format(time.DateOnly))
	}

	return id, err
}

// QuarterDateID returns the key of the first calendar day of the given
// quarter. ok is false when the calendar does not cover the quarter.
func (t *Tx) QuarterDateID(ctx context.Context, q data.Quarter) (id int64, ok bool, err error) {
	err = t.tx.QueryRow(ctx, `SELECT id_data FROM dim_calendario WHERE ano = $1 AND trimestre = $2
ORDER BY data LIMIT 1`, q.Year, q.Quarter).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, err
	}

	return id, true, nil
}

// InsertPrice appends price to the price fact table. The table has no unique
// key so loading the same bar twice stores it twice.
func (t *Tx) InsertPrice(ctx context.Context, price *data.PriceFact) error {
	sql := `INSERT INTO fato_acoes (
		id_empresa,
		id_data,
		preco_abertura,
		preco_fechamento,
		maxima,
		minima,
		volume,
		preco_ajustado
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := t.tx.Exec(ctx, sql, price.CompanyID, price.DateID, price.Open, price.Close,
		price.High, price.Low, price.Volume, price.AdjustedClose)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("SQL", sql).Object("Price", price).Msg("save price to DB failed")
		return err
	}

	return nil
}

// InsertIndicator stores indicator unless a row for the same company and date
// exists. inserted reports whether a new row was written.
func (t *Tx) InsertIndicator(ctx context.Context, indicator *data.IndicatorFact) (inserted bool, err error) {
	sql := `INSERT INTO fato_indicadores (
		id_empresa,
		id_data,
		pe_ratio,
		pb_ratio,
		gross_margin,
		profit_margin,
		roe,
		eps
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id_empresa, id_data) DO NOTHING`

	tag, err := t.tx.Exec(ctx, sql, indicator.CompanyID, indicator.DateID, indicator.PERatio,
		indicator.PBRatio, indicator.GrossMarginPct, indicator.ProfitMarginPct,
		indicator.ReturnOnEquityPct, indicator.EarningsPerShare)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("SQL", sql).Object("Indicator", indicator).Msg("save indicator to DB failed")
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
