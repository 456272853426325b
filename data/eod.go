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
package data

import (
	"time"

	"github.com/rs/zerolog"
)

// Bar is a single daily OHLCV observation as returned by a price provider.
// Date is the trading date at midnight UTC. AdjustedClose and Volume are nil
// when the provider did not report them.
type Bar struct {
	Date          time.Time `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose *float64  `json:"adjClose"`
	Volume        *int64    `json:"volume"`
}

// PriceFact is a row of the price fact table
type PriceFact struct {
	CompanyID     int64    `db:"id_empresa"`
	DateID        int64    `db:"id_data"`
	Open          float64  `db:"preco_abertura"`
	Close         float64  `db:"preco_fechamento"`
	High          float64  `db:"maxima"`
	Low           float64  `db:"minima"`
	Volume        *int64   `db:"volume"`
	AdjustedClose *float64 `db:"preco_ajustado"`
}

// NewPriceFact copies the measurements of bar into a fact row referencing the
// given dimension keys
func NewPriceFact(companyID, dateID int64, bar *Bar) *PriceFact {
	return &PriceFact{
		CompanyID:     companyID,
		DateID:        dateID,
		Open:          bar.Open,
		Close:         bar.Close,
		High:          bar.High,
		Low:           bar.Low,
		Volume:        copyInt(bar.Volume),
		AdjustedClose: copyFloat(bar.AdjustedClose),
	}
}

func (bar *Bar) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Date", bar.Date.Format(time.DateOnly))
	e.Float64("Open", bar.Open)
	e.Float64("High", bar.High)
	e.Float64("Low", bar.Low)
	e.Float64("Close", bar.Close)
	optionalFloat(e, "AdjClose", bar.AdjustedClose)
	if bar.Volume != nil {
		e.Int64("Volume", *bar.Volume)
	}
}

func (price *PriceFact) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("CompanyID", price.CompanyID)
	e.Int64("DateID", price.DateID)
	e.Float64("Close", price.Close)
}

func copyInt(v *int64) *int64 {
	if v == nil {
		return nil
	}

	out := *v
	return &out
}
