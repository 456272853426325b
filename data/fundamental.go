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

// Fundamentals is a point-in-time snapshot of a company's valuation and
// profitability. Margins and return on equity are fractions (0.45 == 45%).
// A nil field means the provider did not report the value.
type Fundamentals struct {
	TrailingPE     *float64 `json:"trailingPE"`
	PriceToBook    *float64 `json:"priceToBook"`
	GrossMargins   *float64 `json:"grossMargins"`
	ProfitMargins  *float64 `json:"profitMargins"`
	ReturnOnEquity *float64 `json:"returnOnEquity"`
	TrailingEPS    *float64 `json:"trailingEps"`
}

// Quarter identifies a calendar quarter of a year
type Quarter struct {
	Year    int
	Quarter int
}

// Quarters returns every quarter of years, ordered by year then quarter
func Quarters(years YearRange) []Quarter {
	quarters := make([]Quarter, 0, (years.End-years.Start+1)*4)
	for year := years.Start; year <= years.End; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			quarters = append(quarters, Quarter{Year: year, Quarter: quarter})
		}
	}

	return quarters
}

// StatementIndex lists the report dates of the quarterly financial statements
// a company has published
type StatementIndex []time.Time

// HasQuarter reports whether at least one statement date falls within the
// calendar quarter q
func (index StatementIndex) HasQuarter(q Quarter) bool {
	for _, reportDate := range index {
		if reportDate.Year() == q.Year && QuarterOf(reportDate.Month()) == q.Quarter {
			return true
		}
	}

	return false
}

// Indicator converts the snapshot into an indicator fact row. Fractions are
// expressed as percentages and nil values stay nil.
func (fundamentals *Fundamentals) Indicator(companyID, dateID int64) *IndicatorFact {
	return &IndicatorFact{
		CompanyID:         companyID,
		DateID:            dateID,
		PERatio:           copyFloat(fundamentals.TrailingPE),
		PBRatio:           copyFloat(fundamentals.PriceToBook),
		GrossMarginPct:    percent(fundamentals.GrossMargins),
		ProfitMarginPct:   percent(fundamentals.ProfitMargins),
		ReturnOnEquityPct: percent(fundamentals.ReturnOnEquity),
		EarningsPerShare:  copyFloat(fundamentals.TrailingEPS),
	}
}

func (fundamentals *Fundamentals) MarshalZerologObject(e *zerolog.Event) {
	optionalFloat(e, "TrailingPE", fundamentals.TrailingPE)
	optionalFloat(e, "PriceToBook", fundamentals.PriceToBook)
	optionalFloat(e, "GrossMargins", fundamentals.GrossMargins)
	optionalFloat(e, "ProfitMargins", fundamentals.ProfitMargins)
	optionalFloat(e, "ReturnOnEquity", fundamentals.ReturnOnEquity)
	optionalFloat(e, "TrailingEPS", fundamentals.TrailingEPS)
}

func percent(fraction *float64) *float64 {
	if fraction == nil {
		return nil
	}

	pct := *fraction * 100
	return &pct
}

func copyFloat(val *float64) *float64 {
	if val == nil {
		return nil
	}

	out := *val
	return &out
}

func optionalFloat(e *zerolog.Event, key string, val *float64) {
	if val == nil {
		e.Interface(key, nil)
		return
	}

	e.Float64(key, *val)
}
