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
	"github.com/rs/zerolog"
)

// IndicatorFact is a row of the indicator fact table. Nil values are stored
// as NULL.
type IndicatorFact struct {
	CompanyID         int64    `db:"id_empresa"`
	DateID            int64    `db:"id_data"`
	PERatio           *float64 `db:"pe_ratio"`
	PBRatio           *float64 `db:"pb_ratio"`
	GrossMarginPct    *float64 `db:"gross_margin"`
	ProfitMarginPct   *float64 `db:"profit_margin"`
	ReturnOnEquityPct *float64 `db:"roe"`
	EarningsPerShare  *float64 `db:"eps"`
}

func (indicator *IndicatorFact) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("CompanyID", indicator.CompanyID)
	e.Int64("DateID", indicator.DateID)
	optionalFloat(e, "PE", indicator.PERatio)
	optionalFloat(e, "PB", indicator.PBRatio)
	optionalFloat(e, "GrossMargin", indicator.GrossMarginPct)
	optionalFloat(e, "ProfitMargin", indicator.ProfitMarginPct)
	optionalFloat(e, "ROE", indicator.ReturnOnEquityPct)
	optionalFloat(e, "EPS", indicator.EarningsPerShare)
}
