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

	"github.com/penny-vault/ibovespa/data"
)

// SaveRun records summary in the run ledger
func (wh *Warehouse) SaveRun(ctx context.Context, summary *data.RunSummary) error {
	conn, err := wh.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	var errorMessage *string
	if !summary.Succeeded() {
		msg := summary.ErrorMessage()
		errorMessage = &msg
	}

	_, err = conn.Exec(ctx, `INSERT INTO etl_runs
("id", "started_at", "ended_at", "num_companies", "num_calendar_days", "num_prices",
 "num_indicators", "succeeded", "error_message")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, summary.ID.String(), summary.StartTime,
		summary.EndTime, summary.NumCompanies, summary.NumCalendarDays, summary.NumPrices,
		summary.NumIndicators, summary.Succeeded(), errorMessage)

	return err
}
