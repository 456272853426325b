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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RunSummary records what a single execution of the loader did
type RunSummary struct {
	ID              uuid.UUID `db:"id"`
	StartTime       time.Time `db:"started_at"`
	EndTime         time.Time `db:"ended_at"`
	NumCompanies    int       `db:"num_companies"`
	NumCalendarDays int       `db:"num_calendar_days"`
	NumPrices       int       `db:"num_prices"`
	NumIndicators   int       `db:"num_indicators"`

	// Err is the error that aborted the run, nil when the run succeeded
	Err error `db:"-"`
}

func NewRunSummary() *RunSummary {
	return &RunSummary{
		ID:        uuid.New(),
		StartTime: time.Now(),
	}
}

func (summary *RunSummary) Succeeded() bool {
	return summary.Err == nil
}

// ErrorMessage returns the text of Err or an empty string
func (summary *RunSummary) ErrorMessage() string {
	if summary.Err == nil {
		return ""
	}

	return summary.Err.Error()
}

func (summary *RunSummary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("RunID", summary.ID.String())
	e.Dur("RunTime", summary.EndTime.Sub(summary.StartTime))
	e.Int("NumCompanies", summary.NumCompanies)
	e.Int("NumCalendarDays", summary.NumCalendarDays)
	e.Int("NumPrices", summary.NumPrices)
	e.Int("NumIndicators", summary.NumIndicators)
	e.Bool("Succeeded", summary.Succeeded())
}
