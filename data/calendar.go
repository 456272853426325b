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

// CalendarDay is a row of the calendar dimension
type CalendarDay struct {
	ID      int64     `db:"id_data"`
	Date    time.Time `db:"data"`
	Year    int       `db:"ano"`
	Month   int       `db:"mes"`
	Quarter int       `db:"trimestre"`
}

// QuarterOf returns the calendar quarter (1-4) a month belongs to
func QuarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// DateOnly truncates t to midnight UTC of its calendar date in t's location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewCalendarDay derives the year, month and quarter of date
func NewCalendarDay(date time.Time) *CalendarDay {
	date = DateOnly(date)
	return &CalendarDay{
		Date:    date,
		Year:    date.Year(),
		Month:   int(date.Month()),
		Quarter: QuarterOf(date.Month()),
	}
}

// CalendarDays returns one day for every date from January 1st of years.Start
// through December 31st of years.End, in ascending order
func CalendarDays(years YearRange) []*CalendarDay {
	start := time.Date(years.Start, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(years.End+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	days := make([]*CalendarDay, 0, int(end.Sub(start).Hours()/24))
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		days = append(days, NewCalendarDay(day))
	}

	return days
}

func (day *CalendarDay) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Date", day.Date.Format(time.DateOnly))
	e.Int("Year", day.Year)
	e.Int("Month", day.Month)
	e.Int("Quarter", day.Quarter)
}
