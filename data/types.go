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
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange = errors.New("invalid range")
)

// YearRange is an inclusive range of calendar years
type YearRange struct {
	Start int
	End   int
}

func (yr YearRange) Validate() error {
	if yr.Start <= 0 || yr.End <= 0 {
		return fmt.Errorf("%w: years must be positive (%d-%d)", ErrInvalidRange, yr.Start, yr.End)
	}

	if yr.Start > yr.End {
		return fmt.Errorf("%w: start year %d is after end year %d", ErrInvalidRange, yr.Start, yr.End)
	}

	return nil
}

// Contains reports whether every year of other is inside yr
func (yr YearRange) Contains(other YearRange) bool {
	return yr.Start <= other.Start && other.End <= yr.End
}

func (yr YearRange) String() string {
	return fmt.Sprintf("%d-%d", yr.Start, yr.End)
}

// DateWindow is a half-open date range [Start, End). The end is exclusive to
// match the convention used by upstream price feeds.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

func (dw DateWindow) Validate() error {
	if !dw.Start.Before(dw.End) {
		return fmt.Errorf("%w: window start %s is not before end %s", ErrInvalidRange,
			dw.Start.Format(time.DateOnly), dw.End.Format(time.DateOnly))
	}

	return nil
}

// Years returns the calendar years touched by the window. The exclusive end is
// not counted when it falls on January 1st.
func (dw DateWindow) Years() YearRange {
	last := dw.End.AddDate(0, 0, -1)
	return YearRange{Start: dw.Start.Year(), End: last.Year()}
}

func (dw DateWindow) String() string {
	return fmt.Sprintf("%s to %s", dw.Start.Format(time.DateOnly), dw.End.Format(time.DateOnly))
}
