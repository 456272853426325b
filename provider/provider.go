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
package provider

import (
	"context"
	"errors"

	"github.com/penny-vault/ibovespa/data"
)

var (
	ErrInvalidStatusCode = errors.New("invalid status code received")
	ErrProviderError     = errors.New("provider returned an error")
	ErrNoData            = errors.New("provider returned no data")
	ErrNoCrumb           = errors.New("could not obtain session crumb")
)

// Provider is a source of daily prices and company fundamentals
type Provider interface {
	Name() string
	Description() string

	// DailyBars returns the daily bars of ticker inside window in ascending
	// date order
	DailyBars(ctx context.Context, ticker string, window data.DateWindow) ([]*data.Bar, error)

	// Fundamentals returns the current fundamentals snapshot of ticker along
	// with the report dates of its quarterly financial statements
	Fundamentals(ctx context.Context, ticker string) (*data.Fundamentals, data.StatementIndex, error)
}
