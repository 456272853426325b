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
package config

import (
	"fmt"
)

// Validate checks that the ranges are well formed and that the calendar covers
// every date the loaders will look up
func (cfg *Config) Validate() error {
	if err := cfg.CalendarRange.Validate(); err != nil {
		return fmt.Errorf("%w: calendar: %w", ErrInvalidConfig, err)
	}

	if err := cfg.IndicatorGrid.Validate(); err != nil {
		return fmt.Errorf("%w: indicators: %w", ErrInvalidConfig, err)
	}

	if err := cfg.PriceWindow.Validate(); err != nil {
		return fmt.Errorf("%w: prices: %w", ErrInvalidConfig, err)
	}

	if !cfg.CalendarRange.Contains(cfg.PriceWindow.Years()) {
		return fmt.Errorf("%w: price window %s is outside calendar %s", ErrInvalidConfig, cfg.PriceWindow, cfg.CalendarRange)
	}

	if !cfg.CalendarRange.Contains(cfg.IndicatorGrid) {
		return fmt.Errorf("%w: indicator years %s are outside calendar %s", ErrInvalidConfig, cfg.IndicatorGrid, cfg.CalendarRange)
	}

	if len(cfg.Companies) == 0 {
		return fmt.Errorf("%w: company list is empty", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(cfg.Companies))
	for idx, company := range cfg.Companies {
		if company.Ticker == "" {
			return fmt.Errorf("%w: company %d has no ticker", ErrInvalidConfig, idx)
		}

		if seen[company.Ticker] {
			return fmt.Errorf("%w: ticker %s is listed twice", ErrInvalidConfig, company.Ticker)
		}

		seen[company.Ticker] = true
	}

	if cfg.Database.URL == "" && cfg.Database.Host == "" {
		return fmt.Errorf("%w: db.host or db.url is required", ErrInvalidConfig)
	}

	return nil
}
