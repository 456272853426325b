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
// Package config assembles the settings of a load run from viper
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/penny-vault/ibovespa/data"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading environment variables,
// e.g. db.password is read from IBOVESPA_DB_PASSWORD
const EnvPrefix = "IBOVESPA"

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DBConfig holds the connection parameters of the warehouse. URL takes
// precedence over the individual fields when set.
type DBConfig struct {
	URL      string `toml:"url,omitempty"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
}

type YahooConfig struct {
	BaseURL   string
	CookieURL string
	UserAgent string

	// RateLimit is the number of requests allowed per minute
	RateLimit int
}

type Config struct {
	Database DBConfig
	Yahoo    YahooConfig

	Companies     []*data.Company
	CalendarRange data.YearRange
	PriceWindow   data.DateWindow
	IndicatorGrid data.YearRange

	// PingURL is an optional healthchecks.io ping url
	PingURL string
}

// Load reads the configuration out of v. Defaults are applied to v first so
// environment variables are honored for every key.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Database: DBConfig{
			URL:      v.GetString("db.url"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Yahoo: YahooConfig{
			BaseURL:   v.GetString("yahoo.base_url"),
			CookieURL: v.GetString("yahoo.cookie_url"),
			UserAgent: v.GetString("yahoo.user_agent"),
			RateLimit: v.GetInt("yahoo.rate_limit"),
		},
		CalendarRange: data.YearRange{
			Start: v.GetInt("calendar.start_year"),
			End:   v.GetInt("calendar.end_year"),
		},
		IndicatorGrid: data.YearRange{
			Start: v.GetInt("indicators.start_year"),
			End:   v.GetInt("indicators.end_year"),
		},
		PingURL: v.GetString("healthchecks.ping_url"),
	}

	var err error
	if cfg.PriceWindow.Start, err = parseDate(v, "prices.start"); err != nil {
		return nil, err
	}

	if cfg.PriceWindow.End, err = parseDate(v, "prices.end"); err != nil {
		return nil, err
	}

	if cfg.Companies, err = loadCompanies(v); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// BindEnv makes every key of v readable from the environment
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// DatabaseURL returns the connection string of the warehouse
func (cfg *Config) DatabaseURL() string {
	if cfg.Database.URL != "" {
		return cfg.Database.URL
	}

	return BuildConnString(cfg.Database)
}

func parseDate(v *viper.Viper, key string) (time.Time, error) {
	val := v.GetString(key)
	dt, err := time.Parse(time.DateOnly, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date, got %q", ErrInvalidConfig, key, val)
	}

	return dt, nil
}

func loadCompanies(v *viper.Viper) ([]*data.Company, error) {
	if fn := v.GetString("companies_file"); fn != "" {
		return ReadCompaniesFile(fn)
	}

	if !v.IsSet("companies") {
		return DefaultCompanies(), nil
	}

	companies := []*data.Company{}
	if err := v.UnmarshalKey("companies", &companies); err != nil {
		return nil, fmt.Errorf("%w: companies: %w", ErrInvalidConfig, err)
	}

	return companies, nil
}
