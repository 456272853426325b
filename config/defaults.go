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
	"github.com/penny-vault/ibovespa/data"
	"github.com/penny-vault/ibovespa/provider"
	"github.com/spf13/viper"
)

const (
	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBUser     = "admin"
	DefaultDBPassword = "admin"
	DefaultDBName     = "ibovespa"
	DefaultDBSSLMode  = "prefer"

	DefaultRateLimit = 60

	DefaultStartYear  = 2022
	DefaultEndYear    = 2024
	DefaultPriceStart = "2022-01-01"
	DefaultPriceEnd   = "2024-11-09"
)

// DefaultCompanies returns the Ibovespa constituents loaded when no company
// list is configured
func DefaultCompanies() []*data.Company {
	return []*data.Company{
		{Ticker: "PETR4.SA", Name: "Petrobras"},
		{Ticker: "VALE3.SA", Name: "Vale"},
		{Ticker: "ITUB4.SA", Name: "Itaú Unibanco"},
		{Ticker: "BBDC4.SA", Name: "Bradesco"},
		{Ticker: "ABEV3.SA", Name: "Ambev"},
		{Ticker: "BBAS3.SA", Name: "Banco do Brasil"},
		{Ticker: "ELET3.SA", Name: "Eletrobras"},
		{Ticker: "WEGE3.SA", Name: "Weg"},
		{Ticker: "BRKM5.SA", Name: "Braskem"},
	}
}

// SetDefaults registers the default value of every scalar key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", DefaultDBHost)
	v.SetDefault("db.port", DefaultDBPort)
	v.SetDefault("db.user", DefaultDBUser)
	v.SetDefault("db.password", DefaultDBPassword)
	v.SetDefault("db.name", DefaultDBName)
	v.SetDefault("db.sslmode", DefaultDBSSLMode)

	v.SetDefault("yahoo.base_url", provider.YahooBaseURL)
	v.SetDefault("yahoo.cookie_url", provider.YahooCookieURL)
	v.SetDefault("yahoo.user_agent", provider.YahooUserAgent)
	v.SetDefault("yahoo.rate_limit", DefaultRateLimit)

	v.SetDefault("calendar.start_year", DefaultStartYear)
	v.SetDefault("calendar.end_year", DefaultEndYear)
	v.SetDefault("prices.start", DefaultPriceStart)
	v.SetDefault("prices.end", DefaultPriceEnd)
	v.SetDefault("indicators.start_year", DefaultStartYear)
	v.SetDefault("indicators.end_year", DefaultEndYear)

	v.SetDefault("companies_file", "")
	v.SetDefault("healthchecks.ping_url", "")
}
