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

// Company is a row of the company dimension. The ID is assigned by the
// database on first insert.
type Company struct {
	ID     int64  `db:"id_empresa" csv:"-" toml:"-"`
	Ticker string `db:"ticker" csv:"ticker" toml:"ticker" mapstructure:"ticker"`
	Name   string `db:"nome_empresa" csv:"name" toml:"name" mapstructure:"name"`
}

func (company *Company) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", company.Ticker)
	e.Str("Name", company.Name)
	if company.ID != 0 {
		e.Int64("CompanyID", company.ID)
	}
}
