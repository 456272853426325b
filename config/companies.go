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
	"os"

	"github.com/gocarina/gocsv"
	"github.com/penny-vault/ibovespa/data"
)

// ReadCompaniesFile parses a CSV file with a `ticker,name` header
func ReadCompaniesFile(fn string) ([]*data.Company, error) {
	fh, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("%w: companies_file: %w", ErrInvalidConfig, err)
	}

	defer fh.Close()

	companies := []*data.Company{}
	if err := gocsv.UnmarshalFile(fh, &companies); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, fn, err)
	}

	return companies, nil
}
