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
	"time"

	"github.com/alphadose/haxmap"
)

var locationMap *haxmap.Map[string, *time.Location]

func init() {
	locationMap = haxmap.New[string, *time.Location]()
}

// exchangeLocation returns the time zone named tzName, loading each zone from
// the tz database only once. An empty name means the B3 time zone.
func exchangeLocation(tzName string) (*time.Location, error) {
	if tzName == "" {
		tzName = yahooDefaultTimezone
	}

	if loc, ok := locationMap.Get(tzName); ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, err
	}

	locationMap.Set(tzName, loc)

	return loc, nil
}
