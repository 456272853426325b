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
	"os"

	"github.com/pelletier/go-toml/v2"
)

type configFile struct {
	DB DBConfig `toml:"db"`
}

// WriteFile saves the database section of the configuration to fn. The file
// holds the password so it is only readable by the owner.
func WriteFile(fn string, db DBConfig) error {
	contents, err := toml.Marshal(configFile{DB: db})
	if err != nil {
		return err
	}

	return os.WriteFile(fn, contents, 0o600)
}
