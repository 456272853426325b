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
package etl

import (
	"context"

	"github.com/penny-vault/ibovespa/data"
	"github.com/penny-vault/ibovespa/warehouse"
)

var _ Store = (*warehouse.Tx)(nil)

type warehouseRunner struct {
	wh *warehouse.Warehouse
}

// WarehouseRunner adapts a warehouse connection to the Runner interface
func WarehouseRunner(wh *warehouse.Warehouse) Runner {
	return &warehouseRunner{wh: wh}
}

func (runner *warehouseRunner) RunInTx(ctx context.Context, fn func(Store) error) error {
	return runner.wh.RunInTx(ctx, func(tx *warehouse.Tx) error {
		return fn(tx)
	})
}

func (runner *warehouseRunner) SaveRun(ctx context.Context, summary *data.RunSummary) error {
	return runner.wh.SaveRun(ctx, summary)
}
