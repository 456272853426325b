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
package warehouse

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrCompanyNotFound = errors.New("company not registered")
	ErrDateNotFound    = errors.New("date not in calendar")
)

// Warehouse is the star-schema database the loader writes to
type Warehouse struct {
	DBUrl string

	Pool *pgxpool.Pool
}

// New connects to the warehouse at dbURL and verifies the connection
func New(ctx context.Context, dbURL string) (*Warehouse, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Warehouse{
		DBUrl: dbURL,
		Pool:  pool,
	}, nil
}

// Close the database pool
func (wh *Warehouse) Close() {
	wh.Pool.Close()
}

// RunInTx executes fn inside a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (wh *Warehouse) RunInTx(ctx context.Context, fn func(*Tx) error) error {
	conn, err := wh.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			if !errors.Is(err, pgx.ErrTxClosed) {
				log.Error().Err(err).Msg("error rollingback tx")
			}
		}
	}()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
