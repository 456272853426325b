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
// Package healthcheck reports run progress to a healthchecks.io style ping url
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	ErrStatus = errors.New("status code is invalid")
)

const defaultTimeout = 10 * time.Second

// Check pings a single check. A Check with an empty ping url does nothing.
type Check struct {
	client  *resty.Client
	pingURL string
}

func New(pingURL string) *Check {
	return &Check{
		client:  resty.New().SetTimeout(defaultTimeout),
		pingURL: strings.TrimRight(pingURL, "/"),
	}
}

func (check *Check) Enabled() bool {
	return check.pingURL != ""
}

// Start signals that a run has begun
func (check *Check) Start(ctx context.Context) error {
	return check.ping(ctx, "/start", "")
}

// Success signals that the run finished; body is attached to the ping
func (check *Check) Success(ctx context.Context, body string) error {
	return check.ping(ctx, "", body)
}

// Fail signals that the run failed; body is attached to the ping
func (check *Check) Fail(ctx context.Context, body string) error {
	return check.ping(ctx, "/fail", body)
}

func (check *Check) ping(ctx context.Context, suffix, body string) error {
	if !check.Enabled() {
		return nil
	}

	resp, err := check.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(body).
		Post(check.pingURL + suffix)

	if err != nil {
		return err
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	return nil
}
