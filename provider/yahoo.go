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
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	YahooBaseURL   = "https://query2.finance.yahoo.com"
	YahooCookieURL = "https://fc.yahoo.com"
	YahooUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// YahooOptions configures the Yahoo Finance client. Zero values fall back to the
// public endpoints.
type YahooOptions struct {
	BaseURL   string
	CookieURL string
	UserAgent string

	// RateLimit is the maximum number of requests per minute; <= 0 disables pacing
	RateLimit int
}

// Yahoo downloads prices and fundamentals from Yahoo Finance
type Yahoo struct {
	client    *resty.Client
	cookieURL string
	limiter   *rate.Limiter
	crumb     string
}

func NewYahoo(opts YahooOptions) *Yahoo {
	if opts.BaseURL == "" {
		opts.BaseURL = YahooBaseURL
	}

	if opts.CookieURL == "" {
		opts.CookieURL = YahooCookieURL
	}

	if opts.UserAgent == "" {
		opts.UserAgent = YahooUserAgent
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(float64(opts.RateLimit) / float64(60))
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("User-Agent", opts.UserAgent).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Yahoo{
		client:    client,
		cookieURL: opts.CookieURL,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

func (yahoo *Yahoo) Name() string {
	return "yahoo"
}

func (yahoo *Yahoo) Description() string {
	return `Yahoo Finance publishes end-of-day prices for B3 listed equities (tickers with the .SA suffix) along with
key statistics and quarterly income statements for the listed companies.`
}

// request waits for the rate limiter and returns a new request bound to ctx
func (yahoo *Yahoo) request(ctx context.Context) (*resty.Request, error) {
	if err := yahoo.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	return yahoo.client.R().SetContext(ctx), nil
}

// ensureCrumb performs the cookie handshake required by the quote summary
// endpoint. The crumb is reused for the lifetime of the client.
func (yahoo *Yahoo) ensureCrumb(ctx context.Context) error {
	if yahoo.crumb != "" {
		return nil
	}

	logger := zerolog.Ctx(ctx)

	req, err := yahoo.request(ctx)
	if err != nil {
		return err
	}

	// the cookie endpoint answers with a 404 but still sets the session cookie
	if _, err := req.Get(yahoo.cookieURL); err != nil {
		logger.Error().Err(err).Str("URL", yahoo.cookieURL).Msg("resty returned an error when requesting session cookie")
		return err
	}

	req, err = yahoo.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Get("/v1/test/getcrumb")
	if err != nil {
		logger.Error().Err(err).Msg("resty returned an error when requesting crumb")
		return err
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("Body", resp.String()).Msg("yahoo returned an invalid HTTP response when requesting crumb")
		return fmt.Errorf("%w: %w (%d)", ErrNoCrumb, ErrInvalidStatusCode, resp.StatusCode())
	}

	crumb := strings.TrimSpace(resp.String())
	if crumb == "" {
		return ErrNoCrumb
	}

	logger.Debug().Msg("obtained yahoo crumb")
	yahoo.crumb = crumb

	return nil
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (yerr *yahooError) asError(ticker string) error {
	return fmt.Errorf("%w: %s %s: %s", ErrProviderError, ticker, yerr.Code, yerr.Description)
}

func checkStatus(resp *resty.Response, ticker string) error {
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("%w (%d) for %s: %s", ErrInvalidStatusCode, resp.StatusCode(), ticker, resp.String())
	}

	return nil
}
