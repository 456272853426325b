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
	"math"
	"strconv"
	"time"

	"github.com/penny-vault/ibovespa/data"
	"github.com/rs/zerolog"
)

const yahooDefaultTimezone = "America/Sao_Paulo"

type yahooChartResponse struct {
	Chart struct {
		Result []*yahooChartResult `json:"result"`
		Error  *yahooError         `json:"error"`
	} `json:"chart"`
}

type yahooChartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		Currency             string `json:"currency"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// DailyBars downloads daily bars from the chart endpoint. Timestamps are
// converted to the exchange time zone to obtain the trading date and rows
// with missing prices are dropped.
func (yahoo *Yahoo) DailyBars(ctx context.Context, ticker string, window data.DateWindow) ([]*data.Bar, error) {
	logger := zerolog.Ctx(ctx).With().Str("Ticker", ticker).Logger()

	req, err := yahoo.request(ctx)
	if err != nil {
		return nil, err
	}

	result := yahooChartResponse{}
	errResult := yahooChartResponse{}
	resp, err := req.
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"period1":              strconv.FormatInt(window.Start.Unix(), 10),
			"period2":              strconv.FormatInt(window.End.Unix(), 10),
			"interval":             "1d",
			"events":               "div,splits",
			"includeAdjustedClose": "true",
		}).
		SetResult(&result).
		SetError(&errResult).
		Get("/v8/finance/chart/{ticker}")
	if err != nil {
		logger.Error().Err(err).Msg("resty returned an error when querying chart")
		return nil, err
	}

	if errResult.Chart.Error != nil {
		return nil, errResult.Chart.Error.asError(ticker)
	}

	if err := checkStatus(resp, ticker); err != nil {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("URL", resp.Request.URL).Msg("yahoo returned an invalid HTTP response")
		return nil, err
	}

	if result.Chart.Error != nil {
		return nil, result.Chart.Error.asError(ticker)
	}

	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: chart for %s", ErrNoData, ticker)
	}

	bars := result.Chart.Result[0].bars(logger)
	logger.Debug().Int("NumBars", len(bars)).Str("Window", window.String()).Msg("downloaded daily bars")

	return bars, nil
}

func (chart *yahooChartResult) bars(logger zerolog.Logger) []*data.Bar {
	if len(chart.Indicators.Quote) == 0 {
		return []*data.Bar{}
	}

	loc, err := exchangeLocation(chart.Meta.ExchangeTimezoneName)
	if err != nil {
		logger.Warn().Err(err).Str("Timezone", chart.Meta.ExchangeTimezoneName).Msg("could not load exchange timezone, using UTC")
		loc = time.UTC
	}

	quote := chart.Indicators.Quote[0]
	var adjClose []*float64
	if len(chart.Indicators.AdjClose) > 0 {
		adjClose = chart.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]*data.Bar, 0, len(chart.Timestamp))
	for idx, ts := range chart.Timestamp {
		open, high, low, closePrice := at(quote.Open, idx), at(quote.High, idx), at(quote.Low, idx), at(quote.Close, idx)
		if open == nil || high == nil || low == nil || closePrice == nil {
			logger.Debug().Int64("Timestamp", ts).Msg("skipping bar with missing prices")
			continue
		}

		bar := &data.Bar{
			Date:          data.DateOnly(time.Unix(ts, 0).In(loc)),
			Open:          *open,
			High:          *high,
			Low:           *low,
			Close:         *closePrice,
		}

		if adj := at(adjClose, idx); adj != nil {
			adjusted := *adj
			bar.AdjustedClose = &adjusted
		}

		if volume := at(quote.Volume, idx); volume != nil {
			rounded := int64(math.Round(*volume))
			bar.Volume = &rounded
		}

		if bar.AdjustedClose == nil || bar.Volume == nil {
			logger.Debug().Object("Bar", bar).Msg("bar is missing adjusted close or volume, storing NULL")
		}

		bars = append(bars, bar)
	}

	return bars
}

func at(values []*float64, idx int) *float64 {
	if idx >= len(values) {
		return nil
	}

	return values[idx]
}
