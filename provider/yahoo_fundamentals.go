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
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/penny-vault/ibovespa/data"
	"github.com/rs/zerolog"
)

var yahooSummaryModules = []string{
	"financialData",
	"defaultKeyStatistics",
	"summaryDetail",
	"incomeStatementHistoryQuarterly",
}

// yahooValue is the {"raw": 1.23, "fmt": "1.23"} object yahoo wraps numbers
// in. Raw is nil when the object is empty or the value is not a finite number
// (yahoo sends "Infinity" for some ratios).
type yahooValue struct {
	Raw *float64
}

func (val *yahooValue) UnmarshalJSON(b []byte) error {
	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		val.Raw = &num
		return nil
	}

	var obj struct {
		Raw interface{} `json:"raw"`
	}

	if err := json.Unmarshal(b, &obj); err != nil {
		val.Raw = nil
		return nil
	}

	if num, ok := obj.Raw.(float64); ok {
		val.Raw = &num
	}

	return nil
}

func (val *yahooValue) float() *float64 {
	if val == nil {
		return nil
	}

	return val.Raw
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []*yahooQuoteSummary `json:"result"`
		Error  *yahooError          `json:"error"`
	} `json:"quoteSummary"`
}

type yahooQuoteSummary struct {
	SummaryDetail struct {
		TrailingPE *yahooValue `json:"trailingPE"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		PriceToBook *yahooValue `json:"priceToBook"`
		TrailingEps *yahooValue `json:"trailingEps"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		GrossMargins   *yahooValue `json:"grossMargins"`
		ProfitMargins  *yahooValue `json:"profitMargins"`
		ReturnOnEquity *yahooValue `json:"returnOnEquity"`
	} `json:"financialData"`
	IncomeStatementHistoryQuarterly struct {
		IncomeStatementHistory []struct {
			EndDate *yahooValue `json:"endDate"`
		} `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistoryQuarterly"`
}

// Fundamentals downloads the key statistics snapshot and the quarterly income
// statement dates of ticker from the quote summary endpoint
func (yahoo *Yahoo) Fundamentals(ctx context.Context, ticker string) (*data.Fundamentals, data.StatementIndex, error) {
	logger := zerolog.Ctx(ctx).With().Str("Ticker", ticker).Logger()

	if err := yahoo.ensureCrumb(ctx); err != nil {
		return nil, nil, err
	}

	req, err := yahoo.request(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := yahooQuoteSummaryResponse{}
	errResult := yahooQuoteSummaryResponse{}
	resp, err := req.
		SetPathParam("ticker", ticker).
		SetQueryParam("modules", strings.Join(yahooSummaryModules, ",")).
		SetQueryParam("crumb", yahoo.crumb).
		SetResult(&result).
		SetError(&errResult).
		Get("/v10/finance/quoteSummary/{ticker}")
	if err != nil {
		logger.Error().Err(err).Msg("resty returned an error when querying quote summary")
		return nil, nil, err
	}

	if errResult.QuoteSummary.Error != nil {
		return nil, nil, errResult.QuoteSummary.Error.asError(ticker)
	}

	if err := checkStatus(resp, ticker); err != nil {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("URL", resp.Request.URL).Msg("yahoo returned an invalid HTTP response")
		return nil, nil, err
	}

	if result.QuoteSummary.Error != nil {
		return nil, nil, result.QuoteSummary.Error.asError(ticker)
	}

	if len(result.QuoteSummary.Result) == 0 {
		return nil, nil, fmt.Errorf("%w: quote summary for %s", ErrNoData, ticker)
	}

	summary := result.QuoteSummary.Result[0]
	fundamentals := &data.Fundamentals{
		TrailingPE:     summary.SummaryDetail.TrailingPE.float(),
		PriceToBook:    summary.DefaultKeyStatistics.PriceToBook.float(),
		GrossMargins:   summary.FinancialData.GrossMargins.float(),
		ProfitMargins:  summary.FinancialData.ProfitMargins.float(),
		ReturnOnEquity: summary.FinancialData.ReturnOnEquity.float(),
		TrailingEPS:    summary.DefaultKeyStatistics.TrailingEps.float(),
	}

	index := make(data.StatementIndex, 0, len(summary.IncomeStatementHistoryQuarterly.IncomeStatementHistory))
	for _, statement := range summary.IncomeStatementHistoryQuarterly.IncomeStatementHistory {
		endDate := statement.EndDate.float()
		if endDate == nil {
			continue
		}

		index = append(index, data.DateOnly(time.Unix(int64(*endDate), 0).UTC()))
	}

	sort.Slice(index, func(i, j int) bool { return index[i].Before(index[j]) })

	logger.Debug().Object("Fundamentals", fundamentals).Int("NumStatements", len(index)).Msg("downloaded fundamentals")

	return fundamentals, index, nil
}
