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
package provider_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ibovespa/data"
	"github.com/penny-vault/ibovespa/provider"
)

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"PETR4.SA","currency":"BRL","exchangeTimezoneName":"America/Sao_Paulo"},
"timestamp":[1641214800,1641301200,1641387600],
"indicators":{"quote":[{"open":[28.54,29.16,null],"high":[29.22,29.53,null],"low":[28.53,28.97,null],
"close":[29.09,29.2,null],"volume":[52704700,null,null]}],
"adjclose":[{"adjclose":[18.01,null,null]}]}}],"error":null}}`

const summaryBody = `{"quoteSummary":{"result":[{
"summaryDetail":{"trailingPE":{"raw":10.5,"fmt":"10.50"}},
"defaultKeyStatistics":{"priceToBook":{},"trailingEps":{"raw":3.2,"fmt":"3.20"}},
"financialData":{"grossMargins":{"raw":0.45,"fmt":"45.00%"},"profitMargins":{"raw":0.2,"fmt":"20.00%"},"returnOnEquity":{"raw":"Infinity","fmt":"∞"}},
"incomeStatementHistoryQuarterly":{"incomeStatementHistory":[
{"endDate":{"raw":1695945600,"fmt":"2023-09-29"}},
{"endDate":{"raw":1648684800,"fmt":"2022-03-31"}},
{"endDate":{}}]}}],"error":null}}`

const notFoundBody = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

var _ = Describe("Yahoo", func() {
	var (
		server       *httptest.Server
		yahoo        *provider.Yahoo
		ctx          context.Context
		crumbCalls   int32
		lastQuery    map[string]string
		summaryCalls int32
	)

	BeforeEach(func() {
		ctx = context.Background()
		crumbCalls = 0
		summaryCalls = 0
		lastQuery = map[string]string{}

		mux := http.NewServeMux()
		mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&crumbCalls, 1)
			if _, err := r.Cookie("A3"); err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "text/plain")
			fmt.Fprint(w, "crumb123")
		})
		mux.HandleFunc("/v8/finance/chart/PETR4.SA", func(w http.ResponseWriter, r *http.Request) {
			for k := range r.URL.Query() {
				lastQuery[k] = r.URL.Query().Get(k)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, chartBody)
		})
		mux.HandleFunc("/v8/finance/chart/XXXX3.SA", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, notFoundBody)
		})
		mux.HandleFunc("/v8/finance/chart/FAIL3.SA", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "boom")
		})
		mux.HandleFunc("/v10/finance/quoteSummary/PETR4.SA", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&summaryCalls, 1)
			for k := range r.URL.Query() {
				lastQuery[k] = r.URL.Query().Get(k)
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, summaryBody)
		})

		server = httptest.NewServer(mux)
		yahoo = provider.NewYahoo(provider.YahooOptions{
			BaseURL:   server.URL,
			CookieURL: server.URL + "/cookie",
		})
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("daily bars", func() {
		window := data.DateWindow{
			Start: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 11, 9, 0, 0, 0, 0, time.UTC),
		}

		It("decodes bars in exchange local dates and drops empty rows", func() {
			bars, err := yahoo.DailyBars(ctx, "PETR4.SA", window)
			Expect(err).ToNot(HaveOccurred())
			Expect(bars).To(HaveLen(2))

			Expect(bars[0].Date).To(Equal(time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)))
			Expect(bars[0].Open).To(Equal(28.54))
			Expect(bars[0].High).To(Equal(29.22))
			Expect(bars[0].Low).To(Equal(28.53))
			Expect(bars[0].Close).To(Equal(29.09))
			Expect(bars[0].AdjustedClose).To(HaveValue(Equal(18.01)))
			Expect(bars[0].Volume).To(HaveValue(Equal(int64(52704700))))

			Expect(bars[1].Date).To(Equal(time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC)))
		})

		It("keeps a missing volume and adjusted close empty", func() {
			bars, err := yahoo.DailyBars(ctx, "PETR4.SA", window)
			Expect(err).ToNot(HaveOccurred())
			Expect(bars).To(HaveLen(2))

			Expect(bars[1].Close).To(Equal(29.2))
			Expect(bars[1].AdjustedClose).To(BeNil())
			Expect(bars[1].Volume).To(BeNil())
		})

		It("sends the window as unix timestamps", func() {
			_, err := yahoo.DailyBars(ctx, "PETR4.SA", window)
			Expect(err).ToNot(HaveOccurred())
			Expect(lastQuery).To(HaveKeyWithValue("period1", fmt.Sprint(window.Start.Unix())))
			Expect(lastQuery).To(HaveKeyWithValue("period2", fmt.Sprint(window.End.Unix())))
			Expect(lastQuery).To(HaveKeyWithValue("interval", "1d"))
		})

		It("reports the provider error for unknown tickers", func() {
			_, err := yahoo.DailyBars(ctx, "XXXX3.SA", window)
			Expect(err).To(MatchError(provider.ErrProviderError))
			Expect(err.Error()).To(ContainSubstring("delisted"))
		})

		It("rejects non JSON failures with the status code", func() {
			_, err := yahoo.DailyBars(ctx, "FAIL3.SA", window)
			Expect(err).To(MatchError(provider.ErrInvalidStatusCode))
			Expect(err.Error()).To(ContainSubstring("500"))
		})
	})

	Describe("fundamentals", func() {
		It("decodes the snapshot leaving missing values nil", func() {
			fundamentals, _, err := yahoo.Fundamentals(ctx, "PETR4.SA")
			Expect(err).ToNot(HaveOccurred())

			Expect(fundamentals.TrailingPE).To(HaveValue(Equal(10.5)))
			Expect(fundamentals.PriceToBook).To(BeNil())
			Expect(fundamentals.GrossMargins).To(HaveValue(Equal(0.45)))
			Expect(fundamentals.ProfitMargins).To(HaveValue(Equal(0.2)))
			Expect(fundamentals.ReturnOnEquity).To(BeNil())
			Expect(fundamentals.TrailingEPS).To(HaveValue(Equal(3.2)))
		})

		It("returns the statement dates sorted ascending", func() {
			_, index, err := yahoo.Fundamentals(ctx, "PETR4.SA")
			Expect(err).ToNot(HaveOccurred())
			Expect(index).To(Equal(data.StatementIndex{
				time.Date(2022, 3, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 9, 29, 0, 0, 0, 0, time.UTC),
			}))
		})

		It("obtains the crumb once and sends it with every request", func() {
			_, _, err := yahoo.Fundamentals(ctx, "PETR4.SA")
			Expect(err).ToNot(HaveOccurred())
			_, _, err = yahoo.Fundamentals(ctx, "PETR4.SA")
			Expect(err).ToNot(HaveOccurred())

			Expect(atomic.LoadInt32(&crumbCalls)).To(Equal(int32(1)))
			Expect(atomic.LoadInt32(&summaryCalls)).To(Equal(int32(2)))
			Expect(lastQuery).To(HaveKeyWithValue("crumb", "crumb123"))
			Expect(lastQuery["modules"]).To(ContainSubstring("incomeStatementHistoryQuarterly"))
		})

		It("fails when the crumb endpoint rejects the session", func() {
			yahoo = provider.NewYahoo(provider.YahooOptions{
				BaseURL:   server.URL,
				CookieURL: server.URL + "/missing",
			})

			_, _, err := yahoo.Fundamentals(ctx, "PETR4.SA")
			Expect(err).To(MatchError(provider.ErrNoCrumb))
		})
	})
})
