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
package etl_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ibovespa/data"
	"github.com/penny-vault/ibovespa/etl"
	"github.com/penny-vault/ibovespa/warehouse"
)

var _ = Describe("Loaders", func() {
	var (
		ctx    context.Context
		wh     *memoryWarehouse
		source *fakeSource
	)

	BeforeEach(func() {
		ctx = context.Background()
		wh = newMemoryWarehouse()
		source = newFakeSource()
	})

	Describe("RegisterCompany", func() {
		It("keeps the first name when a ticker is registered twice", func() {
			wh.store(func(store etl.Store) error {
				return etl.RegisterCompany(ctx, store, &data.Company{Ticker: "PETR4.SA", Name: "Petrobras"})
			})
			wh.store(func(store etl.Store) error {
				return etl.RegisterCompany(ctx, store, &data.Company{Ticker: "PETR4.SA", Name: "Petróleo Brasileiro"})
			})

			Expect(wh.state.companies).To(HaveLen(1))
			Expect(wh.company("PETR4.SA").Name).To(Equal("Petrobras"))
		})

		It("assigns distinct ids to distinct tickers", func() {
			wh.store(func(store etl.Store) error {
				Expect(etl.RegisterCompany(ctx, store, &data.Company{Ticker: "PETR4.SA", Name: "Petrobras"})).To(Succeed())
				return etl.RegisterCompany(ctx, store, &data.Company{Ticker: "VALE3.SA", Name: "Vale"})
			})

			Expect(wh.company("PETR4.SA").ID).ToNot(Equal(wh.company("VALE3.SA").ID))
		})
	})

	Describe("PopulateCalendar", func() {
		It("inserts every day of the range once", func() {
			var numDays int
			wh.store(func(store etl.Store) error {
				var err error
				numDays, err = etl.PopulateCalendar(ctx, store, defaultYears)
				return err
			})

			Expect(numDays).To(Equal(1096))
			Expect(wh.state.days).To(HaveLen(1096))
		})

		It("does not duplicate dates on a second run", func() {
			for ii := 0; ii < 2; ii++ {
				wh.store(func(store etl.Store) error {
					_, err := etl.PopulateCalendar(ctx, store, defaultYears)
					return err
				})
			}

			Expect(wh.state.days).To(HaveLen(1096))
		})

		It("only adds the days of a wider range that are missing", func() {
			wh.store(func(store etl.Store) error {
				_, err := etl.PopulateCalendar(ctx, store, data.YearRange{Start: 2023, End: 2023})
				return err
			})
			wh.store(func(store etl.Store) error {
				_, err := etl.PopulateCalendar(ctx, store, defaultYears)
				return err
			})

			Expect(wh.state.days).To(HaveLen(1096))
		})
	})

	Context("with a registered company and a populated calendar", func() {
		BeforeEach(func() {
			wh.store(func(store etl.Store) error {
				if err := etl.RegisterCompany(ctx, store, &data.Company{Ticker: "PETR4.SA", Name: "Petrobras"}); err != nil {
					return err
				}
				_, err := etl.PopulateCalendar(ctx, store, defaultYears)
				return err
			})
			wh.insertCalls = 0
		})

		Describe("LoadPrices", func() {
			It("stores one row per bar with the matching keys and values", func() {
				source.bars["PETR4.SA"] = tradingBars(date(2023, time.March, 1), 5)

				var numPrices int
				wh.store(func(store etl.Store) error {
					var err error
					numPrices, err = etl.LoadPrices(ctx, store, source, "PETR4.SA", defaultWindow)
					return err
				})

				Expect(numPrices).To(Equal(5))
				prices := wh.pricesFor("PETR4.SA")
				Expect(prices).To(HaveLen(5))

				for ii, price := range prices {
					bar := source.bars["PETR4.SA"][ii]
					Expect(price.CompanyID).To(Equal(wh.company("PETR4.SA").ID))
					Expect(wh.day(price.DateID).Date).To(Equal(bar.Date))
					Expect(price.Open).To(Equal(bar.Open))
					Expect(price.High).To(Equal(bar.High))
					Expect(price.Low).To(Equal(bar.Low))
					Expect(price.Close).To(Equal(bar.Close))
					Expect(price.AdjustedClose).To(Equal(bar.AdjustedClose))
					Expect(price.Volume).To(Equal(bar.Volume))
				}
			})

			It("stores NULL when the volume or adjusted close is missing", func() {
				bars := tradingBars(date(2023, time.March, 1), 2)
				bars[1].AdjustedClose = nil
				bars[1].Volume = nil
				source.bars["PETR4.SA"] = bars

				wh.store(func(store etl.Store) error {
					_, err := etl.LoadPrices(ctx, store, source, "PETR4.SA", defaultWindow)
					return err
				})

				prices := wh.pricesFor("PETR4.SA")
				Expect(prices).To(HaveLen(2))
				Expect(prices[0].Volume).To(HaveValue(Equal(int64(1000))))
				Expect(prices[1].AdjustedClose).To(BeNil())
				Expect(prices[1].Volume).To(BeNil())
				Expect(prices[1].Close).To(Equal(bars[1].Close))
			})

			It("stores duplicate rows when the same window is loaded twice", func() {
				source.bars["PETR4.SA"] = tradingBars(date(2023, time.March, 1), 3)

				for ii := 0; ii < 2; ii++ {
					wh.store(func(store etl.Store) error {
						_, err := etl.LoadPrices(ctx, store, source, "PETR4.SA", defaultWindow)
						return err
					})
				}

				Expect(wh.pricesFor("PETR4.SA")).To(HaveLen(6))
			})

			It("fails before fetching when the ticker is not registered", func() {
				err := wh.RunInTx(ctx, func(store etl.Store) error {
					_, err := etl.LoadPrices(ctx, store, source, "XXXX3.SA", defaultWindow)
					return err
				})

				Expect(err).To(MatchError(warehouse.ErrCompanyNotFound))
				Expect(source.calls).To(BeEmpty())
				Expect(wh.insertCalls).To(Equal(0))
				Expect(wh.state.prices).To(BeEmpty())
			})

			It("fails when a bar falls outside the calendar", func() {
				source.bars["PETR4.SA"] = append(tradingBars(date(2024, time.December, 30), 1), tradingBars(date(2025, time.January, 2), 1)...)

				err := wh.RunInTx(ctx, func(store etl.Store) error {
					_, err := etl.LoadPrices(ctx, store, source, "PETR4.SA", defaultWindow)
					return err
				})

				Expect(err).To(MatchError(warehouse.ErrDateNotFound))
				Expect(wh.rollbacks).To(Equal(1))
				Expect(wh.state.prices).To(BeEmpty())
			})

			It("wraps provider errors", func() {
				providerErr := errors.New("connection reset")
				source.errs["prices:PETR4.SA"] = providerErr

				err := wh.RunInTx(ctx, func(store etl.Store) error {
					_, err := etl.LoadPrices(ctx, store, source, "PETR4.SA", defaultWindow)
					return err
				})

				Expect(err).To(MatchError(providerErr))
				Expect(err.Error()).To(ContainSubstring("PETR4.SA"))
			})
		})

		Describe("LoadIndicators", func() {
			BeforeEach(func() {
				source.fundamentals["PETR4.SA"] = &fundamentalsResponse{
					snapshot: &data.Fundamentals{
						TrailingPE:   float(10.5),
						GrossMargins: float(0.45),
					},
					statements: data.StatementIndex{
						date(2022, time.March, 31),
						date(2023, time.September, 30),
					},
				}
			})

			load := func() int {
				var numIndicators int
				wh.store(func(store etl.Store) error {
					var err error
					numIndicators, err = etl.LoadIndicators(ctx, store, source, "PETR4.SA", defaultYears)
					return err
				})
				return numIndicators
			}

			It("stores the snapshot for each quarter with a statement", func() {
				Expect(load()).To(Equal(2))

				indicators := wh.indicatorsFor("PETR4.SA")
				Expect(indicators).To(HaveLen(2))

				dates := []time.Time{}
				for _, indicator := range indicators {
					Expect(indicator.PERatio).To(HaveValue(Equal(10.5)))
					Expect(indicator.GrossMarginPct).To(HaveValue(BeNumerically("~", 45.0, 1e-9)))
					dates = append(dates, wh.day(indicator.DateID).Date)
				}

				Expect(dates).To(ConsistOf(date(2022, time.January, 1), date(2023, time.July, 1)))
			})

			It("keeps missing values empty", func() {
				load()

				for _, indicator := range wh.indicatorsFor("PETR4.SA") {
					Expect(indicator.PBRatio).To(BeNil())
					Expect(indicator.ProfitMarginPct).To(BeNil())
					Expect(indicator.ReturnOnEquityPct).To(BeNil())
					Expect(indicator.EarningsPerShare).To(BeNil())
				}
			})

			It("does not duplicate rows on a second run", func() {
				Expect(load()).To(Equal(2))
				Expect(load()).To(Equal(0))
				Expect(wh.indicatorsFor("PETR4.SA")).To(HaveLen(2))
			})

			It("skips quarters that are not in the calendar", func() {
				source.fundamentals["PETR4.SA"].statements = append(source.fundamentals["PETR4.SA"].statements, date(2025, time.March, 31))

				var numIndicators int
				wh.store(func(store etl.Store) error {
					var err error
					numIndicators, err = etl.LoadIndicators(ctx, store, source, "PETR4.SA", data.YearRange{Start: 2022, End: 2025})
					return err
				})

				Expect(numIndicators).To(Equal(2))
			})

			It("stores nothing when there are no statements", func() {
				source.fundamentals["PETR4.SA"].statements = data.StatementIndex{}
				Expect(load()).To(Equal(0))
				Expect(wh.state.indicators).To(BeEmpty())
			})

			It("fails before fetching when the ticker is not registered", func() {
				err := wh.RunInTx(ctx, func(store etl.Store) error {
					_, err := etl.LoadIndicators(ctx, store, source, "XXXX3.SA", defaultYears)
					return err
				})

				Expect(err).To(MatchError(warehouse.ErrCompanyNotFound))
				Expect(source.calls).To(BeEmpty())
				Expect(wh.insertCalls).To(Equal(0))
			})
		})
	})
})
