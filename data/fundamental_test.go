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
package data_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/ibovespa/data"
)

func float(v float64) *float64 {
	return &v
}

var _ = Describe("Fundamentals", func() {
	It("builds the quarter grid in year then quarter order", func() {
		quarters := data.Quarters(data.YearRange{Start: 2022, End: 2024})
		Expect(quarters).To(HaveLen(12))
		Expect(quarters[0]).To(Equal(data.Quarter{Year: 2022, Quarter: 1}))
		Expect(quarters[4]).To(Equal(data.Quarter{Year: 2023, Quarter: 1}))
		Expect(quarters[11]).To(Equal(data.Quarter{Year: 2024, Quarter: 4}))
	})

	Describe("statement index", func() {
		index := data.StatementIndex{
			time.Date(2022, 3, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC),
		}

		It("finds quarters with a report date", func() {
			Expect(index.HasQuarter(data.Quarter{Year: 2022, Quarter: 1})).To(BeTrue())
			Expect(index.HasQuarter(data.Quarter{Year: 2023, Quarter: 3})).To(BeTrue())
		})

		It("does not match the same quarter of another year", func() {
			Expect(index.HasQuarter(data.Quarter{Year: 2023, Quarter: 1})).To(BeFalse())
			Expect(index.HasQuarter(data.Quarter{Year: 2022, Quarter: 3})).To(BeFalse())
		})

		It("is empty for an empty index", func() {
			Expect(data.StatementIndex{}.HasQuarter(data.Quarter{Year: 2022, Quarter: 1})).To(BeFalse())
		})
	})

	Describe("indicator conversion", func() {
		It("turns fractions into percentages", func() {
			snapshot := &data.Fundamentals{
				TrailingPE:     float(10.5),
				PriceToBook:    float(1.2),
				GrossMargins:   float(0.45),
				ProfitMargins:  float(0.125),
				ReturnOnEquity: float(0.2),
				TrailingEPS:    float(3.75),
			}

			indicator := snapshot.Indicator(7, 42)
			Expect(indicator.CompanyID).To(Equal(int64(7)))
			Expect(indicator.DateID).To(Equal(int64(42)))
			Expect(*indicator.PERatio).To(Equal(10.5))
			Expect(*indicator.PBRatio).To(Equal(1.2))
			Expect(*indicator.GrossMarginPct).To(BeNumerically("~", 45.0, 1e-9))
			Expect(*indicator.ProfitMarginPct).To(BeNumerically("~", 12.5, 1e-9))
			Expect(*indicator.ReturnOnEquityPct).To(BeNumerically("~", 20.0, 1e-9))
			Expect(*indicator.EarningsPerShare).To(Equal(3.75))
		})

		It("keeps missing values as nil instead of zero", func() {
			snapshot := &data.Fundamentals{TrailingPE: float(8)}

			indicator := snapshot.Indicator(1, 1)
			Expect(indicator.PERatio).ToNot(BeNil())
			Expect(indicator.PBRatio).To(BeNil())
			Expect(indicator.GrossMarginPct).To(BeNil())
			Expect(indicator.ProfitMarginPct).To(BeNil())
			Expect(indicator.ReturnOnEquityPct).To(BeNil())
			Expect(indicator.EarningsPerShare).To(BeNil())
		})

		It("keeps a reported zero margin as zero", func() {
			snapshot := &data.Fundamentals{GrossMargins: float(0), ReturnOnEquity: float(0)}

			indicator := snapshot.Indicator(1, 1)
			Expect(indicator.GrossMarginPct).To(HaveValue(Equal(0.0)))
			Expect(indicator.ReturnOnEquityPct).To(HaveValue(Equal(0.0)))
		})

		It("does not alias the snapshot values", func() {
			snapshot := &data.Fundamentals{TrailingPE: float(8)}
			indicator := snapshot.Indicator(1, 1)
			*indicator.PERatio = 99
			Expect(*snapshot.TrailingPE).To(Equal(8.0))
		})
	})
})
