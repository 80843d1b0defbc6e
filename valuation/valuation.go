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

// Package valuation derives display-ready valuation ratios from a raw
// fundamental snapshot. All functions are pure; a field renders as "N/A"
// if and only if its numeric precursor was absent, non-finite, or involved
// division by an absent or zero denominator.
package valuation

import (
	"fmt"

	"github.com/deep-value/dvscan/data"
)

// DiscountRate is the fixed discount rate of the zero-growth Gordon dividend
// model used for the intrinsic value estimate. The model is intentionally
// simplistic: intrinsic value = dividend per share / DiscountRate.
const DiscountRate = 0.08

// NotAvailable is the sentinel rendered for absent or non-computable fields.
const NotAvailable = "N/A"

// Metrics is a derived, display-ready valuation record. Every field is a
// fixed-precision decimal string or the NotAvailable sentinel. Dividend yield
// uses four decimal places, all other fields two.
type Metrics struct {
	Price             string `json:"price" csv:"price"`
	EPS               string `json:"eps" csv:"eps"`
	PE                string `json:"pe" csv:"pe"`
	BookValue         string `json:"bookValue" csv:"book_value"`
	PB                string `json:"pb" csv:"pb"`
	EVEbitda          string `json:"evEbitda" csv:"ev_ebitda"`
	DividendPerShare  string `json:"dividendPerShare" csv:"dividend_per_share"`
	DividendYield     string `json:"dividendYield" csv:"dividend_yield"`
	IntrinsicDividend string `json:"intrinsicDividend" csv:"intrinsic_dividend"`
}

// Compute turns a fundamental snapshot into a Metrics record.
func Compute(fundamental *data.Fundamental) Metrics {
	evEbitda := fundamental.EVToEBITDA
	if !data.Finite(evEbitda) {
		evEbitda = Ratio(fundamental.EnterpriseValue, fundamental.EBITDA)
	}

	dividendYield := fundamental.DividendYield
	if !data.Finite(dividendYield) {
		dividendYield = Ratio(fundamental.DividendPerShare, fundamental.Price)
	}

	return Metrics{
		Price:             Fixed(fundamental.Price, 2),
		EPS:               Fixed(fundamental.EPS, 2),
		PE:                Fixed(Ratio(fundamental.Price, fundamental.EPS), 2),
		BookValue:         Fixed(fundamental.BookValue, 2),
		PB:                Fixed(Ratio(fundamental.Price, fundamental.BookValue), 2),
		EVEbitda:          Fixed(evEbitda, 2),
		DividendPerShare:  Fixed(fundamental.DividendPerShare, 2),
		DividendYield:     Fixed(dividendYield, 4),
		IntrinsicDividend: Fixed(IntrinsicDividend(fundamental.DividendPerShare), 2),
	}
}

// IntrinsicDividend estimates intrinsic value from the dividend per share
// using the zero-growth dividend discount model. nil when the dividend is
// absent. Non-dividend payers are deliberately excluded by this model.
func IntrinsicDividend(dividendPerShare *float64) *float64 {
	if !data.Finite(dividendPerShare) {
		return nil
	}

	return data.Num(*dividendPerShare / DiscountRate)
}

// Ratio divides numerator by denominator. nil when either operand is absent
// or non-finite, or when the denominator is zero; a zero or absent
// denominator never divides.
func Ratio(numerator, denominator *float64) *float64 {
	if !data.Finite(numerator) || !data.Finite(denominator) || *denominator == 0 {
		return nil
	}

	return data.Num(*numerator / *denominator)
}

// Fixed renders v with the given number of decimal places, or NotAvailable
// when v is absent or non-finite.
func Fixed(v *float64, places int) string {
	if !data.Finite(v) {
		return NotAvailable
	}

	return fmt.Sprintf("%.*f", places, *v)
}
