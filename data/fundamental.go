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
package data

import "math"

// Fundamental is a raw per-symbol snapshot as reported by a single data
// provider. Every numeric field is either a finite number or nil; provider
// clients never coerce non-numeric garbage into zero. A Fundamental is
// constructed once per provider response and discarded after valuation
// metrics are derived.
type Fundamental struct {
	Symbol           string
	Price            *float64
	EPS              *float64
	BookValue        *float64
	EnterpriseValue  *float64
	EBITDA           *float64
	EVToEBITDA       *float64
	DividendPerShare *float64
	DividendYield    *float64
}

// Num returns a pointer to v when v is a finite number and nil otherwise.
func Num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

// Finite reports whether v holds a finite number.
func Finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
