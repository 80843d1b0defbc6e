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

// Package scan drives the resolver and valuation calculator across the
// symbol universe and maintains a ranked set of undervalued securities.
package scan

import (
	"context"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/deep-value/dvscan/data"
	"github.com/deep-value/dvscan/valuation"
	"github.com/rs/zerolog"
)

// Row is one qualifying security in the ranked result set. The numeric price
// and intrinsic value are used only for ranking and are never serialized
// across the rendering boundary.
type Row struct {
	Ticker string `json:"ticker" csv:"ticker"`
	valuation.Metrics

	price        float64
	intrinsic    float64
	hasPrice     bool
	hasIntrinsic bool
}

// undervaluation is the ranking key: market price over model intrinsic value,
// ascending. Rows lacking either value rank strictly after all rows that have
// both.
func (row *Row) undervaluation() float64 {
	if !row.hasPrice || !row.hasIntrinsic || row.intrinsic == 0 {
		return math.Inf(1)
	}

	return row.price / row.intrinsic
}

// Lookuper resolves a fundamental snapshot for one ticker.
type Lookuper interface {
	LookupTicker(ctx context.Context, symbol string) (*data.Fundamental, error)
}

// UniverseSource supplies the candidate tickers for a scan pass.
type UniverseSource interface {
	Symbols(ctx context.Context, limit int) ([]string, error)
}

// Sink receives the full current ranked result set each time a qualifying
// row is added during a streaming scan. Calls are synchronous and carry a
// copy of the rows, always sorted.
type Sink interface {
	Update(rows []Row)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(rows []Row)

func (f SinkFunc) Update(rows []Row) {
	f(rows)
}

// Engine scans the universe sequentially. One symbol's full resolve-then-
// compute sequence finishes before the next begins; providers enforce request
// rate limits and concurrent fan-out would trigger throttling storms.
type Engine struct {
	resolver Lookuper
	universe UniverseSource
}

func NewEngine(resolver Lookuper, universe UniverseSource) *Engine {
	return &Engine{resolver: resolver, universe: universe}
}

// Scan performs a batch pass over the universe and returns the qualifying
// rows sorted ascending by undervaluation ratio, along with run statistics.
func (e *Engine) Scan(ctx context.Context, limit int) ([]Row, data.RunSummary) {
	return e.run(ctx, limit, nil)
}

// ScanStreaming performs the identical per-symbol logic as Scan but re-sorts
// and pushes the full current ranked set to sink every time a new qualifying
// row is added, so the caller sees a monotonically-improving ordered view
// without waiting for the full pass.
func (e *Engine) ScanStreaming(ctx context.Context, limit int, sink Sink) ([]Row, data.RunSummary) {
	return e.run(ctx, limit, sink)
}

func (e *Engine) run(ctx context.Context, limit int, sink Sink) ([]Row, data.RunSummary) {
	logger := zerolog.Ctx(ctx)

	summary := data.NewRunSummary()

	symbols, err := e.universe.Symbols(ctx, limit)
	if err != nil {
		// listing unavailability is non-fatal; the scan simply covers nothing
		logger.Error().Err(err).Msg("could not retrieve universe listing")

		symbols = nil
	}

	summary.NumSymbols = len(symbols)

	rows := make([]Row, 0, 64)

	for _, symbol := range symbols {
		ticker := strings.ToUpper(symbol)

		// a failure while processing one symbol never aborts the scan
		fundamental, err := e.resolver.LookupTicker(ctx, ticker)
		if err != nil {
			logger.Debug().Err(err).Str("Ticker", ticker).Msg("skipping symbol")
			continue
		}

		summary.NumResolved++

		row := Row{
			Ticker:  ticker,
			Metrics: valuation.Compute(fundamental),
		}

		if data.Finite(fundamental.Price) {
			row.price = *fundamental.Price
			row.hasPrice = true
		}

		if intrinsic := valuation.IntrinsicDividend(fundamental.DividendPerShare); intrinsic != nil {
			row.intrinsic = *intrinsic
			row.hasIntrinsic = true
		}

		// strict inequality: a price equal to intrinsic value does not qualify
		if !row.hasPrice || !row.hasIntrinsic || row.price >= row.intrinsic {
			continue
		}

		summary.NumQualified++
		rows = append(rows, row)

		if sink != nil {
			sortRows(rows)
			sink.Update(slices.Clone(rows))
		}
	}

	sortRows(rows)

	summary.EndTime = time.Now()
	summary.Status = data.RunSuccess

	return rows, summary
}

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].undervaluation() < rows[j].undervaluation()
	})
}
