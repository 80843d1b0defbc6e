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
package scan

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/deep-value/dvscan/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUniverse struct {
	symbols []string
	err     error
}

func (f *fakeUniverse) Symbols(_ context.Context, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}

	if limit > 0 && limit < len(f.symbols) {
		return f.symbols[:limit], nil
	}

	return f.symbols, nil
}

type fakeResolver struct {
	fundamentals map[string]*data.Fundamental
}

func (f *fakeResolver) LookupTicker(_ context.Context, symbol string) (*data.Fundamental, error) {
	if fundamental, ok := f.fundamentals[symbol]; ok {
		return fundamental, nil
	}

	return nil, errors.New("no provider returned fundamentals")
}

func dividendStock(symbol string, price, dividend float64) *data.Fundamental {
	return &data.Fundamental{
		Symbol:           symbol,
		Price:            data.Num(price),
		DividendPerShare: data.Num(dividend),
	}
}

func TestScanInclusionIsStrict(t *testing.T) {
	// intrinsic value for a $4 dividend is 50.00; a price of exactly 50
	// must be excluded while a price below intrinsic qualifies
	engine := NewEngine(&fakeResolver{fundamentals: map[string]*data.Fundamental{
		"ATPAR": dividendStock("ATPAR", 50, 4),
		"CHEAP": dividendStock("CHEAP", 40, 5),
		"RICH":  dividendStock("RICH", 80, 4),
		"NODIV": {Symbol: "NODIV", Price: data.Num(10)},
	}}, &fakeUniverse{symbols: []string{"ATPAR", "CHEAP", "RICH", "NODIV"}})

	rows, summary := engine.Scan(context.Background(), 0)

	require.Len(t, rows, 1)
	assert.Equal(t, "CHEAP", rows[0].Ticker)
	assert.Equal(t, 4, summary.NumSymbols)
	assert.Equal(t, 4, summary.NumResolved)
	assert.Equal(t, 1, summary.NumQualified)
}

func TestScanRanksByUndervaluation(t *testing.T) {
	// ratios: DEEP 40/62.50 = 0.64, MID 45/50 = 0.90, EDGE 49/50 = 0.98
	engine := NewEngine(&fakeResolver{fundamentals: map[string]*data.Fundamental{
		"MID":  dividendStock("MID", 45, 4),
		"DEEP": dividendStock("DEEP", 40, 5),
		"EDGE": dividendStock("EDGE", 49, 4),
	}}, &fakeUniverse{symbols: []string{"MID", "DEEP", "EDGE"}})

	rows, _ := engine.Scan(context.Background(), 0)

	require.Len(t, rows, 3)
	assert.Equal(t, "DEEP", rows[0].Ticker)
	assert.Equal(t, "MID", rows[1].Ticker)
	assert.Equal(t, "EDGE", rows[2].Ticker)
}

func TestScanSkipsFailedSymbolsWithoutAborting(t *testing.T) {
	engine := NewEngine(&fakeResolver{fundamentals: map[string]*data.Fundamental{
		"GOOD": dividendStock("GOOD", 40, 5),
		// MISSING is not resolvable
		"ALSO": dividendStock("ALSO", 30, 4),
	}}, &fakeUniverse{symbols: []string{"GOOD", "MISSING", "ALSO"}})

	rows, summary := engine.Scan(context.Background(), 0)

	require.Len(t, rows, 2)
	assert.Equal(t, 3, summary.NumSymbols)
	assert.Equal(t, 2, summary.NumResolved)
}

func TestScanUppercasesTickers(t *testing.T) {
	engine := NewEngine(&fakeResolver{fundamentals: map[string]*data.Fundamental{
		"KO": dividendStock("KO", 40, 4),
	}}, &fakeUniverse{symbols: []string{"ko"}})

	rows, _ := engine.Scan(context.Background(), 0)

	require.Len(t, rows, 1)
	assert.Equal(t, "KO", rows[0].Ticker)
}

func TestScanEmptyUniverseOnListingFailure(t *testing.T) {
	engine := NewEngine(&fakeResolver{}, &fakeUniverse{err: errors.New("listing unavailable")})

	rows, summary := engine.Scan(context.Background(), 0)

	assert.Empty(t, rows)
	assert.Equal(t, 0, summary.NumSymbols)
	assert.Equal(t, data.RunSuccess, summary.Status)
}

func TestScanUniverseLimit(t *testing.T) {
	engine := NewEngine(&fakeResolver{fundamentals: map[string]*data.Fundamental{
		"A": dividendStock("A", 40, 5),
		"B": dividendStock("B", 40, 5),
		"C": dividendStock("C", 40, 5),
	}}, &fakeUniverse{symbols: []string{"A", "B", "C"}})

	rows, summary := engine.Scan(context.Background(), 2)

	assert.Len(t, rows, 2)
	assert.Equal(t, 2, summary.NumSymbols)
}

func TestScanStreamingEmitsSortedPrefixes(t *testing.T) {
	engine := NewEngine(&fakeResolver{fundamentals: map[string]*data.Fundamental{
		"MID":  dividendStock("MID", 45, 4),
		"DEEP": dividendStock("DEEP", 40, 5),
		"EDGE": dividendStock("EDGE", 49, 4),
		"SKIP": {Symbol: "SKIP", Price: data.Num(10)},
	}}, &fakeUniverse{symbols: []string{"MID", "SKIP", "DEEP", "EDGE"}})

	var updates [][]Row

	rows, _ := engine.ScanStreaming(context.Background(), 0, SinkFunc(func(current []Row) {
		updates = append(updates, current)
	}))

	// one update per qualifying addition, growing by exactly one row
	require.Len(t, updates, 3)
	for i, update := range updates {
		assert.Len(t, update, i+1)
		assert.True(t, sort.SliceIsSorted(update, func(a, b int) bool {
			return update[a].undervaluation() < update[b].undervaluation()
		}), "update %d is not sorted", i)
	}

	// the final update matches the batch result order
	require.Len(t, rows, 3)
	last := updates[len(updates)-1]
	for i := range rows {
		assert.Equal(t, rows[i].Ticker, last[i].Ticker)
	}

	assert.Equal(t, "DEEP", rows[0].Ticker)
}

func TestUndervaluationRanksMissingValuesLast(t *testing.T) {
	complete := Row{price: 40, intrinsic: 50, hasPrice: true, hasIntrinsic: true}
	noIntrinsic := Row{price: 40, hasPrice: true}
	noPrice := Row{intrinsic: 50, hasIntrinsic: true}

	assert.Less(t, complete.undervaluation(), noIntrinsic.undervaluation())
	assert.Less(t, complete.undervaluation(), noPrice.undervaluation())
}
