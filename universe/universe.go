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

// Package universe retrieves the list of candidate ticker symbols from the
// Nasdaq market-wide stock screener feed.
package universe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alphadose/haxmap"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const listingURL = "https://api.nasdaq.com/api/screener/stocks"

var ErrListing = errors.New("universe listing unavailable")

// Client fetches the symbol universe. The caller treats a failed listing as
// an empty universe; universe unavailability is never fatal to a scan.
type Client struct {
	// ListingURL may be overridden in tests.
	ListingURL string
}

func NewClient() *Client {
	return &Client{ListingURL: listingURL}
}

// Symbols returns the candidate tickers in listing order. Each symbol is
// trimmed, upper-cased, and appears at most once. When limit is positive the
// list is truncated to the first limit symbols; zero or negative returns the
// entire listing.
func (c *Client) Symbols(ctx context.Context, limit int) ([]string, error) {
	client := resty.New()

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("User-Agent", "dvscan (+https://github.com/deep-value/dvscan)").
		SetQueryParam("tableonly", "true").
		SetQueryParam("download", "true").
		SetQueryParam("limit", "0").
		Get(c.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrListing, err)
	}

	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrListing, resp.StatusCode())
	}

	rows := gjson.GetBytes(resp.Body(), "data.rows")
	if !rows.IsArray() {
		return nil, fmt.Errorf("%w: no rows at data.rows", ErrListing)
	}

	seen := haxmap.New[string, struct{}]()
	symbols := make([]string, 0, 8000)

	rows.ForEach(func(_, row gjson.Result) bool {
		symbol := strings.ToUpper(strings.TrimSpace(row.Get("symbol").String()))
		if symbol == "" {
			return true
		}

		if _, ok := seen.Get(symbol); ok {
			return true
		}

		seen.Set(symbol, struct{}{})
		symbols = append(symbols, symbol)

		return true
	})

	if limit > 0 && limit < len(symbols) {
		symbols = symbols[:limit]
	}

	return symbols, nil
}
