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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAlphaVantage(server *httptest.Server) *AlphaVantage {
	client := NewAlphaVantage(60000)
	client.BaseURL = server.URL

	return client
}

// alphaVantageHandler answers OVERVIEW with overview and GLOBAL_QUOTE with quote.
func alphaVantageHandler(overview, quote string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("function") {
		case "OVERVIEW":
			_, _ = w.Write([]byte(overview))
		case "GLOBAL_QUOTE":
			_, _ = w.Write([]byte(quote))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func TestAlphaVantageHappyPath(t *testing.T) {
	overview := `{
		"Symbol": "KO",
		"EPS": "2.47",
		"BookValue": "6.23",
		"EnterpriseValue": "295000000000",
		"EBITDA": "14500000000",
		"EVToEBITDA": "20.34",
		"DividendPerShare": "1.94",
		"DividendYield": "0.0311"
	}`
	quote := `{"Global Quote": {"01. symbol": "KO", "05. price": "62.5500"}}`

	server := httptest.NewServer(alphaVantageHandler(overview, quote))
	defer server.Close()

	fundamental, err := testAlphaVantage(server).FetchFundamentals(context.Background(), "KO", "test-key")
	require.NoError(t, err)

	assert.Equal(t, 62.55, *fundamental.Price)
	assert.Equal(t, 2.47, *fundamental.EPS)
	assert.Equal(t, 6.23, *fundamental.BookValue)
	assert.Equal(t, 20.34, *fundamental.EVToEBITDA)
	assert.Equal(t, 1.94, *fundamental.DividendPerShare)
	assert.Equal(t, 0.0311, *fundamental.DividendYield)
}

func TestAlphaVantagePlaceholderStringsAreAbsent(t *testing.T) {
	// "None" and "-" are placeholders, never zero values
	overview := `{
		"Symbol": "XYZ",
		"EPS": "None",
		"BookValue": "-",
		"DividendPerShare": "0",
		"DividendYield": "None"
	}`
	quote := `{"Global Quote": {"05. price": "10.00"}}`

	server := httptest.NewServer(alphaVantageHandler(overview, quote))
	defer server.Close()

	fundamental, err := testAlphaVantage(server).FetchFundamentals(context.Background(), "XYZ", "test-key")
	require.NoError(t, err)

	assert.Nil(t, fundamental.EPS)
	assert.Nil(t, fundamental.BookValue)
	assert.Nil(t, fundamental.DividendYield)
	require.NotNil(t, fundamental.DividendPerShare)
	assert.Equal(t, 0.0, *fundamental.DividendPerShare, "an explicit zero is a real value, not a placeholder")
}

func TestAlphaVantageRateLimitMarker(t *testing.T) {
	overview := `{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`
	quote := `{"Global Quote": {"05. price": "10.00"}}`

	server := httptest.NewServer(alphaVantageHandler(overview, quote))
	defer server.Close()

	_, err := testAlphaVantage(server).FetchFundamentals(context.Background(), "KO", "test-key")
	assert.ErrorIs(t, err, ErrProviderSignaled)
}

func TestAlphaVantageEmptyOverview(t *testing.T) {
	server := httptest.NewServer(alphaVantageHandler(`{}`, `{"Global Quote": {"05. price": "10.00"}}`))
	defer server.Close()

	_, err := testAlphaVantage(server).FetchFundamentals(context.Background(), "KO", "test-key")
	assert.ErrorIs(t, err, ErrProviderSignaled)
}

func TestAlphaVantageQuoteWithoutPrice(t *testing.T) {
	overview := `{"Symbol": "KO", "EPS": "2.47"}`
	quote := `{"Global Quote": {}}`

	server := httptest.NewServer(alphaVantageHandler(overview, quote))
	defer server.Close()

	_, err := testAlphaVantage(server).FetchFundamentals(context.Background(), "KO", "test-key")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestAlphaVantageTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testAlphaVantage(server).FetchFundamentals(context.Background(), "KO", "test-key")
	assert.ErrorIs(t, err, ErrTransport)
}
