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
package universe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPayload = `{
	"data": {
		"rows": [
			{"symbol": "AAPL", "name": "Apple Inc."},
			{"symbol": "msft", "name": "Microsoft Corp."},
			{"symbol": " KO ", "name": "Coca-Cola Co."},
			{"symbol": "", "name": "blank row"},
			{"symbol": "AAPL", "name": "duplicate"},
			{"symbol": "JNJ", "name": "Johnson & Johnson"},
			{"symbol": "PG", "name": "Procter & Gamble"},
			{"symbol": "XOM", "name": "Exxon Mobil"},
			{"symbol": "T", "name": "AT&T"}
		]
	}
}`

func listingServer(payload string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
}

func testClient(server *httptest.Server) *Client {
	client := NewClient()
	client.ListingURL = server.URL

	return client
}

func TestSymbolsFullListing(t *testing.T) {
	server := listingServer(listingPayload)
	defer server.Close()

	symbols, err := testClient(server).Symbols(context.Background(), 0)
	require.NoError(t, err)

	// blanks dropped, duplicates collapsed, everything trimmed and upper-cased
	assert.Equal(t, []string{"AAPL", "MSFT", "KO", "JNJ", "PG", "XOM", "T"}, symbols)
}

func TestSymbolsTruncation(t *testing.T) {
	server := listingServer(listingPayload)
	defer server.Close()

	client := testClient(server)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "positive limit truncates in listing order", limit: 5, want: 5},
		{name: "zero limit returns everything", limit: 0, want: 7},
		{name: "negative limit returns everything", limit: -1, want: 7},
		{name: "limit beyond listing size returns everything", limit: 500, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbols, err := client.Symbols(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Len(t, symbols, tt.want)

			// truncation keeps the head of the listing
			assert.Equal(t, "AAPL", symbols[0])
		})
	}
}

func TestSymbolsParseFailure(t *testing.T) {
	server := listingServer(`<html>service maintenance</html>`)
	defer server.Close()

	symbols, err := testClient(server).Symbols(context.Background(), 0)
	assert.ErrorIs(t, err, ErrListing)
	assert.Empty(t, symbols)
}

func TestSymbolsMissingRows(t *testing.T) {
	server := listingServer(`{"data": {"rows": null}}`)
	defer server.Close()

	symbols, err := testClient(server).Symbols(context.Background(), 0)
	assert.ErrorIs(t, err, ErrListing)
	assert.Empty(t, symbols)
}

func TestSymbolsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	symbols, err := testClient(server).Symbols(context.Background(), 0)
	assert.ErrorIs(t, err, ErrListing)
	assert.Empty(t, symbols)
}
