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
	"fmt"

	"github.com/deep-value/dvscan/data"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// AlphaVantageKey is the configuration key for the Alpha Vantage provider.
	AlphaVantageKey = "alphavantage"

	alphaVantageBaseURL          = "https://www.alphavantage.co"
	alphaVantageDefaultRateLimit = 75
)

// Keys Alpha Vantage places in the overview payload when it rejects a request
// instead of answering it (rate limit notes, error messages). Their presence
// invalidates the whole response.
var alphaVantageFailureMarkers = []string{"Note", "Information", "Error Message"}

// AlphaVantage retrieves fundamentals from the Alpha Vantage REST API. It is
// the fallback provider: a company OVERVIEW call supplies the fundamental
// fields and a GLOBAL_QUOTE call supplies the market price.
type AlphaVantage struct {
	// BaseURL may be overridden in tests.
	BaseURL string

	limiter *rate.Limiter
}

// NewAlphaVantage creates an Alpha Vantage client limited to rateLimit
// requests per minute. A rateLimit of zero or less selects the default.
func NewAlphaVantage(rateLimit int) *AlphaVantage {
	if rateLimit <= 0 {
		rateLimit = alphaVantageDefaultRateLimit
	}

	return &AlphaVantage{
		BaseURL: alphaVantageBaseURL,
		limiter: rate.NewLimiter(rate.Limit(float64(rateLimit)/float64(61)), 1),
	}
}

func (av *AlphaVantage) Name() string {
	return "Alpha Vantage"
}

func (av *AlphaVantage) ConfigDescription() map[string]string {
	return map[string]string{
		"apiKey":    "Enter your Alpha Vantage API key:",
		"rateLimit": "What is the maximum number of requests per minute?",
	}
}

func (av *AlphaVantage) Description() string {
	return `Alpha Vantage provides free and premium REST APIs for realtime and historical equity quotes along with company overview data covering fundamentals such as EPS, book value, and dividend history.`
}

func (av *AlphaVantage) FetchFundamentals(ctx context.Context, symbol string, apiKey string) (*data.Fundamental, error) {
	client := resty.New().SetBaseURL(av.BaseURL).SetQueryParam("apikey", apiKey)

	if err := av.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	resp, err := client.R().
		SetQueryParam("function", "OVERVIEW").
		SetQueryParam("symbol", symbol).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage overview: %s", ErrTransport, err)
	}

	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: alphavantage overview returned status %d", ErrTransport, resp.StatusCode())
	}

	overview := gjson.ParseBytes(resp.Body())
	if !overview.IsObject() {
		return nil, fmt.Errorf("%w: alphavantage overview is not an object", ErrParse)
	}

	for _, marker := range alphaVantageFailureMarkers {
		if overview.Get(marker).Exists() {
			return nil, fmt.Errorf("%w: alphavantage overview contains %q marker", ErrProviderSignaled, marker)
		}
	}

	if len(overview.Map()) == 0 {
		return nil, fmt.Errorf("%w: alphavantage overview for %s is empty", ErrProviderSignaled, symbol)
	}

	if err := av.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	quoteResp, err := client.R().
		SetQueryParam("function", "GLOBAL_QUOTE").
		SetQueryParam("symbol", symbol).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("%w: alphavantage quote: %s", ErrTransport, err)
	}

	if quoteResp.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: alphavantage quote returned status %d", ErrTransport, quoteResp.StatusCode())
	}

	quote := gjson.GetBytes(quoteResp.Body(), "Global Quote")

	price := numField(quote, "05\\. price", "price")
	if price == nil {
		return nil, fmt.Errorf("%w: alphavantage quote for %s has no price", ErrMissingField, symbol)
	}

	return &data.Fundamental{
		Symbol:           symbol,
		Price:            price,
		EPS:              numField(overview, "EPS"),
		BookValue:        numField(overview, "BookValue"),
		EnterpriseValue:  numField(overview, "EnterpriseValue"),
		EBITDA:           numField(overview, "EBITDA"),
		EVToEBITDA:       numField(overview, "EVToEBITDA"),
		DividendPerShare: numField(overview, "DividendPerShare"),
		DividendYield:    numField(overview, "DividendYield"),
	}, nil
}
