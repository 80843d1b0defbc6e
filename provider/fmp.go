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
	"net/url"

	"github.com/deep-value/dvscan/data"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// FMPKey is the configuration key for the Financial Modeling Prep provider.
	FMPKey = "fmp"

	fmpBaseURL          = "https://financialmodelingprep.com"
	fmpDefaultRateLimit = 300
)

// FMP retrieves fundamentals from the Financial Modeling Prep REST API. It is
// the primary (richer) provider: a quote lookup supplies the market price and
// a trailing-twelve-month key-metrics lookup supplies the fundamental fields,
// with quote-endpoint equivalents used as fallbacks.
type FMP struct {
	// BaseURL may be overridden in tests.
	BaseURL string

	limiter *rate.Limiter
}

// NewFMP creates an FMP client limited to rateLimit requests per minute. A
// rateLimit of zero or less selects the default.
func NewFMP(rateLimit int) *FMP {
	if rateLimit <= 0 {
		rateLimit = fmpDefaultRateLimit
	}

	return &FMP{
		BaseURL: fmpBaseURL,
		limiter: rate.NewLimiter(rate.Limit(float64(rateLimit)/float64(61)), 1),
	}
}

func (fmp *FMP) Name() string {
	return "Financial Modeling Prep"
}

func (fmp *FMP) ConfigDescription() map[string]string {
	return map[string]string{
		"apiKey":    "Enter your Financial Modeling Prep API key:",
		"rateLimit": "What is the maximum number of requests per minute?",
	}
}

func (fmp *FMP) Description() string {
	return `Financial Modeling Prep provides REST endpoints covering real-time quotes, company fundamentals, and trailing-twelve-month key metrics for securities listed on all US stock exchanges.`
}

func (fmp *FMP) FetchFundamentals(ctx context.Context, symbol string, apiKey string) (*data.Fundamental, error) {
	logger := zerolog.Ctx(ctx)

	client := resty.New().SetBaseURL(fmp.BaseURL).SetQueryParam("apikey", apiKey)

	if err := fmp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	resp, err := client.R().Get("/api/v3/quote/" + url.PathEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("%w: fmp quote: %s", ErrTransport, err)
	}

	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("%w: fmp quote returned status %d", ErrTransport, resp.StatusCode())
	}

	quotes := gjson.ParseBytes(resp.Body())
	if !quotes.IsArray() {
		return nil, fmt.Errorf("%w: fmp quote is not an array", ErrParse)
	}

	quote := quotes.Get("0")
	if !quote.Exists() {
		return nil, fmt.Errorf("%w: fmp returned an empty quote result set for %s", ErrProviderSignaled, symbol)
	}

	// The key-metrics call enriches the quote; if it fails the quote-endpoint
	// fallback fields still produce a usable snapshot.
	metrics := gjson.Result{}

	if err := fmp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	metricsResp, err := client.R().Get("/api/v3/key-metrics-ttm/" + url.PathEscape(symbol))
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("Symbol", symbol).Msg("fmp key-metrics request failed, falling back to quote fields")
	case metricsResp.StatusCode() >= 300:
		logger.Warn().Int("StatusCode", metricsResp.StatusCode()).Str("Symbol", symbol).
			Msg("fmp key-metrics returned an invalid HTTP response, falling back to quote fields")
	default:
		if parsed := gjson.ParseBytes(metricsResp.Body()); parsed.IsArray() {
			metrics = parsed.Get("0")
		}
	}

	price := numField(quote, "price")
	if price == nil {
		return nil, fmt.Errorf("%w: fmp quote for %s has no price", ErrMissingField, symbol)
	}

	eps := numField(metrics, "earningsPerShareTTM", "eps", "epsTTM")
	if eps == nil {
		eps = numField(quote, "eps")
	}

	return &data.Fundamental{
		Symbol:           symbol,
		Price:            price,
		EPS:              eps,
		BookValue:        numField(metrics, "bookValuePerShareTTM", "bookValuePerShare", "bookValue"),
		EnterpriseValue:  numField(metrics, "enterpriseValueTTM", "enterpriseValue"),
		EBITDA:           numField(metrics, "EBITDA", "ebitda"),
		DividendPerShare: numField(metrics, "dividendPerShareTTM", "dividendPerShare", "lastDiv"),
		DividendYield:    numField(metrics, "dividendYieldTTM", "dividendYield"),
	}, nil
}
