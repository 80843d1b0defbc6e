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
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Keys holds the per-provider API keys in effect for a single lookup. An
// empty key disables that provider.
type Keys struct {
	FMP          string
	AlphaVantage string
}

// KeySource supplies the current API keys. The resolver reads it once per
// lookup, never caching keys across symbols, so configuration changes made
// while a scan is in flight take effect on the next symbol without corrupting
// the scan.
type KeySource interface {
	Keys() Keys
}

// StaticKeys is a KeySource with fixed keys.
type StaticKeys Keys

func (s StaticKeys) Keys() Keys {
	return Keys(s)
}

// ViperKeys reads API keys from the process configuration on every call.
type ViperKeys struct{}

func (ViperKeys) Keys() Keys {
	return Keys{
		FMP:          viper.GetString("fmp.apiKey"),
		AlphaVantage: viper.GetString("alphavantage.apiKey"),
	}
}

// Resolver tries providers in priority order and returns the first snapshot a
// provider produces. Financial Modeling Prep is consulted first, Alpha
// Vantage second; a provider without a configured key is skipped entirely.
// Results are never merged across providers.
type Resolver struct {
	source       KeySource
	fmp          Provider
	alphaVantage Provider
}

func NewResolver(source KeySource) *Resolver {
	return &Resolver{
		source:       source,
		fmp:          NewFMP(viper.GetInt("fmp.rateLimit")),
		alphaVantage: NewAlphaVantage(viper.GetInt("alphavantage.rateLimit")),
	}
}

// LookupTicker resolves fundamentals for symbol through the provider chain.
// Provider failures are logged and converted into trying the next provider;
// the returned error only reports that the whole chain came up empty.
func (r *Resolver) LookupTicker(ctx context.Context, symbol string) (*data.Fundamental, error) {
	logger := zerolog.Ctx(ctx)

	keys := r.source.Keys()
	if keys.FMP == "" && keys.AlphaVantage == "" {
		return nil, ErrNotConfigured
	}

	if keys.FMP != "" {
		fundamental, err := r.fmp.FetchFundamentals(ctx, symbol, keys.FMP)
		if err == nil {
			return fundamental, nil
		}

		logger.Debug().Err(err).Str("Provider", r.fmp.Name()).Str("Symbol", symbol).Msg("provider lookup failed")
	}

	if keys.AlphaVantage != "" {
		fundamental, err := r.alphaVantage.FetchFundamentals(ctx, symbol, keys.AlphaVantage)
		if err == nil {
			return fundamental, nil
		}

		logger.Debug().Err(err).Str("Provider", r.alphaVantage.Name()).Str("Symbol", symbol).Msg("provider lookup failed")
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
}
