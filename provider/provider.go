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
	"errors"

	"github.com/deep-value/dvscan/data"
)

// Failure categories for a single provider call. Callers treat all of them the
// same way (skip the symbol); the category is kept for diagnostics.
var (
	ErrTransport        = errors.New("transport failure")
	ErrParse            = errors.New("could not parse provider response")
	ErrProviderSignaled = errors.New("provider signaled failure")
	ErrMissingField     = errors.New("required field missing or non-numeric")
	ErrNotConfigured    = errors.New("no provider has an API key configured")
	ErrNotFound         = errors.New("no provider returned fundamentals")
)

// Provider retrieves a fundamental data snapshot for a single symbol. A call
// either yields a complete *data.Fundamental or a categorized error; providers
// never return partial data with missing values silently defaulted to zero.
type Provider interface {
	Name() string
	ConfigDescription() map[string]string
	Description() string

	FetchFundamentals(ctx context.Context, symbol string, apiKey string) (*data.Fundamental, error)
}

// Map indexes all known providers by their configuration key.
var Map = map[string]Provider{
	FMPKey:          NewFMP(0),
	AlphaVantageKey: NewAlphaVantage(0),
}
