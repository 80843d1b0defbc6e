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
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/deep-value/dvscan/provider"
	"github.com/deep-value/dvscan/valuation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote <ticker>",
	Short: "Look up fundamentals and valuation metrics for a single ticker",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		ticker := strings.ToUpper(strings.TrimSpace(args[0]))

		resolver := provider.NewResolver(provider.ViperKeys{})

		fundamental, err := resolver.LookupTicker(ctx, ticker)
		if err != nil {
			log.Fatal().Err(err).Str("Ticker", ticker).Msg("could not resolve fundamentals")
		}

		metrics := valuation.Compute(fundamental)

		builder := strings.Builder{}
		builder.WriteString(fmt.Sprintf("# %s\n\n", ticker))
		builder.WriteString("| Metric | Value |\n")
		builder.WriteString("| --- | --- |\n")
		builder.WriteString(fmt.Sprintf("| Price | %s |\n", metrics.Price))
		builder.WriteString(fmt.Sprintf("| EPS | %s |\n", metrics.EPS))
		builder.WriteString(fmt.Sprintf("| P/E | %s |\n", metrics.PE))
		builder.WriteString(fmt.Sprintf("| Book Value | %s |\n", metrics.BookValue))
		builder.WriteString(fmt.Sprintf("| P/B | %s |\n", metrics.PB))
		builder.WriteString(fmt.Sprintf("| EV/EBITDA | %s |\n", metrics.EVEbitda))
		builder.WriteString(fmt.Sprintf("| Dividend/Share | %s |\n", metrics.DividendPerShare))
		builder.WriteString(fmt.Sprintf("| Dividend Yield | %s |\n", metrics.DividendYield))
		builder.WriteString(fmt.Sprintf("| Intrinsic Value (dividend model) | %s |\n", metrics.IntrinsicDividend))

		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)

		out, err := r.Render(builder.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render quote document")
		}

		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}
