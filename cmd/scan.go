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
	"time"

	"github.com/deep-value/dvscan/data"
	"github.com/deep-value/dvscan/healthcheck"
	"github.com/deep-value/dvscan/provider"
	"github.com/deep-value/dvscan/scan"
	"github.com/deep-value/dvscan/universe"
	"github.com/gocarina/gocsv"
	"github.com/goccy/go-json"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	scanStream bool
	scanFormat string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the symbol universe for undervalued dividend payers",
	Long: `The scan sub-command walks the listed symbol universe, resolves fundamentals
for each symbol through the configured provider chain, and keeps every
security whose market price is strictly below the dividend-model intrinsic
value. Results are ranked ascending by price over intrinsic value, so the
most undervalued securities come first.

With --stream the ranked result set is printed incrementally every time a
new qualifying security is found, instead of waiting for the full pass to
finish. Symbols that cannot be resolved are skipped and logged; no
per-symbol failure ever aborts the scan.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		resolver := provider.NewResolver(provider.ViperKeys{})
		engine := scan.NewEngine(resolver, universe.NewClient())

		limit := viper.GetInt("universe.limit")

		checkID := viper.GetString("healthchecks.checkid")
		if checkID != "" {
			if err := healthcheck.PingStart(checkID); err != nil {
				log.Warn().Err(err).Msg("could not ping healthchecks.io start endpoint")
			}
		}

		p := message.NewPrinter(language.English)

		var (
			rows    []scan.Row
			summary data.RunSummary
		)

		if scanStream {
			startTime := time.Now()
			sink := scan.SinkFunc(func(current []scan.Row) {
				leader := current[0]
				fmt.Println(p.Sprintf("%d undervalued so far, leader %s (price %s / intrinsic %s), scan started %s",
					len(current), leader.Ticker, leader.Price, leader.IntrinsicDividend,
					timeago.English.Format(startTime)))
			})

			rows, summary = engine.ScanStreaming(ctx, limit, sink)
		} else {
			rows, summary = engine.Scan(ctx, limit)
		}

		if checkID != "" {
			// an empty universe means the scan covered nothing at all
			var err error
			if summary.NumSymbols == 0 {
				err = healthcheck.PingFailure(checkID)
			} else {
				err = healthcheck.PingSuccess(checkID)
			}

			if err != nil {
				log.Warn().Err(err).Msg("could not ping healthchecks.io")
			}
		}

		switch scanFormat {
		case "csv":
			out, err := gocsv.MarshalString(&rows)
			if err != nil {
				log.Fatal().Err(err).Msg("could not marshal scan results to csv")
			}

			fmt.Print(out)
		case "json":
			out, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("could not marshal scan results to json")
			}

			fmt.Println(string(out))
		default:
			fmt.Print(renderTable(rows))
		}

		runTime := summary.EndTime.Sub(summary.StartTime)
		log.Info().
			Str("ScanID", summary.ScanID.String()).
			Str("RunTime", durafmt.Parse(runTime).LimitFirstN(2).String()).
			Msg(p.Sprintf("scanned %d symbols: %d resolved, %d undervalued",
				summary.NumSymbols, summary.NumResolved, summary.NumQualified))
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanStream, "stream", false, "print the ranked result set incrementally as qualifying symbols are found")
	scanCmd.Flags().StringVar(&scanFormat, "format", "table", "output format: table, csv, or json")
	scanCmd.Flags().Int("limit", 0, "only scan the first N symbols of the universe (0 = entire universe)")

	if err := viper.BindPFlag("universe.limit", scanCmd.Flags().Lookup("limit")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for limit failed")
	}
}
