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

	"github.com/deep-value/dvscan/universe"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var universeLimit int

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "List the candidate symbol universe in listing order",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		symbols, err := universe.NewClient().Symbols(ctx, universeLimit)
		if err != nil {
			log.Fatal().Err(err).Msg("could not retrieve universe listing")
		}

		for _, symbol := range symbols {
			fmt.Println(symbol)
		}

		p := message.NewPrinter(language.English)
		log.Info().Msg(p.Sprintf("%d symbols in universe", len(symbols)))
	},
}

func init() {
	rootCmd.AddCommand(universeCmd)

	universeCmd.Flags().IntVar(&universeLimit, "limit", 0, "only list the first N symbols (0 = entire universe)")
}
