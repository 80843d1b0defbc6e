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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/deep-value/dvscan/healthcheck"
	"github.com/gosimple/slug"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type providerConfig struct {
	APIKey    string `toml:"apiKey"`
	RateLimit int    `toml:"rateLimit"`
}

type configFile struct {
	FMP          providerConfig `toml:"fmp"`
	AlphaVantage providerConfig `toml:"alphavantage"`

	Universe struct {
		Limit int `toml:"limit"`
	} `toml:"universe"`

	Healthchecks struct {
		APIKey  string `toml:"apikey"`
		CheckID string `toml:"checkid"`
	} `toml:"healthchecks"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather provider API keys and write the configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			fmpKey    string
			avKey     string
			hcKey     string
			monitored bool
		)

		limitStr := "0"

		form := huh.NewForm(
			// Gather provider API keys; a blank key disables that provider
			huh.NewGroup(
				huh.NewInput().
					Title("Enter your Financial Modeling Prep API key (blank skips this provider):").
					Value(&fmpKey),

				huh.NewInput().
					Title("Enter your Alpha Vantage API key (blank skips this provider):").
					Value(&avKey),

				huh.NewInput().
					Title("How many symbols should a scan cover? (0 = entire universe)").
					Value(&limitStr).
					Validate(func(s string) error {
						_, err := strconv.Atoi(strings.TrimSpace(s))
						return err
					}),
			),

			// Optional healthchecks.io monitoring of scheduled scans
			huh.NewGroup(
				huh.NewInput().
					Title("Enter your healthchecks.io API key (optional):").
					Value(&hcKey),

				huh.NewConfirm().
					Title("Should a healthchecks.io monitor be created for scheduled scans?").
					Value(&monitored),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering configuration settings")
		}

		limit, err := strconv.Atoi(strings.TrimSpace(limitStr))
		if err != nil {
			log.Fatal().Err(err).Str("Limit", limitStr).Msg("universe limit is not an integer")
		}

		config := configFile{}
		config.FMP.APIKey = strings.TrimSpace(fmpKey)
		config.FMP.RateLimit = 300
		config.AlphaVantage.APIKey = strings.TrimSpace(avKey)
		config.AlphaVantage.RateLimit = 75
		config.Universe.Limit = limit
		config.Healthchecks.APIKey = strings.TrimSpace(hcKey)

		if monitored && config.Healthchecks.APIKey != "" {
			viper.Set("healthchecks.apikey", config.Healthchecks.APIKey)

			name := "dvscan scan"
			checkID, err := healthcheck.Create(name, slug.Make(name), []string{"dvscan"}, "0 9 * * 1-5")
			if err != nil {
				log.Fatal().Err(err).Msg("error creating healthchecks.io check")
			}

			config.Healthchecks.CheckID = checkID
			log.Info().Str("CheckID", checkID).Msg("created healthchecks.io monitor")
		}

		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".dvscan.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving provider settings to config file")

		configData, err := toml.Marshal(config)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("dvscan has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
