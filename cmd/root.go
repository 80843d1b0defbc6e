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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dvscan",
	Short: "dvscan finds securities trading below their dividend-model intrinsic value",
	Long: `dvscan is a command line utility that retrieves per-security fundamental
data from external providers, derives standard valuation ratios (P/E, P/B,
EV/EBITDA, dividend yield), and ranks the listed universe of securities by a
zero-growth dividend discount heuristic.

Fundamentals are resolved through a priority chain of data providers:

	* [Financial Modeling Prep](https://financialmodelingprep.com)
	* [Alpha Vantage](https://www.alphavantage.co)

A provider without a configured API key is skipped entirely. Providers
enforce request-rate limits, so symbols are processed strictly one at a
time; any failure while processing a symbol skips that symbol and never
aborts the scan.

The valuation model is intentionally simplistic and illustrative: intrinsic
value is dividend per share divided by a fixed 8% discount rate, which by
construction excludes non-dividend payers from the scan.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dvscan.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "log at debug level")
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for debug failed")
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".dvscan" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".dvscan")
	}

	viper.SetDefault("fmp.rateLimit", 300)
	viper.SetDefault("alphavantage.rateLimit", 75)
	viper.SetDefault("universe.limit", 0)

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}

	if viper.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
