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
	"strconv"
	"strings"

	"github.com/deep-value/dvscan/data"
	"github.com/tidwall/gjson"
)

// numField extracts the first finite numeric value found at any of the given
// paths. Providers disagree on field naming so each logical field carries a
// list of candidate keys in preference order. String-typed values are parsed;
// placeholder strings such as "None" or "-" count as absent, never as zero.
func numField(result gjson.Result, paths ...string) *float64 {
	for _, path := range paths {
		field := result.Get(path)

		switch field.Type {
		case gjson.Number:
			if v := data.Num(field.Num); v != nil {
				return v
			}
		case gjson.String:
			s := strings.TrimSpace(field.Str)
			if s == "" || s == "None" || s == "-" {
				continue
			}

			if parsed, err := strconv.ParseFloat(s, 64); err == nil {
				if v := data.Num(parsed); v != nil {
					return v
				}
			}
		default:
			continue
		}
	}

	return nil
}
