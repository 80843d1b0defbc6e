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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deep-value/dvscan/scan"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tableCellStyle   = lipgloss.NewStyle()
)

// renderTable lays out the ranked scan rows as a fixed-width terminal table.
// Only the ticker and display metrics cross this boundary; the numeric
// ranking values stay inside the scan package.
func renderTable(rows []scan.Row) string {
	headers := []string{"TICKER", "PRICE", "EPS", "P/E", "BOOK", "P/B", "EV/EBITDA", "DIV/SH", "YIELD", "INTRINSIC"}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, headers)

	for _, row := range rows {
		cells = append(cells, []string{
			row.Ticker,
			row.Price,
			row.EPS,
			row.PE,
			row.BookValue,
			row.PB,
			row.EVEbitda,
			row.DividendPerShare,
			row.DividendYield,
			row.IntrinsicDividend,
		})
	}

	widths := make([]int, len(headers))
	for _, line := range cells {
		for col, cell := range line {
			if len(cell) > widths[col] {
				widths[col] = len(cell)
			}
		}
	}

	builder := strings.Builder{}

	for lineNum, line := range cells {
		style := tableCellStyle
		if lineNum == 0 {
			style = tableHeaderStyle
		}

		for col, cell := range line {
			builder.WriteString(style.Width(widths[col] + 2).Render(cell))
		}

		builder.WriteString("\n")
	}

	return builder.String()
}
