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
package data

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	RunSuccess RunStatus = "SUCCESS"
	RunFailed  RunStatus = "FAILED"
)

// RunSummary captures statistics about a single scan pass over the universe.
type RunSummary struct {
	ScanID       uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	NumSymbols   int
	NumResolved  int
	NumQualified int
	Status       RunStatus
}

// NewRunSummary starts a summary for a scan beginning now.
func NewRunSummary() RunSummary {
	return RunSummary{
		ScanID:    uuid.New(),
		StartTime: time.Now(),
	}
}
