// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package progress prints single-line progress reports for the pipeline stages.
package progress

import (
	"fmt"
	"io"
	"time"
)

// Tracker tracks and reports progress of a stage over a known number of items.
// It is not safe for concurrent use; stages process items sequentially.
type Tracker struct {
	writer         io.Writer
	label          string
	unit           string
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
}

// NewTracker creates a new progress tracker.
// writer: where to write progress output (typically stdout)
// label: prefix of every report line, e.g. "Refining places"
// unit: plural item noun used in the rate, e.g. "places"
// total: total number of items to process
// reportInterval: report progress every N items
func NewTracker(writer io.Writer, label, unit string, total, reportInterval int) *Tracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &Tracker{
		writer:         writer,
		label:          label,
		unit:           unit,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *Tracker) Start() {
	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Increment increases the current progress by the specified amount.
func (p *Tracker) Increment(delta int) {
	if !p.started {
		return
	}

	p.current += delta
	if p.current > p.total {
		p.current = p.total
	}

	// Report if we've crossed a report interval
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish prints the final progress line. Items that were skipped still
// count as processed.
func (p *Tracker) Finish() {
	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *Tracker) Elapsed() time.Duration {
	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

func (p *Tracker) report() {
	rate := 0.0
	if seconds := time.Since(p.startTime).Seconds(); seconds > 0 {
		rate = float64(p.current) / seconds
	}

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\r%s: %d/%d (%.1f%%) - %.1f %s/s",
		p.label, p.current, p.total, percentage, rate, p.unit)
}
