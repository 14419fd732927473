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


package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker prints a single self-overwriting status line while pool
// workers convert records. It is safe for concurrent use.
type ProgressTracker struct {
	mu    sync.Mutex
	out   io.Writer
	total int
	step  int

	done    int
	next    int
	began   time.Time
	running bool
}

// NewProgressTracker returns a tracker for total records that prints after
// every step conversions. A step below 1 prints after each one.
func NewProgressTracker(out io.Writer, total, step int) *ProgressTracker {
	return &ProgressTracker{out: out, total: total, step: max(step, 1)}
}

// Start resets the counter and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = 0
	p.next = p.step
	p.began = time.Now()
	p.running = true
}

// Increment records n more converted records. Calls before Start are ignored.
func (p *ProgressTracker) Increment(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = min(p.done+n, p.total)
	if p.done >= p.next {
		p.print()
		for p.next <= p.done {
			p.next += p.step
		}
	}
}

// Current returns the number of records converted so far.
func (p *ProgressTracker) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish prints the final line and ends it.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	p.done = p.total
	p.print()
	fmt.Fprintln(p.out)
}

// print must be called with mu held.
func (p *ProgressTracker) print() {
	percent := 100.0
	if p.total > 0 {
		percent = 100 * float64(p.done) / float64(p.total)
	}

	var perSecond float64
	if secs := time.Since(p.began).Seconds(); secs > 0 {
		perSecond = float64(p.done) / secs
	}

	eta := "-"
	if perSecond > 0 && p.done < p.total {
		eta = time.Duration(float64(p.total-p.done) / perSecond * float64(time.Second)).Round(time.Second).String()
	}

	fmt.Fprintf(p.out, "\rConverted: %d/%d (%.1f%%), %.0f poems/s, eta %s ",
		p.done, p.total, percent, perSecond, eta)
}
