// Package adapter contains infrastructure and output adapters for the pedant CLI.
package adapter

import (
	"sort"
	"sync"

	m "github.com/mouse-blink/pedant/internal/model"
)

// Collector gathers diagnostics from concurrently running validators. It is
// safe for concurrent Report calls.
type Collector struct {
	mu    sync.Mutex
	diags []m.Diagnostic
}

// NewCollector constructs an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends one diagnostic.
func (c *Collector) Report(d m.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diags = append(c.diags, d)
}

// Diagnostics returns everything collected so far, ordered by file position
// so output is stable regardless of validation order.
func (c *Collector) Diagnostics() []m.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]m.Diagnostic, len(c.diags))
	copy(out, c.diags)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Loc, out[j].Loc
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}

		return a.Column < b.Column
	})

	return out
}

// Len returns the number of diagnostics collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.diags)
}
