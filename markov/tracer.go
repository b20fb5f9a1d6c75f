// SPDX-License-Identifier: MIT

package markov

import "sync"

// Tracer is a diagnostic sink. For each target the engine emits, in order:
//
//	PhaseStart(grow)  Checked/Added ...  PhaseEnd(grow)
//	PhaseStart(shrink) Checked/Removed ... PhaseEnd(shrink)
//
// preceded once per DiscoverBlankets call by Start. Slices passed to a
// Tracer are copies and may be retained.
type Tracer interface {
	// Start is called once per DiscoverBlankets call, before any target.
	Start(alpha float64, targets []string)
	// PhaseStart is called before the first pass of a phase.
	PhaseStart(target string, phase Phase, mb []string)
	// Checked reports every oracle answer.
	Checked(target string, phase Phase, candidate string, cond []string, cmi float64)
	// Added reports a grow admission.
	Added(target, candidate string, cmi float64)
	// Removed reports a shrink eviction.
	Removed(target, candidate string, cmi float64)
	// PhaseEnd is called after the final pass of a phase.
	PhaseEnd(target string, phase Phase, mb []string, st PhaseStats)
}

// NopTracer ignores every event. Embed it to implement only some methods.
type NopTracer struct{}

var (
	_ Tracer = NopTracer{}
	_ Tracer = (*lockedTracer)(nil)
)

// Start does nothing.
func (NopTracer) Start(float64, []string) {}

// PhaseStart does nothing.
func (NopTracer) PhaseStart(string, Phase, []string) {}

// Checked does nothing.
func (NopTracer) Checked(string, Phase, string, []string, float64) {}

// Added does nothing.
func (NopTracer) Added(string, string, float64) {}

// Removed does nothing.
func (NopTracer) Removed(string, string, float64) {}

// PhaseEnd does nothing.
func (NopTracer) PhaseEnd(string, Phase, []string, PhaseStats) {}

// lockedTracer serializes events from concurrently processed targets.
type lockedTracer struct {
	mu sync.Mutex
	tr Tracer
}

func (l *lockedTracer) Start(alpha float64, targets []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tr.Start(alpha, targets)
}

func (l *lockedTracer) PhaseStart(target string, phase Phase, mb []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tr.PhaseStart(target, phase, mb)
}

func (l *lockedTracer) Checked(target string, phase Phase, candidate string, cond []string, cmi float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tr.Checked(target, phase, candidate, cond, cmi)
}

func (l *lockedTracer) Added(target, candidate string, cmi float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tr.Added(target, candidate, cmi)
}

func (l *lockedTracer) Removed(target, candidate string, cmi float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tr.Removed(target, candidate, cmi)
}

func (l *lockedTracer) PhaseEnd(target string, phase Phase, mb []string, st PhaseStats) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tr.PhaseEnd(target, phase, mb, st)
}
