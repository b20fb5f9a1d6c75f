// SPDX-License-Identifier: MIT

package markov

import "go.uber.org/zap"

// ZapTracer writes trace events as structured debug entries.
// Per-check entries are only built when debug logging is enabled.
type ZapTracer struct {
	log *zap.Logger
}

var _ Tracer = (*ZapTracer)(nil)

// NewZapTracer returns a Tracer logging through l. A nil logger discards.
func NewZapTracer(l *zap.Logger) *ZapTracer {
	if l == nil {
		l = zap.NewNop()
	}

	return &ZapTracer{log: l.Named("markov")}
}

// Start logs "discovery started" with alpha and the targets.
func (z *ZapTracer) Start(alpha float64, targets []string) {
	z.log.Debug("discovery started",
		zap.Float64("alpha", alpha),
		zap.Strings("targets", targets))
}

// PhaseStart logs "phase started" with the blanket the phase begins from.
func (z *ZapTracer) PhaseStart(target string, phase Phase, mb []string) {
	z.log.Debug("phase started",
		zap.String("target", target),
		zap.Stringer("phase", phase),
		zap.Strings("mb", mb))
}

// Checked logs "independence check" with the conditioning set and the
// oracle answer. Nothing is allocated unless debug is enabled.
func (z *ZapTracer) Checked(target string, phase Phase, candidate string, cond []string, cmi float64) {
	if ce := z.log.Check(zap.DebugLevel, "independence check"); ce != nil {
		ce.Write(
			zap.String("target", target),
			zap.Stringer("phase", phase),
			zap.String("candidate", candidate),
			zap.Strings("given", cond),
			zap.Float64("cmi", cmi))
	}
}

// Added logs "candidate added".
func (z *ZapTracer) Added(target, candidate string, cmi float64) {
	z.log.Debug("candidate added",
		zap.String("target", target),
		zap.String("candidate", candidate),
		zap.Float64("cmi", cmi))
}

// Removed logs "member removed".
func (z *ZapTracer) Removed(target, candidate string, cmi float64) {
	z.log.Debug("member removed",
		zap.String("target", target),
		zap.String("candidate", candidate),
		zap.Float64("cmi", cmi))
}

// PhaseEnd logs "phase finished" with the resulting blanket and PhaseStats.
func (z *ZapTracer) PhaseEnd(target string, phase Phase, mb []string, st PhaseStats) {
	z.log.Debug("phase finished",
		zap.String("target", target),
		zap.Stringer("phase", phase),
		zap.Strings("mb", mb),
		zap.Int("rounds", st.Rounds),
		zap.Int("checks", st.Checks),
		zap.Int("changes", st.Changes))
}
