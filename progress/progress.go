// Package progress is the process-wide reporting sink the drivers and the
// NRPT controller push fractional-completion updates into. It mirrors the
// Start/Stop'able monitor the original CLI wired up, generalized from a
// single expvar map to a pluggable Sink (log line, Prometheus gauge, or
// both) so a driver never has to know which one is listening.
package progress

import (
	"log"
	"sync/atomic"
)

// Sink receives one update per progress tick. Name identifies the chain or
// replica the update belongs to; frac is in [0,1].
type Sink interface {
	Report(name string, frac float64)
}

var defaultEnabled atomic.Bool

var sinks []Sink

// SetDefault controls whether a driver emits progress when its own Options
// leave Progress unset (nil). Off by default, matching a library that
// should be silent unless a caller opts in.
func SetDefault(on bool) {
	defaultEnabled.Store(on)
}

// Register adds a sink that every future Emit call fans out to. Intended to
// be called once at process start-up (cmd wires up a LogSink and/or the
// Prometheus sink); it is not safe to call concurrently with Emit.
func Register(s Sink) {
	sinks = append(sinks, s)
}

// Reset clears all registered sinks. Used by tests.
func Reset() {
	sinks = nil
}

// Enabled resolves a driver's effective progress setting: an explicit
// Options.Progress always wins, otherwise it falls back to SetDefault.
func Enabled(opt *bool) bool {
	if opt != nil {
		return *opt
	}
	return defaultEnabled.Load()
}

// Emit fans a fractional-completion update out to every registered sink.
// The sequential, convergence and NRPT drivers call this only when Enabled
// returned true; the distributed driver's Relay emits every ping it drains,
// which reaches no sink unless one has been registered.
func Emit(frac float64, name string) {
	for _, s := range sinks {
		s.Report(name, frac)
	}
}

// LogSink reports progress as a single log line, grounded on the style of
// *log.Logger injection the rest of this module uses instead of a global
// logger.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Report(name string, frac float64) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("progress: %s %.1f%%", name, frac*100)
}
