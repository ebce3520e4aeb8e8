package flags

import "log/slog"

// Sink receives unknown flag names. Collecting is best effort: a sink that
// runs out of room drops the excess rather than failing, since reporting
// unknown names is diagnostic and never load-critical.
type Sink interface {
	// Collect keeps as many names as fit and returns how many were kept.
	Collect(names ...string) int
}

// BoundedSink keeps at most a fixed number of names.
type BoundedSink struct {
	names   []string
	limit   int
	dropped int
}

// NewBoundedSink returns a sink with room for limit names. A limit of zero or
// less keeps nothing and counts everything as dropped.
func NewBoundedSink(limit int) *BoundedSink {
	if limit < 0 {
		limit = 0
	}
	return &BoundedSink{names: make([]string, 0, limit), limit: limit}
}

// Collect implements Sink.
func (s *BoundedSink) Collect(names ...string) int {
	n := min(len(names), s.Remaining())
	s.names = append(s.names, names[:n]...)
	s.dropped += len(names) - n
	return n
}

// Names returns the kept names in the order they were collected.
func (s *BoundedSink) Names() []string { return s.names }

// Dropped returns how many names did not fit.
func (s *BoundedSink) Dropped() int { return s.dropped }

// Remaining returns how many more names fit.
func (s *BoundedSink) Remaining() int { return s.limit - len(s.names) }

// Reset empties the sink so it can be reused.
func (s *BoundedSink) Reset() {
	s.names = s.names[:0]
	s.dropped = 0
}

// Discard is a Sink that keeps nothing.
var Discard Sink = discard{}

type discard struct{}

func (discard) Collect(...string) int { return 0 }

// LogSink reports every name it receives as a warning. It never runs out of
// room.
type LogSink struct {
	Logger *slog.Logger
	Domain string
}

// Collect implements Sink.
func (s LogSink) Collect(names ...string) int {
	for _, name := range names {
		s.Logger.Warn("unknown flag name, skipping", "domain", s.Domain, "name", name)
	}
	return len(names)
}
