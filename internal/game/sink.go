package game

import "go.uber.org/zap"

// Sink receives one human-readable line per notable game event.
// It is the engine's only output channel toward players.
type Sink interface {
	Record(line string)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(line string)

// Record implements Sink.
func (f SinkFunc) Record(line string) {
	f(line)
}

// NopSink discards every line.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(string) {}

type zapSink struct {
	logger *zap.Logger
}

// NewZapSink writes game lines to a zap logger at info level.
func NewZapSink(logger *zap.Logger) Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return zapSink{logger: logger.Named("table")}
}

func (s zapSink) Record(line string) {
	s.logger.Info(line)
}
