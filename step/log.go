package step

import "log/slog"

// Logger is the interface plumb uses for structured construction-time
// diagnostics. The core never logs during Call — spec.md's Non-goals
// exclude instrumentation from the validation semantics themselves. The
// only builder that logs is RuleRegistry, which emits a Debug entry on
// every Register; Freeze and TaggedHash construction do not log.
//
// The interface is minimal and compatible with log/slog, zap, and
// zerolog, using variadic key-value pairs the way slog does:
//
//	logger.Debug("registered rule", "name", "gt", "tags", []TypeTag{TypeInteger})
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a new Logger with attrs prepended to every subsequent log.
	With(attrs ...any) Logger
}

// NopLogger discards all output. It is the default logger used when none
// is configured.
type NopLogger struct{}

func (NopLogger) Debug(_ string, _ ...any)  {}
func (NopLogger) Info(_ string, _ ...any)   {}
func (NopLogger) Warn(_ string, _ ...any)   {}
func (NopLogger) Error(_ string, _ ...any)  {}
func (n NopLogger) With(_ ...any) Logger    { return n }

var _ Logger = NopLogger{}

// SlogAdapter wraps a *slog.Logger to implement Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger. If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }
func (s *SlogAdapter) Info(msg string, attrs ...any)  { s.logger.Info(msg, attrs...) }
func (s *SlogAdapter) Warn(msg string, attrs ...any)  { s.logger.Warn(msg, attrs...) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var _ Logger = (*SlogAdapter)(nil)
