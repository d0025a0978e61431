// Package logging builds the optional debug log. The terminal belongs to
// the UI, so log records only ever go to a file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with the session fields attached.
type Logger struct {
	*zap.Logger
	SessionID string

	// file is the open log file; nil for no-op loggers and children.
	file io.Closer
}

// Options configures New.
type Options struct {
	// Path of the log file. Empty disables logging.
	Path  string
	Level string
}

// New opens the log file and returns a JSON logger writing to it. With an
// empty path it returns a no-op logger that still carries a session id.
func New(opts Options) (*Logger, error) {
	sessionID := uuid.NewString()
	if opts.Path == "" {
		return &Logger{Logger: zap.NewNop(), SessionID: sessionID}, nil
	}

	level, err := zapcore.ParseLevel(levelOrDefault(opts.Level))
	if err != nil {
		return nil, errors.WrapPrefix(err, "log level", 0)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, errors.WrapPrefix(err, "creating log directory", 0)
	}
	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.WrapPrefix(err, "opening log file", 0)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level)

	z := zap.New(core, zap.AddCaller()).With(zap.String("session_id", sessionID))
	return &Logger{Logger: z, SessionID: sessionID, file: f}, nil
}

// Close flushes buffered records and closes the log file. Child loggers
// share the file and must not be used afterwards. It is safe to call more
// than once.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// WithFields returns a child logger carrying extra fields.
func (l *Logger) WithFields(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), SessionID: l.SessionID}
}

// Component is shorthand for WithFields(zap.String("component", name)).
func (l *Logger) Component(name string) *Logger {
	return l.WithFields(zap.String("component", name))
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func levelOrDefault(s string) string {
	if s == "" {
		return "info"
	}
	return s
}
