// Package log builds the blog's process logger. zap writes the entries and
// components see it as a logr.Logger named after themselves.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Layout of the timestamp in each console line.
const Layout = "2006-01-02 15:04:05.999"

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = New(os.Stderr, level)
	root  = zapr.NewLogger(base)
)

func init() {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		_ = SetLevel(env)
	}
}

// New returns a console logger writing to w that drops entries below lvl.
func New(w io.Writer, lvl zapcore.LevelEnabler) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout(Layout)
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core, zap.AddCaller())
}

// SetLevel changes the level of the running logger. It accepts zap level
// names in any case, e.g. "debug" or "WARN".
func SetLevel(name string) error {
	return level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name))))
}

// Level reports the current level.
func Level() zapcore.Level {
	return level.Level()
}

// WithName returns the process logger named for a component.
func WithName(name string) logr.Logger {
	return root.WithName(name)
}

// Info logs at info level from the caller's frame.
func Info(msg string, keysAndValues ...interface{}) {
	root.WithCallDepth(1).Info(msg, keysAndValues...)
}

// Error logs err from the caller's frame.
func Error(err error, msg string, keysAndValues ...interface{}) {
	root.WithCallDepth(1).Error(err, msg, keysAndValues...)
}

// Sync flushes buffered entries.
func Sync() {
	_ = base.Sync()
}
