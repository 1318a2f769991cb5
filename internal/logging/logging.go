// Package logging builds the app's zap logger. The TUI owns the terminal, so
// the interactive screen logs to a file only; subcommands may also log to
// the console.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/glabrego/pagerdeck/internal/config"
)

const appName = "pagerdeck"

// New returns a logger and a close func for the file it writes to.
func New(conf config.LogConfig, console io.Writer) (*zap.Logger, func() error, error) {
	noClose := func() error { return nil }

	var level zapcore.Level
	switch conf.Level {
	case "none":
		return zap.NewNop(), noClose, nil
	case "normal":
		level = zapcore.InfoLevel
	case "debug":
		level = zapcore.DebugLevel
	default:
		return nil, noClose, fmt.Errorf("unknown log level: %s", conf.Level)
	}

	cores := make([]zapcore.Core, 0, 2)
	closeFn := noClose

	if conf.File != "" {
		f, err := os.OpenFile(conf.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noClose, fmt.Errorf("open log file %s: %w", conf.File, err)
		}
		fileEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.Lock(f), level))
		closeFn = f.Close
	}

	if console != nil {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeCaller = nil
		ec.TimeKey = zapcore.OmitKey
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(console), level))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return log.Named(appName), closeFn, nil
}
