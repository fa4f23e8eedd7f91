package main

import (
	"io"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger writes development-style logs to w. Engine tracing is logged at
// debug level and only shows with --verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core)
}

func commandLogger(cmd *cli.Command) *zap.Logger {
	return newLogger(cmd.Root().ErrWriter, cmd.Bool("verbose"))
}
