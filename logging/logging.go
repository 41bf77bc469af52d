// Package logging builds the zap loggers used by the textual command line tool.
//
// Entries are written to the console as `LEVEL: message`. Optionally they are also
// written into a log file as `[time] [LEVEL] caller: message`, which is rotated by size.
package logging

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MainLogger is the name of the logger whose entries are never written to the console.
// Commands use it for messages that only belong into the log file, as the console
// already shows their output.
const MainLogger = "main"

// FileOptions configures the log file.
type FileOptions struct {
	Path string

	// MaxSizeMB is the size at which the file is rotated. 0 disables rotation.
	MaxSizeMB int

	// MaxBackups is the number of rotated files to keep. 0 keeps all of them.
	MaxBackups int

	Level zapcore.Level

	// Append keeps the content of an existing file, otherwise it is truncated.
	Append bool
}

type Options struct {
	ConsoleLevel zapcore.Level

	// Console receives the console output, defaults to os.Stderr
	Console io.Writer

	// File is optional
	File *FileOptions
}

// New creates a logger as configured by opts. The returned function flushes and closes
// the outputs of the logger.
func New(opts Options) (*zap.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCore := suppressingCore{
		Core: zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig()),
			zapcore.AddSync(console),
			opts.ConsoleLevel,
		),
		name: MainLogger,
	}

	cores := []zapcore.Core{consoleCore}

	var closer io.Closer = nopCloser{}

	if opts.File != nil {
		writer, err := openLogFile(*opts.File)
		if err != nil {
			return nil, nil, err
		}

		closer = writer

		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(fileEncoderConfig()),
			zapcore.AddSync(writer),
			opts.File.Level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	logger.Info("Logging configured")

	cleanup := func() error {
		// Sync fails on some terminals, the file is closed anyway
		_ = logger.Sync()
		return closer.Close()
	}

	return logger, cleanup, nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: ": ",
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:    "time",
		LevelKey:   "level",
		CallerKey:  "caller",
		MessageKey: "message",

		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format("2006-01-02 15:04:05.000") + "]")
		},

		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + level.CapitalString() + "]")
		},

		EncodeCaller: func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(caller.TrimmedPath() + ":")
		},

		ConsoleSeparator: " ",
	}
}

func openLogFile(opts FileOptions) (io.WriteCloser, error) {
	if dir := filepath.Dir(opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if !opts.Append {
		flags |= os.O_TRUNC
	}

	fp, err := os.OpenFile(opts.Path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	if opts.MaxSizeMB <= 0 {
		return fp, nil
	}

	// lumberjack opens the file on its own, we only needed to create or truncate it
	if err := fp.Close(); err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	return writer, nil
}

// suppressingCore drops the entries of the logger with the given name and its children.
type suppressingCore struct {
	zapcore.Core
	name string
}

func (c suppressingCore) With(fields []zapcore.Field) zapcore.Core {
	return suppressingCore{Core: c.Core.With(fields), name: c.name}
}

func (c suppressingCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if entry.LoggerName == c.name || strings.HasPrefix(entry.LoggerName, c.name+".") {
		return checked
	}

	return c.Core.Check(entry, checked)
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
