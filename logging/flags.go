package logging

import (
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// Flags holds the values of the logging command line flags.
type Flags struct {
	LogFile string
	Verbose bool
	Quiet   bool
	Debug   bool

	// Used for the log file, not exposed as flags
	MaxSizeMB  int
	MaxBackups int
	Append     bool
}

// VerbosityFlags are the names of the flags that set the console level. Only one of
// them should be given.
var VerbosityFlags = []string{"verbose", "quiet", "debug"}

// AddFlags registers the logging flags on fs.
func AddFlags(fs *pflag.FlagSet) *Flags {
	flags := &Flags{
		MaxSizeMB:  1,
		MaxBackups: 1,
		Append:     true,
	}

	fs.StringVar(&flags.LogFile, "log-file", "", "Path to a file where logs will be written, if specified.")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "Increase console log level to INFO.")
	fs.BoolVarP(&flags.Quiet, "quiet", "q", false, "Decrease console log level to ERROR. Overrides -v.")
	fs.BoolVar(&flags.Debug, "debug", false, "Maximizes console log verbosity to DEBUG. Overrides -v and -q.")

	return flags
}

// ConsoleLevel returns the console level selected by the flags, WARN by default.
func (f *Flags) ConsoleLevel() zapcore.Level {
	switch {
	case f.Debug:
		return zapcore.DebugLevel
	case f.Quiet:
		return zapcore.ErrorLevel
	case f.Verbose:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}

// Options converts the flags into logger options.
func (f *Flags) Options() Options {
	opts := Options{ConsoleLevel: f.ConsoleLevel()}

	if f.LogFile != "" {
		opts.File = &FileOptions{
			Path:       f.LogFile,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			Level:      zapcore.DebugLevel,
			Append:     f.Append,
		}
	}

	return opts
}
