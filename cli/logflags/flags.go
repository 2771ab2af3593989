// Package logflags registers the -log.* command-line flags.
package logflags

import (
	"flag"

	"github.com/brimdata/serql/service/logger"
	"go.uber.org/zap"
)

// Names lists every flag registered by SetFlags.
var Names = []string{"log.compiles", "log.devmode", "log.filemode", "log.level", "log.path"}

type Flags struct {
	Config logger.Config
	// Compiles logs every compilation, which the compiler does at debug
	// level, whatever the value of -log.level.
	Compiles bool
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	f.Config.Level = zap.InfoLevel
	f.Config.Mode = logger.FileModeTruncate
	f.Config.Path = "stderr"
	fs.BoolVar(&f.Compiles, "log.compiles", false, "log each compilation regardless of -log.level")
	fs.BoolVar(&f.Config.DevMode, "log.devmode", false, "panic on dpanic level logs")
	fs.Var(&f.Config.Mode, "log.filemode", "how to open an existing log file: append, truncate, or rotate")
	fs.Var(&f.Config.Level, "log.level", "minimum `level` to log: debug, info, warn, or error")
	fs.StringVar(&f.Config.Path, "log.path", f.Config.Path, "log to `file` (or stderr, stdout, /dev/null)")
}

// Open is like the package-level Open with the flag values.
func (f *Flags) Open() (*zap.Logger, *zap.Logger, error) {
	return Open(f.Config, f.Compiles)
}

// Open returns a logger for general use and a logger for a compiler,
// both writing to the sink described by conf.  When compiles is set, the
// compiler's logger records debug messages even if conf.Level is higher.
func Open(conf logger.Config, compiles bool) (*zap.Logger, *zap.Logger, error) {
	if !compiles || conf.Level <= zap.DebugLevel {
		l, err := logger.New(conf)
		if err != nil {
			return nil, nil, err
		}
		return l, l.Named("compiler"), nil
	}
	level := conf.Level
	conf.Level = zap.DebugLevel
	l, err := logger.New(conf)
	if err != nil {
		return nil, nil, err
	}
	return l.WithOptions(zap.IncreaseLevel(level)), l.Named("compiler"), nil
}
