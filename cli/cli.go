// Package cli holds the setup shared by the serql commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"

	"github.com/brimdata/serql/cli/logflags"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNoInput is returned by commands that need at least one input file.
var ErrNoInput = errors.New("no input files")

// Flags are the options accepted by every command.
type Flags struct {
	Log logflags.Flags

	showVersion   bool
	cpuprofile    string
	memprofile    string
	cpuFile       *os.File
	logger        *zap.Logger
	compileLogger *zap.Logger
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")
	fs.StringVar(&f.cpuprofile, "cpuprofile", "", "write a CPU profile to `file`")
	fs.StringVar(&f.memprofile, "memprofile", "", "write an allocation profile to `file` on exit")
	f.Log.SetFlags(fs)
}

// Init handles -version, opens the loggers, and starts CPU profiling.
// The returned context is canceled on receipt of any of signals, or of
// SIGINT, SIGPIPE, or SIGTERM if none are given.  The returned func must
// be called when the command finishes.
func (f *Flags) Init(signals ...os.Signal) (context.Context, func(), error) {
	if f.showVersion {
		fmt.Printf("Version: %s\n", Version())
		os.Exit(0)
	}
	var err error
	f.logger, f.compileLogger, err = f.Log.Open()
	if err != nil {
		return nil, nil, err
	}
	if f.cpuprofile != "" {
		if f.cpuFile, err = os.Create(f.cpuprofile); err != nil {
			return nil, nil, err
		}
		if err := pprof.StartCPUProfile(f.cpuFile); err != nil {
			f.cpuFile.Close()
			return nil, nil, err
		}
	}
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGPIPE, syscall.SIGTERM}
	}
	ctx, cancel := signal.NotifyContext(context.Background(), signals...)
	cleanup := func() {
		cancel()
		if err := f.stopProfiles(); err != nil {
			f.logger.Error("Profiling failed", zap.Error(err))
		}
		f.logger.Sync()
	}
	return &interruptedContext{ctx}, cleanup, nil
}

// Logger returns the logger opened by Init.
func (f *Flags) Logger() *zap.Logger {
	if f.logger == nil {
		return zap.NewNop()
	}
	return f.logger
}

// CompileLogger returns the logger to hand to a compiler.  See
// logflags.Open.
func (f *Flags) CompileLogger() *zap.Logger {
	if f.compileLogger == nil {
		return zap.NewNop()
	}
	return f.compileLogger
}

func (f *Flags) stopProfiles() error {
	var err error
	if f.cpuFile != nil {
		pprof.StopCPUProfile()
		err = f.cpuFile.Close()
		f.cpuFile = nil
	}
	if f.memprofile != "" {
		err = multierr.Append(err, writeMemProfile(f.memprofile))
	}
	return err
}

func writeMemProfile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	runtime.GC()
	err = pprof.Lookup("allocs").WriteTo(file, 0)
	return multierr.Append(err, file.Close())
}

// interruptedContext reports cancellation by a signal as "interrupted".
type interruptedContext struct{ context.Context }

func (i *interruptedContext) Err() error {
	err := i.Context.Err()
	if errors.Is(err, context.Canceled) {
		return errors.New("interrupted")
	}
	return err
}

// FileExists reports whether path names a regular file.  "-" names
// standard input and always exists.
func FileExists(path string) bool {
	if path == "-" {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
