package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileMode says what to do with a log file that already exists.
type FileMode string

const (
	FileModeAppend   FileMode = "append"
	FileModeTruncate FileMode = "truncate"
	// FileModeRotate hands the file to lumberjack, which rotates it
	// according to Config.Rotation.
	FileModeRotate FileMode = "rotate"
)

func (m FileMode) String() string {
	return string(m)
}

// Set implements flag.Value.  The empty string means FileModeAppend.
func (m *FileMode) Set(s string) error {
	switch mode := FileMode(s); mode {
	case "":
		*m = FileModeAppend
	case FileModeAppend, FileModeTruncate, FileModeRotate:
		*m = mode
	default:
		return fmt.Errorf("unknown log file mode %q (use append, truncate, or rotate)", s)
	}
	return nil
}

func (m *FileMode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// Rotation bounds the files kept by FileModeRotate.  The zero value
// means DefaultRotation.
type Rotation struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

var DefaultRotation = Rotation{MaxSizeMB: 5, MaxBackups: 3, MaxAgeDays: 28, Compress: true}

// openSink opens the destination named by conf.Path.  The names stdout,
// stderr, and /dev/null are not files.
func openSink(conf Config) (zapcore.WriteSyncer, error) {
	switch conf.Path {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	case "/dev/null":
		return zapcore.AddSync(io.Discard), nil
	}
	if conf.Mode == FileModeRotate {
		return rotatingSink(conf.Path, conf.Rotation)
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if conf.Mode == FileModeTruncate {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(conf.Path, flags, 0644)
	if err != nil {
		return nil, err
	}
	return zapcore.Lock(f), nil
}

func rotatingSink(path string, r Rotation) (zapcore.WriteSyncer, error) {
	// lumberjack creates the directory on first write; fail now instead.
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}
	if r == (Rotation{}) {
		r = DefaultRotation
	}
	// lumberjack.Logger does its own locking.
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    r.MaxSizeMB,
		MaxBackups: r.MaxBackups,
		MaxAge:     r.MaxAgeDays,
		Compress:   r.Compress,
	}), nil
}
