package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func TestFileModeSet(t *testing.T) {
	var m FileMode
	require.NoError(t, m.Set("rotate"))
	assert.Equal(t, FileModeRotate, m)
	require.NoError(t, m.Set(""))
	assert.Equal(t, FileModeAppend, m)
	assert.EqualError(t, m.Set("bogus"), `unknown log file mode "bogus" (use append, truncate, or rotate)`)
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serql.log")
	logger, err := New(Config{Level: zap.InfoLevel, Mode: FileModeTruncate, Path: path})
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("compiled", zap.Int("operators", 3))
	require.NoError(t, logger.Sync())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"compiled"`)
	assert.Contains(t, string(b), `"operators":3`)
	assert.NotContains(t, string(b), "hidden")
}

func TestRotateRequiresDir(t *testing.T) {
	dir := t.TempDir()
	_, err := openSink(Config{Path: filepath.Join(dir, "missing", "x.log"), Mode: FileModeRotate})
	assert.Error(t, err)
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = openSink(Config{Path: filepath.Join(file, "x.log"), Mode: FileModeRotate})
	assert.EqualError(t, err, file+": not a directory")
}

func TestAppendAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serql.log")
	write := func(mode FileMode, msg string) {
		logger, err := New(Config{Level: zap.InfoLevel, Mode: mode, Path: path})
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, logger.Sync())
	}
	write(FileModeTruncate, "first")
	write(FileModeAppend, "second")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "first")
	assert.Contains(t, string(b), "second")
	write(FileModeTruncate, "third")
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "first")
	assert.Contains(t, string(b), "third")
}

func TestRotationYAML(t *testing.T) {
	var conf Config
	err := yaml.Unmarshal([]byte("level: debug\nmode: rotate\nrotation:\n  max_size_mb: 10\n  compress: true\n"), &conf)
	require.NoError(t, err)
	assert.Equal(t, zap.DebugLevel, conf.Level)
	assert.Equal(t, FileModeRotate, conf.Mode)
	assert.Equal(t, Rotation{MaxSizeMB: 10, Compress: true}, conf.Rotation)
	assert.Error(t, yaml.Unmarshal([]byte("mode: sideways\n"), &conf))
}
