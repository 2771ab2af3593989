package logflags

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/brimdata/serql/service/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetFlags(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f.SetFlags(fs)
	var names []string
	fs.VisitAll(func(fl *flag.Flag) {
		names = append(names, fl.Name)
	})
	assert.Equal(t, Names, names)
	require.NoError(t, fs.Parse([]string{"-log.level", "warn", "-log.filemode", "append", "-log.compiles"}))
	assert.Equal(t, zap.WarnLevel, f.Config.Level)
	assert.Equal(t, logger.FileModeAppend, f.Config.Mode)
	assert.Equal(t, "stderr", f.Config.Path)
	assert.True(t, f.Compiles)
	assert.Error(t, fs.Parse([]string{"-log.filemode", "sideways"}))
}

func TestOpenCompiles(t *testing.T) {
	for _, compiles := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "serql.log")
		conf := logger.Config{Level: zap.InfoLevel, Mode: logger.FileModeTruncate, Path: path}
		general, compiler, err := Open(conf, compiles)
		require.NoError(t, err)
		general.Debug("general debug")
		general.Info("general info")
		compiler.Debug("Compiled query")
		require.NoError(t, general.Sync())
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		out := string(b)
		assert.NotContains(t, out, "general debug")
		assert.Contains(t, out, "general info")
		if compiles {
			assert.Contains(t, out, `"logger":"compiler"`)
			assert.Contains(t, out, `"msg":"Compiled query"`)
		} else {
			assert.NotContains(t, out, "Compiled query")
		}
	}
}
