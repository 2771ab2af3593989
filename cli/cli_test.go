package cli

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	assert.True(t, FileExists(path))
	assert.True(t, FileExists("-"))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}

func TestInterruptedContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ictx := &interruptedContext{ctx}
	assert.NoError(t, ictx.Err())
	cancel()
	assert.EqualError(t, ictx.Err(), "interrupted")
}

func TestVersion(t *testing.T) {
	saved := version
	defer func() { version = saved }()
	version = "v0.1.0"
	assert.Equal(t, "v0.1.0", Version())
}

func TestBuildVersion(t *testing.T) {
	info := &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}
	assert.Equal(t, "v1.2.3", buildVersion(info))
	info.Main.Version = "(devel)"
	assert.Equal(t, "unknown", buildVersion(info))
	info.Settings = []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.modified", Value: "true"},
	}
	assert.Equal(t, "devel-0123456789ab-dirty", buildVersion(info))
	info.Settings[1].Value = "false"
	assert.Equal(t, "devel-0123456789ab", buildVersion(info))
}

func TestInitOpensLoggers(t *testing.T) {
	dir := t.TempDir()
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	logPath := filepath.Join(dir, "serql.log")
	memPath := filepath.Join(dir, "mem.prof")
	require.NoError(t, fs.Parse([]string{"-log.path", logPath, "-log.compiles", "-memprofile", memPath}))
	ctx, cleanup, err := f.Init(syscall.SIGUSR1)
	require.NoError(t, err)
	assert.NoError(t, ctx.Err())
	f.Logger().Debug("general debug")
	f.CompileLogger().Debug("Compiled query")
	cleanup()
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Compiled query")
	assert.NotContains(t, string(b), "general debug")
	assert.True(t, FileExists(memPath))
	assert.EqualError(t, ctx.Err(), "interrupted")
}
