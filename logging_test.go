package gekkoedit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLogger_SetDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewLoggerWithCore(core, false)

	log.Debugf("hidden %d", 1)
	log.Infof("shown %d", 2)
	assert.False(t, log.DebugEnabled())

	log.SetDebug(true)
	assert.True(t, log.DebugEnabled())
	log.Debugf("now shown %d", 3)
	log.Warnf("warn")
	log.Errorf("error")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, "shown 2", entries[0].Message)
	assert.Equal(t, "now shown 3", entries[1].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestNewDefaultLogger(t *testing.T) {
	log, err := NewDefaultLogger("test", true, "json")
	require.NoError(t, err)
	assert.True(t, log.DebugEnabled())

	_, err = NewDefaultLogger("test", false, "xml")
	assert.Error(t, err)
}

func TestLoggingModule_InstallsLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerWithCore(core, false)

	app := NewAppBuilder().UseModule(LoggingModule{Logger: logger}).Build()
	assert.Same(t, logger, app.Logger())

	app.Commands().Logger().Infof("from commands")
	assert.Equal(t, 1, logs.FilterMessage("from commands").Len())
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.log")
	log, err := NewFileLogger("test", false, "json", LogFile{Path: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Infof("written %d", 1)
	log.Debugf("dropped")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written 1"`)
	assert.Contains(t, string(data), `"logger":"test"`)
	assert.NotContains(t, string(data), "dropped")

	_, err = NewFileLogger("test", false, "xml", LogFile{Path: path})
	assert.Error(t, err)
}
