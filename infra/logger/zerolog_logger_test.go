package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	var buf bytes.Buffer
	l := NewZerologLogger("test", Options{Level: "debug", Out: &buf})
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
	assert.Contains(t, buf.String(), "info test")
}

func TestZerologLoggerJSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger("editor", Options{Level: "warn", Out: &buf})
	l.Infof("dropped")
	l.Warnf("kept %s", "line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "editor", entry["component"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept line", entry["message"])
}

func TestConfigure(t *testing.T) {
	prev := current()
	defer func() { require.NoError(t, Configure(prev)) }()

	assert.Error(t, Configure(Options{Level: "loud"}))

	var buf bytes.Buffer
	require.NoError(t, Configure(Options{Level: "error", Out: &buf}))
	l := New("cli")
	l.Warnf("hidden")
	l.Errorf("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigureRotatingFile(t *testing.T) {
	prev := current()
	defer func() { require.NoError(t, Configure(prev)) }()

	path := filepath.Join(t.TempDir(), "logs", "eventplan.log")
	require.NoError(t, Configure(Options{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 2}))
	New("cli").Infof("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infof("nothing")
	l.Debugw("nothing", nil)
}
