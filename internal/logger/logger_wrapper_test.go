package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestFileDestinationAndFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.log")
	log := NewZapLogger()
	log.SetDestination(contracts.FileLog, path)

	log.Info("Finger chosen",
		log.Field().Int("finger", 4),
		log.Field().Float64("distance", 3),
		log.Field().String("note", "E5"),
		log.Field().Bool("lit", true),
		log.Field().Duration("hold", 280*time.Millisecond),
		log.Field().Uint8("velocity", 100),
		log.Field().Error("error", errors.New("boom")))

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Finger chosen", entry["msg"])
	assert.Equal(t, 4.0, entry["finger"])
	assert.Equal(t, 3.0, entry["distance"])
	assert.Equal(t, "E5", entry["note"])
	assert.Equal(t, true, entry["lit"])
	assert.Equal(t, 100.0, entry["velocity"])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry["caller"], "logger_wrapper_test.go")
}

func TestSetLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.log")
	log := NewZapLogger()
	log.SetDestination(contracts.FileLog, path)

	log.Debug("hidden at info")
	log.SetLevel(contracts.DebugLevel)
	log.Debug("shown at debug")
	log.SetLevel(contracts.ErrorLevel)
	log.Warn("hidden at error")
	log.Error("shown at error")

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "shown at debug", lines[0]["msg"])
	assert.Equal(t, "shown at error", lines[1]["msg"])
}

func TestUnopenableFileKeepsDestination(t *testing.T) {
	log := NewZapLogger()
	log.SetDestination(contracts.FileLog, filepath.Join(t.TempDir(), "missing", "dir", "robot.log"))
	assert.NotPanics(t, func() { log.Info("still logging") })
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.SetLevel(contracts.DebugLevel)
		log.SetDestination(contracts.FileLog, filepath.Join(t.TempDir(), "never.log"))
		log.Info("discarded", log.Field().Int("n", 1))
	})
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]contracts.LogLevel{
		"debug": contracts.DebugLevel,
		"info":  contracts.InfoLevel,
		"":      contracts.InfoLevel,
		"warn":  contracts.WarnLevel,
		"error": contracts.ErrorLevel,
	} {
		got, ok := contracts.ParseLogLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := contracts.ParseLogLevel("loud")
	assert.False(t, ok)
}
