package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerproject/xersched/internal/diagnostics"
)

func TestLoggerFiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("cpm", "warn", FormatText, &buf)

	l.Info("should not appear")
	l.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, "[cpm]")
}

func TestLoggerTextIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("xer", "debug", FormatText, &buf)

	l.Debug("parsed table", "table", "TASK", "rows", 12)

	out := buf.String()
	assert.Contains(t, out, "table=TASK")
	assert.Contains(t, out, "rows=12")
}

func TestLoggerJSONProducesOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	l := New("window", "info", FormatJSON, &buf)

	l.Info("window computed", "ts", "2024-01-01")

	line := strings.TrimSpace(buf.String())
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, "window", decoded["component"])
	assert.Equal(t, "INFO", decoded["level"])
	assert.Equal(t, "window computed", decoded["message"])
}

func TestWithPreservesLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("cpm", "error", FormatJSON, &buf)
	child := l.With("window")

	child.Warn("ignored below error level")
	assert.Empty(t, buf.String())

	child.Error("reported")
	assert.Contains(t, buf.String(), `"component":"window"`)
}

func TestLogDiagnosticsMapsSeverityToLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("reproject", "info", FormatText, &buf)

	items := []diagnostics.Diagnostic{
		{Kind: diagnostics.KindCycleDetected, Severity: diagnostics.SeverityFatal, Message: "cycle found", TaskID: "T1"},
		{Kind: diagnostics.KindConstraintConflict, Severity: diagnostics.SeverityWarn, Message: "conflict"},
	}
	l.LogDiagnostics(items)

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "cycle found")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "conflict")
}
