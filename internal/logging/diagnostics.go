package logging

import "github.com/xerproject/xersched/internal/diagnostics"

// LogDiagnostics writes each diagnostic in items to l at a level matching
// its severity, so an operator tailing output sees the same conditions a
// caller inspecting the returned diagnostics.List would see.
func (l *Logger) LogDiagnostics(items []diagnostics.Diagnostic) {
	for _, d := range items {
		fields := []any{"kind", string(d.Kind)}
		if d.TaskID != "" {
			fields = append(fields, "task_id", d.TaskID)
		}
		if d.Table != "" {
			fields = append(fields, "table", d.Table)
		}
		switch d.Severity {
		case diagnostics.SeverityFatal:
			l.Error(d.Message, fields...)
		case diagnostics.SeverityWarn:
			l.Warn(d.Message, fields...)
		default:
			l.Info(d.Message, fields...)
		}
	}
}
