/**
 * CONTEXT:   Common interface for the report tree builders in this package
 * INPUT:     A scheduled entity snapshot or a window analysis result
 * OUTPUT:    Pure report-tree values with no rendering attached
 * BUSINESS:  Unified interface lets the CLI and the HTTP surface depend on
 *            one contract instead of two builder functions
 * CHANGE:    Replaced the daily/weekly/monthly generator interface with the
 *            schedule/window report builder interface
 * RISK:      Low - Interface definition with clear contracts for implementations
 */

package reporting

import (
	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/window"
)

// Builder constructs report trees from engine output. A single
// DefaultBuilder satisfies it; the interface exists so the CLI and HTTP
// surfaces can be tested against a fake without pulling in the CPM engine.
type Builder interface {
	BuildScheduleReport(m *domain.Model, g *cpm.Graph, diags *diagnostics.List) *ScheduleReport
	BuildWindowReport(r *window.Result) *WindowReport
}

// DefaultBuilder is the package's Builder implementation; it has no state
// and exists only so callers can depend on the Builder interface.
type DefaultBuilder struct{}

func (DefaultBuilder) BuildScheduleReport(m *domain.Model, g *cpm.Graph, diags *diagnostics.List) *ScheduleReport {
	return BuildScheduleReport(m, g, diags)
}

func (DefaultBuilder) BuildWindowReport(r *window.Result) *WindowReport {
	return BuildWindowReport(r)
}
