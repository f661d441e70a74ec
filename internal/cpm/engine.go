package cpm

import (
	"time"

	"github.com/xerproject/xersched/internal/calendar"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
)

// Run builds the graph for a reprojected model and runs the full
// CPM pipeline (topological sort, forward pass, backward pass, total
// float and critical path) as described in spec.md section 4.6. planStart
// is the project's plan_start_date and dataDate is the data date the
// model was reprojected to.
func Run(m *domain.Model, cals *calendar.Set, cfg Config, planStart, dataDate time.Time, diags *diagnostics.List) (*Graph, error) {
	g := Build(m, cals, cfg, diags)

	order, err := g.TopologicalOrder()
	if err != nil {
		for _, cycle := range err.(*ErrCycle).Cycles {
			diags.Warnf(diagnostics.KindCycleDetected, "", "cycle: %v", cycle)
		}
		return g, err
	}

	Forward(order, g, dataDate, planStart, diags)
	Backward(order, g, dataDate, diags)
	TotalFloat(g, dataDate, diags)

	return g, nil
}
