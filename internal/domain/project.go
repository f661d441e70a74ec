package domain

import (
	"time"

	"github.com/xerproject/xersched/internal/xer"
)

// Project is the typed view over one PROJECT row (spec.md section 3).
type Project struct {
	ProjID         string
	ShortName      string
	PlanStartDate  time.Time
	LastRecalcDate time.Time

	table    *xer.Table
	rowIndex int
}

// SetLastRecalcDate rewrites the project's data date, both in the typed
// view and the backing row, per spec.md section 4.5 step 4.
func (p *Project) SetLastRecalcDate(t time.Time) {
	p.LastRecalcDate = t
	if p.table != nil {
		p.table.Set(p.rowIndex, colLastRecalcDate, FormatDateTime(t, true))
	}
}

func buildProjects(file *xer.File) ([]*Project, map[string]*Project) {
	table := file.Table(tblProject)
	if table == nil {
		return nil, map[string]*Project{}
	}
	projects := make([]*Project, 0, len(table.Rows))
	byID := make(map[string]*Project, len(table.Rows))
	for i, row := range table.Rows {
		planStart, _ := ParseDateTime(row.Get(table, colPlanStartDate))
		recalc, _ := ParseDateTime(row.Get(table, colLastRecalcDate))
		p := &Project{
			ProjID:         row.Get(table, colProjID),
			ShortName:      row.Get(table, colShortName),
			PlanStartDate:  planStart,
			LastRecalcDate: recalc,
			table:          table,
			rowIndex:       i,
		}
		projects = append(projects, p)
		byID[p.ProjID] = p
	}
	return projects, byID
}
