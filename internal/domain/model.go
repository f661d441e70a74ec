package domain

import (
	"fmt"
	"strings"

	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/xer"
)

// Model is the fully typed entity graph built from one XER file, plus the
// raw file it was built from. Every mutation made through the typed views
// (Activity.SetActuals, Project.SetLastRecalcDate, ...) is also applied to
// File, so File always re-serializes the model's current state
// (spec.md section 3, "Ownership").
type Model struct {
	File *xer.File

	Projects   []*Project
	ProjectsByID map[string]*Project

	WBS *WBSForest

	Activities   []*Activity
	ActivitiesByID map[string]*Activity

	Relationships []*Relationship

	Calendars   []*RawCalendar
	CalendarsByID map[string]*RawCalendar
}

// ValidationError reports that a file failed the referential-integrity
// checks of spec.md section 4.2: "Violations are collected, not thrown
// individually; construction fails with the full list or succeeds with an
// empty list." It wraps every fatal diagnostic from the failed Build call,
// mirroring xer.ParseError's role for the parse stage.
type ValidationError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return fmt.Sprintf("%d referential integrity violation(s): %s", len(e.Diagnostics), strings.Join(msgs, "; "))
}

// Build parses the typed entity graph out of an already-parsed XER file.
// The returned diagnostics list always carries every problem validate
// found, fatal or not, but when any of them is fatal — a dangling wbs_id,
// clndr_id, or relationship endpoint, per spec.md section 4.2 — Build also
// returns a non-nil *ValidationError and the caller must refuse the file
// rather than schedule against it.
func Build(file *xer.File) (*Model, *diagnostics.List, error) {
	diags := &diagnostics.List{}

	projects, projectsByID := buildProjects(file)
	wbs := buildWBSForest(file)
	activities, activitiesByID := buildActivities(file, diags)
	relationships := buildRelationships(file)
	calendars, calendarsByID := buildRawCalendars(file)

	m := &Model{
		File:           file,
		Projects:       projects,
		ProjectsByID:   projectsByID,
		WBS:            wbs,
		Activities:     activities,
		ActivitiesByID: activitiesByID,
		Relationships:  relationships,
		Calendars:      calendars,
		CalendarsByID:  calendarsByID,
	}

	validate(m, diags)

	if diags.HasFatal() {
		return m, diags, &ValidationError{Diagnostics: diags.Items()}
	}
	return m, diags, nil
}

// SubsetByWBS returns a new Model containing only the activities whose
// wbs_id is the given wbsID or a descendant of it, along with the
// relationships and calendars those activities reference. This is a pure
// projection: the receiver is left unmodified (SPEC_FULL.md section 4
// supplemental feature, grounded on original_source/local/split.py).
func (m *Model) SubsetByWBS(wbsID string) *Model {
	keepWBS := map[string]bool{wbsID: true}
	for _, n := range m.WBS.Nodes() {
		if isDescendant(m.WBS, n.WBSID, wbsID) {
			keepWBS[n.WBSID] = true
		}
	}

	clone := m.File.Clone()

	keptTaskIDs := map[string]bool{}
	if table := clone.Table(tblTask); table != nil {
		var keptRows []xer.Row
		for _, row := range table.Rows {
			if keepWBS[row.Get(table, colTaskWBSID)] {
				keptRows = append(keptRows, row)
				keptTaskIDs[row.Get(table, colTaskID)] = true
			}
		}
		table.Rows = keptRows
	}

	if table := clone.Table(tblTaskPred); table != nil {
		var keptRows []xer.Row
		for _, row := range table.Rows {
			if keptTaskIDs[row.Get(table, colPredTaskID)] && keptTaskIDs[row.Get(table, colSuccTaskID)] {
				keptRows = append(keptRows, row)
			}
		}
		table.Rows = keptRows
	}

	if table := clone.Table(tblWBS); table != nil {
		var keptRows []xer.Row
		for _, row := range table.Rows {
			if keepWBS[row.Get(table, colWBSID)] {
				keptRows = append(keptRows, row)
			}
		}
		table.Rows = keptRows
	}

	subset, _, _ := Build(clone)
	return subset
}

func isDescendant(f *WBSForest, candidate, ancestor string) bool {
	cursor, ok := f.Node(candidate)
	for ok {
		if cursor.WBSID == ancestor {
			return true
		}
		if !cursor.HasParent {
			return false
		}
		cursor, ok = f.Node(cursor.ParentWBSID)
	}
	return false
}
