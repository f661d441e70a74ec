package domain

import "github.com/xerproject/xersched/internal/diagnostics"

// validate runs the referential-integrity checks of spec.md section 4.2.
// The four checks it names there (wbs_id, clndr_id, and both relationship
// endpoints exist; relationship kind is one of the four) are recorded as
// fatal diagnostics: "Violations are collected, not thrown individually;
// construction fails with the full list or succeeds with an empty list."
// Self-loops are a narrower exclusion (spec.md section 3: "self-loops are
// rejected at load") and stay a warning — the relationship is dropped from
// scheduling, not the whole file.
func validate(m *Model, diags *diagnostics.List) {
	for _, a := range m.Activities {
		if a.WBSID != "" {
			if _, ok := m.WBS.Node(a.WBSID); !ok {
				diags.Fatalf(diagnostics.KindSchemaViolation, a.TaskID,
					"activity references unknown wbs_id %q", a.WBSID)
			}
		}
		if a.ClndrID != "" {
			if _, ok := m.CalendarsByID[a.ClndrID]; !ok {
				diags.Fatalf(diagnostics.KindSchemaViolation, a.TaskID,
					"activity references unknown clndr_id %q", a.ClndrID)
			}
		}
	}

	for _, r := range m.Relationships {
		if r.IsSelfLoop() {
			diags.Warnf(diagnostics.KindSchemaViolation, r.PredTaskID,
				"relationship from task %s to itself ignored", r.PredTaskID)
			continue
		}
		if _, ok := ParseRelKind(r.RawKind); !ok {
			diags.Fatalf(diagnostics.KindSchemaViolation, r.SuccTaskID,
				"relationship has unrecognized pred_type %q", r.RawKind)
		}
		if _, ok := m.ActivitiesByID[r.PredTaskID]; !ok {
			diags.Fatalf(diagnostics.KindSchemaViolation, r.SuccTaskID,
				"relationship references unknown predecessor task_id %q", r.PredTaskID)
		}
		if _, ok := m.ActivitiesByID[r.SuccTaskID]; !ok {
			diags.Fatalf(diagnostics.KindSchemaViolation, r.PredTaskID,
				"relationship references unknown successor task_id %q", r.SuccTaskID)
		}
	}
}
