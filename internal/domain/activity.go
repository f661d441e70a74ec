package domain

import (
	"time"

	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/xer"
)

// TaskType is the activity classification of spec.md section 3.
type TaskType string

const (
	TaskTypeTask              TaskType = "Task"
	TaskTypeResourceDependent TaskType = "ResourceDependent"
	TaskTypeStartMilestone    TaskType = "StartMilestone"
	TaskTypeFinishMilestone   TaskType = "FinishMilestone"
	TaskTypeLevelOfEffort     TaskType = "LevelOfEffort"
	TaskTypeWBSSummary        TaskType = "WBSSummary"
)

// taskTypeCodes maps the XER task_type enum to TaskType. Unknown codes are
// the caller's responsibility to downgrade to TaskTypeTask with a diagnostic,
// per spec.md section 6.
var taskTypeCodes = map[string]TaskType{
	"TT_Task":    TaskTypeTask,
	"TT_Rsrc":    TaskTypeResourceDependent,
	"TT_Mile":    TaskTypeStartMilestone,
	"TT_FinMile": TaskTypeFinishMilestone,
	"TT_LOE":     TaskTypeLevelOfEffort,
	"TT_WBS":     TaskTypeWBSSummary,
}

// ParseTaskType converts a raw XER task_type code into a TaskType. The
// second return value is false for an unrecognized code, in which case
// the caller should schedule the activity as TaskTypeTask with a
// diagnostic (spec.md section 6).
func ParseTaskType(code string) (TaskType, bool) {
	t, ok := taskTypeCodes[code]
	return t, ok
}

func (t TaskType) IsMilestone() bool {
	return t == TaskTypeStartMilestone || t == TaskTypeFinishMilestone
}

// ConstraintType is one of the nine constraint kinds of spec.md section 4.6.
type ConstraintType string

const (
	ConstraintMandatoryStart    ConstraintType = "MandatoryStart"
	ConstraintStartOn           ConstraintType = "StartOn"
	ConstraintStartOnOrAfter    ConstraintType = "StartOnOrAfter"
	ConstraintStartOnOrBefore   ConstraintType = "StartOnOrBefore"
	ConstraintMandatoryFinish   ConstraintType = "MandatoryFinish"
	ConstraintFinishOn          ConstraintType = "FinishOn"
	ConstraintFinishOnOrAfter   ConstraintType = "FinishOnOrAfter"
	ConstraintFinishOnOrBefore  ConstraintType = "FinishOnOrBefore"
	ConstraintAsLateAsPossible  ConstraintType = "AsLateAsPossible"
)

var constraintCodes = map[string]ConstraintType{
	"CS_MANDSTART": ConstraintMandatoryStart,
	"CS_MSO":       ConstraintStartOn,
	"CS_MSOA":      ConstraintStartOnOrAfter,
	"CS_MSOB":      ConstraintStartOnOrBefore,
	"CS_MANDFIN":   ConstraintMandatoryFinish,
	"CS_MEO":       ConstraintFinishOn,
	"CS_MEOA":      ConstraintFinishOnOrAfter,
	"CS_MEOB":      ConstraintFinishOnOrBefore,
	"CS_ALAP":      ConstraintAsLateAsPossible,
}

// ParseConstraintType converts a raw XER cstr_type code into a
// ConstraintType. ok is false for an unrecognized code (spec.md section 6:
// "ignored with a diagnostic; the activity still schedules from its logic").
func ParseConstraintType(code string) (ConstraintType, bool) {
	if code == "" {
		return "", false
	}
	c, ok := constraintCodes[code]
	return c, ok
}

// Activity is the typed view over one TASK row.
type Activity struct {
	TaskID       string
	TaskCode     string
	TaskName     string
	WBSID        string
	ClndrID      string
	TaskType     TaskType
	RawTaskType  string // original code, retained for diagnostics
	TargetDurationHours float64

	ActStartDate time.Time
	HasActStart  bool
	ActEndDate   time.Time
	HasActEnd    bool

	TargetStartDate time.Time
	HasTargetStart  bool
	TargetEndDate   time.Time
	HasTargetEnd    bool

	RemainDurationHours float64

	CstrType  ConstraintType
	HasCstr   bool
	CstrDate  time.Time
	HasCstrDate bool

	CstrType2  ConstraintType
	HasCstr2   bool
	CstrDate2  time.Time
	HasCstrDate2 bool

	table    *xer.Table
	rowIndex int
}

// IsCompleted reports whether the activity has an actual finish.
func (a *Activity) IsCompleted() bool {
	return a.HasActEnd
}

// IsStarted reports whether the activity has an actual start.
func (a *Activity) IsStarted() bool {
	return a.HasActStart
}

// SetActuals rewrites the activity's actual dates, both in the typed view
// and in the backing XER row, so serialization reflects the mutation
// (spec.md section 4.5 / 4.7).
func (a *Activity) SetActuals(start time.Time, hasStart bool, end time.Time, hasEnd bool) {
	a.ActStartDate, a.HasActStart = start, hasStart
	a.ActEndDate, a.HasActEnd = end, hasEnd
	a.writeColumn(colActStartDate, FormatDateTime(start, hasStart))
	a.writeColumn(colActEndDate, FormatDateTime(end, hasEnd))
}

// SetRemainingDurationHours rewrites the remaining-duration column.
func (a *Activity) SetRemainingDurationHours(hours float64) {
	a.RemainDurationHours = hours
	a.writeColumn(colRemainDrtnHrCnt, formatHours(hours))
}

func (a *Activity) writeColumn(column, value string) {
	if a.table == nil {
		return
	}
	a.table.Set(a.rowIndex, column, value)
}

func buildActivities(file *xer.File, diags *diagnostics.List) ([]*Activity, map[string]*Activity) {
	table := file.Table(tblTask)
	if table == nil {
		return nil, map[string]*Activity{}
	}
	activities := make([]*Activity, 0, len(table.Rows))
	byID := make(map[string]*Activity, len(table.Rows))
	for i, row := range table.Rows {
		rawType := row.Get(table, colTaskType)
		taskType, ok := ParseTaskType(rawType)
		if !ok {
			taskType = TaskTypeTask
			diags.Warnf(diagnostics.KindSchemaViolation, row.Get(table, colTaskID),
				"unrecognized task_type %q, scheduling as Task", rawType)
		}

		actStart, hasActStart := ParseDateTime(row.Get(table, colActStartDate))
		actEnd, hasActEnd := ParseDateTime(row.Get(table, colActEndDate))
		targetStart, hasTargetStart := ParseDateTime(row.Get(table, colTargetStartDate))
		targetEnd, hasTargetEnd := ParseDateTime(row.Get(table, colTargetEndDate))

		cstrType, hasCstr := ParseConstraintType(row.Get(table, colCstrType))
		if raw := row.Get(table, colCstrType); raw != "" && !hasCstr {
			diags.Warnf(diagnostics.KindConstraintConflict, row.Get(table, colTaskID),
				"unrecognized cstr_type %q, ignoring constraint", raw)
		}
		cstrDate, hasCstrDate := ParseDateTime(row.Get(table, colCstrDate))

		cstrType2, hasCstr2 := ParseConstraintType(row.Get(table, colCstrType2))
		if raw := row.Get(table, colCstrType2); raw != "" && !hasCstr2 {
			diags.Warnf(diagnostics.KindConstraintConflict, row.Get(table, colTaskID),
				"unrecognized cstr_type2 %q, ignoring constraint", raw)
		}
		cstrDate2, hasCstrDate2 := ParseDateTime(row.Get(table, colCstrDate2))

		a := &Activity{
			TaskID:              row.Get(table, colTaskID),
			TaskCode:            row.Get(table, colTaskCode),
			TaskName:            row.Get(table, colTaskName),
			WBSID:               row.Get(table, colTaskWBSID),
			ClndrID:             row.Get(table, colClndrID),
			TaskType:            taskType,
			RawTaskType:         rawType,
			TargetDurationHours: ParseHours(row.Get(table, colTargetDrtnHrCnt)),
			ActStartDate:        actStart,
			HasActStart:         hasActStart,
			ActEndDate:          actEnd,
			HasActEnd:           hasActEnd,
			TargetStartDate:     targetStart,
			HasTargetStart:      hasTargetStart,
			TargetEndDate:       targetEnd,
			HasTargetEnd:        hasTargetEnd,
			RemainDurationHours: ParseHours(row.Get(table, colRemainDrtnHrCnt)),
			CstrType:            cstrType,
			HasCstr:             hasCstr,
			CstrDate:            cstrDate,
			HasCstrDate:         hasCstrDate,
			CstrType2:           cstrType2,
			HasCstr2:            hasCstr2,
			CstrDate2:           cstrDate2,
			HasCstrDate2:        hasCstrDate2,
			table:               table,
			rowIndex:            i,
		}
		activities = append(activities, a)
		byID[a.TaskID] = a
	}
	return activities, byID
}
