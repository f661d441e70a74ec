package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerproject/xersched/internal/xer"
)

const sampleSchedule = "ERMHDR\t21.12\t2024-01-01\tProject\tuser\tadmin\tDB\tProject Management\tUSD\r\n" +
	"%T\tPROJECT\r\n" +
	"%F\tproj_id\tshort_name\tplan_start_date\tlast_recalc_date\r\n" +
	"%R\tP1\tDemo\t2024-01-01 08:00\t2024-01-10 08:00\r\n" +
	"%T\tPROJWBS\r\n" +
	"%F\twbs_id\twbs_short_name\twbs_name\tparent_wbs_id\tproj_node_flag\r\n" +
	"%R\tW0\tDemo\tDemo Root\t\tY\r\n" +
	"%R\tW1\tPhase1\tPhase One\tW0\tN\r\n" +
	"%T\tCALENDAR\r\n" +
	"%F\tclndr_id\tclndr_name\tclndr_data\tday_hr_cnt\r\n" +
	"%R\tC1\tStandard\t()\t8\r\n" +
	"%T\tTASK\r\n" +
	"%F\ttask_id\ttask_code\ttask_name\twbs_id\tclndr_id\ttask_type\ttarget_drtn_hr_cnt\tremain_drtn_hr_cnt\tact_start_date\tact_end_date\tcstr_type\tcstr_date\tcstr_type2\tcstr_date2\r\n" +
	"%R\tT1\tA1000\tDig foundation\tW1\tC1\tTT_Task\t40\t40\t\t\t\t\t\t\r\n" +
	"%R\tT2\tA1010\tPour slab\tW1\tC1\tTT_Task\t16\t16\t\t\t\t\t\t\r\n" +
	"%T\tTASKPRED\r\n" +
	"%F\ttask_id\tpred_task_id\tpred_type\tlag_hr_cnt\r\n" +
	"%R\tT2\tT1\tPR_FS\t0\r\n"

func parseSample(t *testing.T) *xer.File {
	t.Helper()
	f, err := xer.Parse([]byte(sampleSchedule))
	require.NoError(t, err)
	return f
}

func TestBuildPopulatesAllEntities(t *testing.T) {
	file := parseSample(t)
	m, diags, err := Build(file)
	require.NoError(t, err)
	assert.Empty(t, diags.Items())

	require.Len(t, m.Projects, 1)
	assert.Equal(t, "P1", m.Projects[0].ProjID)

	require.Len(t, m.Activities, 2)
	assert.Equal(t, "T1", m.Activities[0].TaskID)
	assert.Equal(t, TaskTypeTask, m.Activities[0].TaskType)

	require.Len(t, m.Relationships, 1)
	assert.Equal(t, RelFinishToStart, m.Relationships[0].Kind)

	require.Len(t, m.Calendars, 1)
	assert.Equal(t, 8.0, m.Calendars[0].DayHrCnt)
}

func TestWBSFullCode(t *testing.T) {
	file := parseSample(t)
	m, _, err := Build(file)
	require.NoError(t, err)

	assert.Equal(t, "", m.WBS.FullCode("W0"))
	assert.Equal(t, "Phase1", m.WBS.FullCode("W1"))
}

func TestActivitySetActualsWritesBackingRow(t *testing.T) {
	file := parseSample(t)
	m, _, err := Build(file)
	require.NoError(t, err)

	a := m.ActivitiesByID["T1"]
	start, _ := ParseDateTime("2024-02-01 08:00")
	a.SetActuals(start, true, time.Time{}, false)

	table := m.File.Table(tblTask)
	row := table.Rows[0]
	assert.Equal(t, "2024-02-01 08:00", row.Get(table, colActStartDate))
	assert.True(t, a.IsStarted())
	assert.False(t, a.IsCompleted())
}

func TestUnknownWBSReferenceIsFatal(t *testing.T) {
	file := parseSample(t)
	table := file.Table(tblTask)
	table.Set(0, colTaskWBSID, "W999")

	m, diags, err := Build(file)
	require.Len(t, m.Activities, 2)
	require.True(t, diags.HasFatal())

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	found := false
	for _, d := range verr.Diagnostics {
		if d.TaskID == "T1" {
			found = true
		}
	}
	assert.True(t, found, "expected a fatal diagnostic for the unknown wbs_id reference")
}

func TestSelfLoopRelationshipIsDiagnosedAndExcludedFromValidation(t *testing.T) {
	file := parseSample(t)
	predTable := file.Table(tblTaskPred)
	predTable.Rows = append(predTable.Rows, predTable.Rows[0])
	predTable.Set(len(predTable.Rows)-1, colPredTaskID, "T1")
	predTable.Set(len(predTable.Rows)-1, colSuccTaskID, "T1")

	m, diags, err := Build(file)
	require.NoError(t, err)
	require.Len(t, m.Relationships, 2)

	var messages []string
	for _, d := range diags.Items() {
		messages = append(messages, d.Message)
	}
	assert.Contains(t, strings.Join(messages, "\n"), "itself")
}

func TestSubsetByWBSKeepsOnlyMatchingActivitiesAndRelationships(t *testing.T) {
	file := parseSample(t)
	m, _, err := Build(file)
	require.NoError(t, err)

	subset := m.SubsetByWBS("W1")
	require.Len(t, subset.Activities, 2)
	require.Len(t, subset.Relationships, 1)

	empty := m.SubsetByWBS("W999")
	require.Len(t, empty.Activities, 0)
}
