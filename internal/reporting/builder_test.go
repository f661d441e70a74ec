package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerproject/xersched/internal/calendar"
	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/window"
	"github.com/xerproject/xersched/internal/xer"
)

const allWorkingDaysData = `(0||1(0||1(s|00:00|f|23:59)()))(0||2(0||1(s|00:00|f|23:59)()))` +
	`(0||3(0||1(s|00:00|f|23:59)()))(0||4(0||1(s|00:00|f|23:59)()))(0||5(0||1(s|00:00|f|23:59)()))` +
	`(0||6(0||1(s|00:00|f|23:59)()))(0||7(0||1(s|00:00|f|23:59)()))`

const fixture = "ERMHDR\t21.12\t2024-01-01\tProject\tuser\tadmin\tDB\tProject Management\tUSD\r\n" +
	"%T\tPROJECT\r\n" +
	"%F\tproj_id\tshort_name\tplan_start_date\tlast_recalc_date\r\n" +
	"%R\tP1\tDemo\t2024-01-01 08:00\t2024-01-01 08:00\r\n" +
	"%T\tPROJWBS\r\n" +
	"%F\twbs_id\twbs_short_name\twbs_name\tparent_wbs_id\tproj_node_flag\r\n" +
	"%R\tW0\tDemo\tDemo\t\tY\r\n" +
	"%R\tW1\tPhase1\tPhase One\tW0\tN\r\n" +
	"%T\tCALENDAR\r\n" +
	"%F\tclndr_id\tclndr_name\tclndr_data\tday_hr_cnt\r\n" +
	"%R\tC1\tAllDays\t" + allWorkingDaysData + "\t8\r\n" +
	"%T\tTASK\r\n" +
	"%F\ttask_id\ttask_code\ttask_name\twbs_id\tclndr_id\ttask_type\ttarget_drtn_hr_cnt\tremain_drtn_hr_cnt\tact_start_date\tact_end_date\r\n" +
	"%R\tT1\tA1\tFirst\tW1\tC1\tTT_Task\t40\t40\t\t\r\n" +
	"%R\tT2\tA2\tSecond\tW1\tC1\tTT_Task\t24\t24\t\t\r\n" +
	"%T\tTASKPRED\r\n" +
	"%F\ttask_id\tpred_task_id\tpred_type\tlag_hr_cnt\r\n" +
	"%R\tT2\tT1\tPR_FS\t0\r\n"

func buildGraph(t *testing.T) (*domain.Model, *cpm.Graph) {
	t.Helper()
	f, err := xer.Parse([]byte(fixture))
	require.NoError(t, err)
	m, _, err := domain.Build(f)
	require.NoError(t, err)

	diags := &diagnostics.List{}
	cals := calendar.BuildSet(m.Calendars, diags)
	planStart := m.Projects[0].PlanStartDate
	g, err := cpm.Run(m, cals, cpm.DefaultConfig(), planStart, planStart, diags)
	require.NoError(t, err)
	return m, g
}

func TestBuildScheduleReportSummarizesProjectAndCriticalPath(t *testing.T) {
	m, g := buildGraph(t)
	diags := &diagnostics.List{}

	report := BuildScheduleReport(m, g, diags)

	assert.Equal(t, "P1", report.Project.ProjID)
	assert.Equal(t, 2, report.Project.ActivityCount)
	assert.Equal(t, 2, report.Project.CriticalCount)
	assert.Equal(t, []string{"T1", "T2"}, report.CriticalPath)
	require.Len(t, report.Activities, 2)
}

func TestBuildScheduleReportRollsUpWBSBreakdown(t *testing.T) {
	m, g := buildGraph(t)
	diags := &diagnostics.List{}

	report := BuildScheduleReport(m, g, diags)

	require.Len(t, report.WBSBreakdown, 1)
	wbs := report.WBSBreakdown[0]
	assert.Equal(t, "Phase1", wbs.FullCode)
	assert.Equal(t, 2, wbs.ActivityCount)
	assert.Equal(t, 2, wbs.CriticalCount)
	assert.Equal(t, 0, wbs.MinFloatDays)
}

func TestBuildScheduleReportSurfacesDiagnosticsAndInsights(t *testing.T) {
	m, g := buildGraph(t)
	diags := &diagnostics.List{}
	diags.Warnf(diagnostics.KindConstraintConflict, "T1", "example warning")

	report := BuildScheduleReport(m, g, diags)

	require.Len(t, report.Diagnostics, 1)
	assert.Contains(t, report.Insights, "1 warnings recorded during this run")
}

func TestBuildWindowReportProjectsComparisonData(t *testing.T) {
	m, g := buildGraph(t)
	planStart := m.Projects[0].PlanStartDate
	result := &window.Result{
		Ts: planStart,
		Te: planStart.AddDate(0, 0, 10),
		AtTs: window.Endpoint{DataDate: planStart, Model: m, Graph: g},
		AtTe: window.Endpoint{DataDate: planStart.AddDate(0, 0, 10), Model: m, Graph: g},
		RapidlyCompleted: []window.RapidlyCompletedActivity{
			{TaskID: "T1", PlannedDays: 5, ActualDays: 2},
		},
	}

	report := BuildWindowReport(result)

	assert.Equal(t, planStart, report.Ts)
	require.Len(t, report.RapidlyCompleted, 1)
	assert.Contains(t, report.Insights, "1 activities finished at 70% or less of their planned duration")
}
