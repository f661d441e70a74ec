package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/xer"
)

const allWorkingDaysData = `(0||1(0||1(s|00:00|f|23:59)()))(0||2(0||1(s|00:00|f|23:59)()))` +
	`(0||3(0||1(s|00:00|f|23:59)()))(0||4(0||1(s|00:00|f|23:59)()))(0||5(0||1(s|00:00|f|23:59)()))` +
	`(0||6(0||1(s|00:00|f|23:59)()))(0||7(0||1(s|00:00|f|23:59)()))`

const fixture = "ERMHDR\t21.12\t2024-01-01\tProject\tuser\tadmin\tDB\tProject Management\tUSD\r\n" +
	"%T\tPROJECT\r\n" +
	"%F\tproj_id\tshort_name\tplan_start_date\tlast_recalc_date\r\n" +
	"%R\tP1\tDemo\t2024-01-01 08:00\t2024-01-01 08:00\r\n" +
	"%T\tCALENDAR\r\n" +
	"%F\tclndr_id\tclndr_name\tclndr_data\tday_hr_cnt\r\n" +
	"%R\tC1\tAllDays\t" + allWorkingDaysData + "\t8\r\n" +
	"%T\tTASK\r\n" +
	"%F\ttask_id\ttask_code\ttask_name\twbs_id\tclndr_id\ttask_type\ttarget_drtn_hr_cnt\tremain_drtn_hr_cnt\tact_start_date\tact_end_date\ttarget_start_date\ttarget_end_date\r\n" +
	"%R\tT1\tA1\tFast\t\tC1\tTT_Task\t80\t0\t2024-01-01 08:00\t2024-01-02 08:00\t2024-01-01 08:00\t2024-01-11 08:00\r\n" +
	"%R\tT2\tA2\tOngoing\t\tC1\tTT_Task\t40\t20\t2024-01-01 08:00\t\t2024-01-01 08:00\t2024-01-06 08:00\r\n"

func buildModel(t *testing.T) *domain.Model {
	t.Helper()
	f, err := xer.Parse([]byte(fixture))
	require.NoError(t, err)
	m, _, err := domain.Build(f)
	require.NoError(t, err)
	return m
}

func TestAnalyzeRapidlyCompletedActivities(t *testing.T) {
	m := buildModel(t)
	ts := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	te := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)

	diags := &diagnostics.List{}
	result, err := Analyze(m, ts, te, cpm.DefaultConfig(), []string{"T1", "T2"}, diags)
	require.NoError(t, err)

	require.Len(t, result.RapidlyCompleted, 1)
	assert.Equal(t, "T1", result.RapidlyCompleted[0].TaskID)
}

func TestAnalyzeActivitiesInPeriod(t *testing.T) {
	m := buildModel(t)
	ts := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	te := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

	diags := &diagnostics.List{}
	result, err := Analyze(m, ts, te, cpm.DefaultConfig(), nil, diags)
	require.NoError(t, err)

	assert.Contains(t, result.ActivitiesInPeriod.CompletedInPeriod, "T1")
	assert.Contains(t, result.ActivitiesInPeriod.StartedButNotFinished, "T2")
}

func TestAnalyzeMonitoredTaskReportTracksDrift(t *testing.T) {
	m := buildModel(t)
	// One day after T2's actual start, so its reprojected Ts snapshot
	// carries a nonzero progress fraction and keeps the actual start.
	ts := time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC)
	te := time.Date(2024, time.January, 20, 8, 0, 0, 0, time.UTC)

	diags := &diagnostics.List{}
	result, err := Analyze(m, ts, te, cpm.DefaultConfig(), []string{"T2"}, diags)
	require.NoError(t, err)

	require.Len(t, result.MonitoredTasks, 1)
	report := result.MonitoredTasks[0]
	assert.Equal(t, "T2", report.TaskID)
	assert.True(t, report.AtTs.StartActual)
}
