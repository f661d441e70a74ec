package cpm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerproject/xersched/internal/calendar"
	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/xer"
)

// allWorkingDaysCalendar treats every day of the week as a working day so
// tests can reason in plain calendar-day arithmetic.
const allWorkingDaysData = `(0||1(0||1(s|00:00|f|23:59)()))(0||2(0||1(s|00:00|f|23:59)()))` +
	`(0||3(0||1(s|00:00|f|23:59)()))(0||4(0||1(s|00:00|f|23:59)()))(0||5(0||1(s|00:00|f|23:59)()))` +
	`(0||6(0||1(s|00:00|f|23:59)()))(0||7(0||1(s|00:00|f|23:59)()))`

func buildModel(t *testing.T, fixture string) (*domain.Model, *calendar.Set) {
	t.Helper()
	f, err := xer.Parse([]byte(fixture))
	require.NoError(t, err)
	m, _, err := domain.Build(f)
	require.NoError(t, err)

	diags := &diagnostics.List{}
	cals := calendar.BuildSet(m.Calendars, diags)
	return m, cals
}

const chainFixture = "ERMHDR\t21.12\t2024-01-01\tProject\tuser\tadmin\tDB\tProject Management\tUSD\r\n" +
	"%T\tPROJECT\r\n" +
	"%F\tproj_id\tshort_name\tplan_start_date\tlast_recalc_date\r\n" +
	"%R\tP1\tDemo\t2024-01-01 08:00\t2024-01-01 08:00\r\n" +
	"%T\tCALENDAR\r\n" +
	"%F\tclndr_id\tclndr_name\tclndr_data\tday_hr_cnt\r\n" +
	"%R\tC1\tAllDays\t" + allWorkingDaysData + "\t8\r\n" +
	"%T\tTASK\r\n" +
	"%F\ttask_id\ttask_code\ttask_name\twbs_id\tclndr_id\ttask_type\ttarget_drtn_hr_cnt\tremain_drtn_hr_cnt\tact_start_date\tact_end_date\r\n" +
	"%R\tT1\tA1\tFirst\t\tC1\tTT_Task\t40\t40\t\t\r\n" +
	"%R\tT2\tA2\tSecond\t\tC1\tTT_Task\t24\t24\t\t\r\n" +
	"%T\tTASKPRED\r\n" +
	"%F\ttask_id\tpred_task_id\tpred_type\tlag_hr_cnt\r\n" +
	"%R\tT2\tT1\tPR_FS\t0\r\n"

func TestForwardPassChainsFSRelationship(t *testing.T) {
	m, cals := buildModel(t, chainFixture)
	cfg := DefaultConfig()
	planStart := m.Projects[0].PlanStartDate
	dataDate := planStart

	diags := &diagnostics.List{}
	g, err := Run(m, cals, cfg, planStart, dataDate, diags)
	require.NoError(t, err)

	n1, _ := g.Node("T1")
	n2, _ := g.Node("T2")

	assert.Equal(t, planStart, n1.ES)
	assert.Equal(t, planStart.AddDate(0, 0, 5), n1.EF) // 40h / 8h = 5 days
	assert.True(t, n2.ES.Equal(n1.EF))
	assert.True(t, n2.EF.Equal(n1.EF.AddDate(0, 0, 3))) // 24h / 8h = 3 days
}

func TestCriticalPathIncludesZeroFloatChain(t *testing.T) {
	m, cals := buildModel(t, chainFixture)
	cfg := DefaultConfig()
	planStart := m.Projects[0].PlanStartDate

	diags := &diagnostics.List{}
	g, err := Run(m, cals, cfg, planStart, planStart, diags)
	require.NoError(t, err)

	critical := CriticalPath(g)
	require.Len(t, critical, 2)
	assert.Equal(t, "T1", critical[0].TaskID)
	assert.Equal(t, "T2", critical[1].TaskID)
}

const cycleFixture = "ERMHDR\t21.12\t2024-01-01\tProject\tuser\tadmin\tDB\tProject Management\tUSD\r\n" +
	"%T\tPROJECT\r\n" +
	"%F\tproj_id\tshort_name\tplan_start_date\tlast_recalc_date\r\n" +
	"%R\tP1\tDemo\t2024-01-01 08:00\t2024-01-01 08:00\r\n" +
	"%T\tTASK\r\n" +
	"%F\ttask_id\ttask_code\ttask_name\twbs_id\tclndr_id\ttask_type\ttarget_drtn_hr_cnt\tremain_drtn_hr_cnt\tact_start_date\tact_end_date\r\n" +
	"%R\tT1\tA1\tFirst\t\t\tTT_Task\t8\t8\t\t\r\n" +
	"%R\tT2\tA2\tSecond\t\t\tTT_Task\t8\t8\t\t\r\n" +
	"%T\tTASKPRED\r\n" +
	"%F\ttask_id\tpred_task_id\tpred_type\tlag_hr_cnt\r\n" +
	"%R\tT2\tT1\tPR_FS\t0\r\n" +
	"%R\tT1\tT2\tPR_FS\t0\r\n"

func TestRunDetectsCycleAndDoesNotAutoRepair(t *testing.T) {
	m, cals := buildModel(t, cycleFixture)
	cfg := DefaultConfig()
	planStart := m.Projects[0].PlanStartDate

	diags := &diagnostics.List{}
	_, err := Run(m, cals, cfg, planStart, planStart, diags)
	require.Error(t, err)

	var cycleErr *ErrCycle
	require.ErrorAs(t, err, &cycleErr)
	assert.NotEmpty(t, cycleErr.Cycles)

	found := false
	for _, d := range diags.Items() {
		if d.Kind == diagnostics.KindCycleDetected {
			found = true
		}
	}
	assert.True(t, found)
}

const constraintFixture = "ERMHDR\t21.12\t2024-01-01\tProject\tuser\tadmin\tDB\tProject Management\tUSD\r\n" +
	"%T\tPROJECT\r\n" +
	"%F\tproj_id\tshort_name\tplan_start_date\tlast_recalc_date\r\n" +
	"%R\tP1\tDemo\t2024-01-01 08:00\t2024-01-01 08:00\r\n" +
	"%T\tCALENDAR\r\n" +
	"%F\tclndr_id\tclndr_name\tclndr_data\tday_hr_cnt\r\n" +
	"%R\tC1\tAllDays\t" + allWorkingDaysData + "\t8\r\n" +
	"%T\tTASK\r\n" +
	"%F\ttask_id\ttask_code\ttask_name\twbs_id\tclndr_id\ttask_type\ttarget_drtn_hr_cnt\tremain_drtn_hr_cnt\tact_start_date\tact_end_date\tcstr_type\tcstr_date\r\n" +
	"%R\tT1\tA1\tPinned\t\tC1\tTT_Task\t8\t8\t\t\tCS_MANDSTART\t2024-03-01 08:00\r\n"

func TestMandatoryStartConstraintPinsEarlyStart(t *testing.T) {
	m, cals := buildModel(t, constraintFixture)
	cfg := DefaultConfig()
	planStart := m.Projects[0].PlanStartDate

	diags := &diagnostics.List{}
	g, err := Run(m, cals, cfg, planStart, planStart, diags)
	require.NoError(t, err)

	n, _ := g.Node("T1")
	want, _ := domain.ParseDateTime("2024-03-01 08:00")
	assert.True(t, n.ES.Equal(want))
}
