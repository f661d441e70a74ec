package reproject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xerproject/xersched/internal/domain"
	"github.com/xerproject/xersched/internal/xer"
)

const fixture = "ERMHDR\t21.12\t2024-01-01\tProject\tuser\tadmin\tDB\tProject Management\tUSD\r\n" +
	"%T\tPROJECT\r\n" +
	"%F\tproj_id\tshort_name\tplan_start_date\tlast_recalc_date\r\n" +
	"%R\tP1\tDemo\t2024-01-01 08:00\t2024-01-01 08:00\r\n" +
	"%T\tTASK\r\n" +
	"%F\ttask_id\ttask_code\ttask_name\twbs_id\tclndr_id\ttask_type\ttarget_drtn_hr_cnt\tremain_drtn_hr_cnt\tact_start_date\tact_end_date\r\n" +
	"%R\tT1\tA1\tNot started\t\t\tTT_Task\t80\t80\t\t\r\n" +
	"%R\tT2\tA2\tFinished\t\t\tTT_Task\t80\t0\t2024-01-01 08:00\t2024-01-05 08:00\r\n" +
	"%R\tT3\tA3\tHalfway\t\t\tTT_Task\t80\t40\t2024-01-01 08:00\t\r\n"

func build(t *testing.T) *domain.Model {
	t.Helper()
	f, err := xer.Parse([]byte(fixture))
	require.NoError(t, err)
	m, _, err := domain.Build(f)
	require.NoError(t, err)
	return m
}

func TestToDateClearsNotStartedActivity(t *testing.T) {
	m := build(t)
	dataDate := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	result := ToDate(m, dataDate, 8)

	a := result.Model.ActivitiesByID["T1"]
	assert.False(t, a.HasActStart)
	assert.False(t, a.HasActEnd)
	assert.Equal(t, 80.0, a.RemainDurationHours)
}

func TestToDateLeavesCompletedActivityUntouched(t *testing.T) {
	m := build(t)
	dataDate := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	result := ToDate(m, dataDate, 8)

	a := result.Model.ActivitiesByID["T2"]
	assert.True(t, a.HasActStart)
	assert.True(t, a.HasActEnd)
	assert.Equal(t, 0.0, a.RemainDurationHours)
}

func TestToDateResetsActivityThatHasNotYetStartedAsOfDataDate(t *testing.T) {
	m := build(t)
	dataDate := time.Date(2023, time.December, 1, 8, 0, 0, 0, time.UTC)
	result := ToDate(m, dataDate, 8)

	a := result.Model.ActivitiesByID["T3"]
	assert.False(t, a.HasActStart)
	assert.Equal(t, 80.0, a.RemainDurationHours)
}

func TestToDateComputesPartialProgress(t *testing.T) {
	m := build(t)
	// Seed scenario S2: 4 calendar days into an 80-hour (10-workday at
	// 8h/day) target, starting 2024-01-01 08:00, gives p=0.4 once elapsed
	// wall-clock time is put on the same 8h/day basis as the target hours.
	dataDate := time.Date(2024, time.January, 5, 8, 0, 0, 0, time.UTC)
	result := ToDate(m, dataDate, 8)

	a := result.Model.ActivitiesByID["T3"]
	assert.True(t, a.HasActStart)
	assert.False(t, a.HasActEnd)
	assert.InDelta(t, 48.0, a.RemainDurationHours, 0.001)
}

func TestToDateClampsOverrunInProgressActivityToZeroRemaining(t *testing.T) {
	m := build(t)
	// 30 calendar days into an 80-hour/10-workday target with no recorded
	// actual finish: progress clamps to 1.0 and remaining duration clamps
	// to zero rather than going negative.
	dataDate := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC).AddDate(0, 0, 30)
	result := ToDate(m, dataDate, 8)

	a := result.Model.ActivitiesByID["T3"]
	require.False(t, a.HasActEnd)
	assert.Equal(t, 0.0, a.RemainDurationHours)
}

func TestToDateSetsProjectLastRecalcDate(t *testing.T) {
	m := build(t)
	dataDate := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	result := ToDate(m, dataDate, 8)

	assert.True(t, result.Model.Projects[0].LastRecalcDate.Equal(dataDate))
}

func TestToDateDoesNotMutateSourceModel(t *testing.T) {
	m := build(t)
	dataDate := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	ToDate(m, dataDate, 8)

	original := m.ActivitiesByID["T3"]
	assert.True(t, original.HasActStart)
	assert.Equal(t, 40.0, original.RemainDurationHours)
}
