package domain

// Column names for the five tables the engine builds typed views over
// (spec.md section 4.2). Any column not named here is preserved verbatim
// in the backing xer.Table and never inspected by this package.
const (
	tblProject  = "PROJECT"
	tblWBS      = "PROJWBS"
	tblTask     = "TASK"
	tblTaskPred = "TASKPRED"
	tblCalendar = "CALENDAR"

	colProjID         = "proj_id"
	colShortName      = "short_name"
	colPlanStartDate  = "plan_start_date"
	colLastRecalcDate = "last_recalc_date"

	colWBSID          = "wbs_id"
	colWBSShortName   = "wbs_short_name"
	colWBSName        = "wbs_name"
	colParentWBSID    = "parent_wbs_id"
	colProjNodeFlag   = "proj_node_flag"

	colTaskID          = "task_id"
	colTaskCode        = "task_code"
	colTaskName        = "task_name"
	colTaskWBSID       = "wbs_id"
	colClndrID         = "clndr_id"
	colTaskType        = "task_type"
	colTargetDrtnHrCnt = "target_drtn_hr_cnt"
	colRemainDrtnHrCnt = "remain_drtn_hr_cnt"
	colActStartDate    = "act_start_date"
	colActEndDate      = "act_end_date"
	colTargetStartDate = "target_start_date"
	colTargetEndDate   = "target_end_date"
	colCstrType        = "cstr_type"
	colCstrDate        = "cstr_date"
	colCstrType2       = "cstr_type2"
	colCstrDate2       = "cstr_date2"

	colPredTaskID = "pred_task_id"
	colSuccTaskID = "task_id"
	colPredType   = "pred_type"
	colLagHrCnt   = "lag_hr_cnt"

	colClndrName = "clndr_name"
	colClndrData = "clndr_data"
	colDayHrCnt  = "day_hr_cnt"
)
