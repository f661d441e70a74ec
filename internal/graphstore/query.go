/**
 * CONTEXT:   Read-back queries over the activity graph store
 * INPUT:     Cypher MATCH queries with no external parameters (the store
 *            serves one process's own just-written data)
 * OUTPUT:    Typed rows for the CLI's graph subcommand
 * BUSINESS:  The graph store is a queryable projection, not the system of
 *            record; these are read-only conveniences over WriteGraph's
 *            output
 * CHANGE:    Initial read queries, grounded on the teacher's
 *            FindByID/executeFindQuery HasNext/Next/Close cursor pattern
 * RISK:      Low - read-only queries over a single-run store
 */

package graphstore

import "fmt"

// ActivityRow is one row of the Activity node table.
type ActivityRow struct {
	TaskID         string
	TaskCode       string
	TaskName       string
	TaskType       string
	WBSID          string
	TotalFloatDays int64
	IsCritical     bool
	Scheduled      bool
}

// ListActivities returns every activity node, ordered by task_id.
func (s *Store) ListActivities() ([]ActivityRow, error) {
	result, err := s.query(
		"MATCH (a:Activity) RETURN a.task_id, a.task_code, a.task_name, a.task_type, " +
			"a.wbs_id, a.total_float_days, a.is_critical, a.scheduled ORDER BY a.task_id;")
	if err != nil {
		return nil, err
	}
	defer result.Close()

	var rows []ActivityRow
	for result.HasNext() {
		record, err := result.Next()
		if err != nil {
			return nil, fmt.Errorf("graphstore: read activity row: %w", err)
		}
		row, err := activityRowFromRecord(record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CriticalPathTaskIDs returns the task ids flagged critical in the store.
func (s *Store) CriticalPathTaskIDs() ([]string, error) {
	result, err := s.query(
		"MATCH (a:Activity) WHERE a.is_critical = true RETURN a.task_id ORDER BY a.task_id;")
	if err != nil {
		return nil, err
	}
	defer result.Close()

	var ids []string
	for result.HasNext() {
		record, err := result.Next()
		if err != nil {
			return nil, fmt.Errorf("graphstore: read critical path row: %w", err)
		}
		id, ok := record[0].(string)
		if !ok {
			return nil, fmt.Errorf("graphstore: unexpected task_id type %T", record[0])
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func activityRowFromRecord(record []interface{}) (ActivityRow, error) {
	if len(record) < 8 {
		return ActivityRow{}, fmt.Errorf("graphstore: activity record has %d columns, want 8", len(record))
	}
	row := ActivityRow{}
	var ok bool
	if row.TaskID, ok = record[0].(string); !ok {
		return ActivityRow{}, fmt.Errorf("graphstore: task_id column is %T", record[0])
	}
	row.TaskCode, _ = record[1].(string)
	row.TaskName, _ = record[2].(string)
	row.TaskType, _ = record[3].(string)
	row.WBSID, _ = record[4].(string)
	switch v := record[5].(type) {
	case int64:
		row.TotalFloatDays = v
	case int32:
		row.TotalFloatDays = int64(v)
	}
	row.IsCritical, _ = record[6].(bool)
	row.Scheduled, _ = record[7].(bool)
	return row, nil
}
