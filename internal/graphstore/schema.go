/**
 * CONTEXT:   Graph schema for the activity/relationship/calendar projection
 * INPUT:     No input - static DDL run once per Open
 * OUTPUT:    Node tables Activity and Calendar, relationship tables
 *            PRECEDES and OBSERVES, per SPEC_FULL.md section 6.4
 * BUSINESS:  The schedule-result table built by the CPM engine is the
 *            authoritative source of truth for one run; this schema is a
 *            queryable projection of it
 * CHANGE:    Initial schema, generalized from the teacher's
 *            getInitialSchema()/migrations.go pattern to the scheduling
 *            domain
 * RISK:      Low - idempotent CREATE ... IF NOT EXISTS DDL
 */

package graphstore

const schemaDDL = `
CREATE NODE TABLE IF NOT EXISTS Activity(
    task_id STRING,
    task_code STRING,
    task_name STRING,
    task_type STRING,
    wbs_id STRING,
    early_start TIMESTAMP,
    early_finish TIMESTAMP,
    late_start TIMESTAMP,
    late_finish TIMESTAMP,
    total_float_days INT64,
    is_critical BOOLEAN,
    scheduled BOOLEAN,
    PRIMARY KEY (task_id)
);

CREATE NODE TABLE IF NOT EXISTS Calendar(
    clndr_id STRING,
    name STRING,
    PRIMARY KEY (clndr_id)
);

CREATE REL TABLE IF NOT EXISTS PRECEDES(
    FROM Activity TO Activity,
    rel_kind STRING,
    lag_days INT64
);

CREATE REL TABLE IF NOT EXISTS OBSERVES(
    FROM Activity TO Calendar
);
`

func (s *Store) migrate() error {
	_, err := s.query(schemaDDL)
	return err
}
