/**
 * CONTEXT:   Write one CPM run's activity graph and schedule result into
 *            the embedded graph store
 * INPUT:     A domain.Model and its cpm.Graph
 * OUTPUT:    Activity/Calendar nodes and PRECEDES/OBSERVES relationships
 *            created in the store
 * BUSINESS:  Populates the queryable projection described in
 *            SPEC_FULL.md section 6.4; written once per run and read by
 *            the CLI's graph subcommand
 * CHANGE:    Initial writer, grounded on the teacher's
 *            KuzuActivityRepository.Save node-then-relationship sequencing
 * RISK:      Medium - large schedules issue one statement per node/edge;
 *            acceptable for the single-run, non-concurrent usage this
 *            store serves
 */

package graphstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/xerproject/xersched/internal/cpm"
	"github.com/xerproject/xersched/internal/domain"
)

// WriteGraph persists every activity, calendar, and edge in g into the
// store, replacing any rows a previous WriteGraph call left behind.
func (s *Store) WriteGraph(m *domain.Model, g *cpm.Graph) error {
	if _, err := s.query("MATCH (a:Activity) DETACH DELETE a;"); err != nil {
		return err
	}
	if _, err := s.query("MATCH (c:Calendar) DETACH DELETE c;"); err != nil {
		return err
	}

	for _, c := range m.Calendars {
		cypher := fmt.Sprintf(
			"CREATE (:Calendar {clndr_id: %s, name: %s});",
			cypherString(c.ClndrID), cypherString(c.Name))
		if _, err := s.query(cypher); err != nil {
			return err
		}
	}

	for _, n := range g.Nodes {
		cypher := fmt.Sprintf(
			"CREATE (:Activity {task_id: %s, task_code: %s, task_name: %s, task_type: %s, "+
				"wbs_id: %s, early_start: %s, early_finish: %s, late_start: %s, late_finish: %s, "+
				"total_float_days: %d, is_critical: %t, scheduled: %t});",
			cypherString(n.TaskID), cypherString(n.Activity.TaskCode), cypherString(n.Activity.TaskName),
			cypherString(string(n.TaskType)), cypherString(n.WBSID),
			cypherTimestamp(n.ES, n.Scheduled), cypherTimestamp(n.EF, n.Scheduled),
			cypherTimestamp(n.LS, n.Scheduled), cypherTimestamp(n.LF, n.Scheduled),
			n.TotalFloatDays, n.IsCritical, n.Scheduled)
		if _, err := s.query(cypher); err != nil {
			return err
		}
		if n.ClndrID != "" {
			cypher := fmt.Sprintf(
				"MATCH (a:Activity {task_id: %s}), (c:Calendar {clndr_id: %s}) CREATE (a)-[:OBSERVES]->(c);",
				cypherString(n.TaskID), cypherString(n.ClndrID))
			if _, err := s.query(cypher); err != nil {
				return err
			}
		}
	}

	for _, n := range g.Nodes {
		for _, e := range n.Successors {
			cypher := fmt.Sprintf(
				"MATCH (a:Activity {task_id: %s}), (b:Activity {task_id: %s}) "+
					"CREATE (a)-[:PRECEDES {rel_kind: %s, lag_days: %d}]->(b);",
				cypherString(e.From.TaskID), cypherString(e.To.TaskID),
				cypherString(string(e.Kind)), e.LagDays)
			if _, err := s.query(cypher); err != nil {
				return err
			}
		}
	}

	return nil
}

func cypherString(v string) string {
	escaped := strings.ReplaceAll(v, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}

func cypherTimestamp(t time.Time, has bool) string {
	if !has {
		return "NULL"
	}
	return "TIMESTAMP '" + t.Format("2006-01-02 15:04:05") + "'"
}
