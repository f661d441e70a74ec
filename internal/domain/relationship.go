package domain

import (
	"strconv"
	"strings"

	"github.com/xerproject/xersched/internal/xer"
)

// RelKind is one of the four logical relationship kinds of spec.md
// section 3: finish-to-start, start-to-start, finish-to-finish,
// start-to-finish.
type RelKind string

const (
	RelFinishToStart RelKind = "FS"
	RelStartToStart  RelKind = "SS"
	RelFinishToFinish RelKind = "FF"
	RelStartToFinish RelKind = "SF"
)

// ParseRelKind derives the relationship kind from the last two characters
// of the raw pred_type code (e.g. "PR_FS" -> "FS"), the convention used
// throughout the original exports.
func ParseRelKind(predType string) (RelKind, bool) {
	if len(predType) < 2 {
		return "", false
	}
	switch suffix := predType[len(predType)-2:]; suffix {
	case "FS":
		return RelFinishToStart, true
	case "SS":
		return RelStartToStart, true
	case "FF":
		return RelFinishToFinish, true
	case "SF":
		return RelStartToFinish, true
	default:
		return "", false
	}
}

// Relationship is the typed view over one TASKPRED row.
type Relationship struct {
	PredTaskID string
	SuccTaskID string
	Kind       RelKind
	RawKind    string
	LagHours   float64
}

func buildRelationships(file *xer.File) []*Relationship {
	table := file.Table(tblTaskPred)
	if table == nil {
		return nil
	}
	rels := make([]*Relationship, 0, len(table.Rows))
	for _, row := range table.Rows {
		raw := row.Get(table, colPredType)
		kind, ok := ParseRelKind(raw)
		if !ok {
			kind = RelFinishToStart
		}
		rels = append(rels, &Relationship{
			PredTaskID: row.Get(table, colPredTaskID),
			SuccTaskID: row.Get(table, colSuccTaskID),
			Kind:       kind,
			RawKind:    raw,
			LagHours:   parseLagHours(row.Get(table, colLagHrCnt)),
		})
	}
	return rels
}

func parseLagHours(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// IsSelfLoop reports whether the relationship's predecessor and successor
// are the same activity, a condition spec.md section 4.2 requires be
// collected as a diagnostic and excluded from the graph rather than
// causing the build to fail outright.
func (r *Relationship) IsSelfLoop() bool {
	return r.PredTaskID != "" && r.PredTaskID == r.SuccTaskID
}
