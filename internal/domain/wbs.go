package domain

import (
	"strings"

	"github.com/xerproject/xersched/internal/xer"
)

// WBSNode is the typed view over one PROJWBS row (spec.md section 3).
type WBSNode struct {
	WBSID         string
	ShortName     string
	Name          string
	ParentWBSID   string
	HasParent     bool
	IsProjectNode bool
}

// WBSForest indexes WBS nodes by id and exposes the forest/full-code
// operations of spec.md section 3.
type WBSForest struct {
	byID  map[string]*WBSNode
	order []string
}

func buildWBSForest(file *xer.File) *WBSForest {
	table := file.Table(tblWBS)
	f := &WBSForest{byID: map[string]*WBSNode{}}
	if table == nil {
		return f
	}
	for _, row := range table.Rows {
		parent := row.Get(table, colParentWBSID)
		node := &WBSNode{
			WBSID:         row.Get(table, colWBSID),
			ShortName:     row.Get(table, colWBSShortName),
			Name:          row.Get(table, colWBSName),
			ParentWBSID:   parent,
			HasParent:     parent != "",
			IsProjectNode: row.Get(table, colProjNodeFlag) == "Y",
		}
		f.byID[node.WBSID] = node
		f.order = append(f.order, node.WBSID)
	}
	return f
}

// Node looks up a WBS node by id.
func (f *WBSForest) Node(id string) (*WBSNode, bool) {
	n, ok := f.byID[id]
	return n, ok
}

// Nodes returns all nodes in file order.
func (f *WBSForest) Nodes() []*WBSNode {
	nodes := make([]*WBSNode, 0, len(f.order))
	for _, id := range f.order {
		nodes = append(nodes, f.byID[id])
	}
	return nodes
}

// FullCode returns the dot-joined short_name chain from a project node
// exclusive to the node inclusive, per spec.md section 3.
func (f *WBSForest) FullCode(id string) string {
	var parts []string
	cursor, ok := f.byID[id]
	for ok && !cursor.IsProjectNode {
		parts = append([]string{cursor.ShortName}, parts...)
		if !cursor.HasParent {
			break
		}
		cursor, ok = f.byID[cursor.ParentWBSID]
	}
	return strings.Join(parts, ".")
}
