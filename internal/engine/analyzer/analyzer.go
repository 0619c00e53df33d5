// Package analyzer binds a raw parse tree from the SQL front end
// against the catalog, producing a QueryTree the executor can run
// without ever touching table names or unvalidated literals again.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chotchki/elephantcore/internal/constants"
	"github.com/chotchki/elephantcore/internal/engine/catalog"
	"github.com/chotchki/elephantcore/internal/engine/objects"
)

// Analyzer resolves parse trees against the catalog lookup.
type Analyzer struct {
	catalog *catalog.Lookup
}

func NewAnalyzer(lookup *catalog.Lookup) *Analyzer {
	return &Analyzer{catalog: lookup}
}

// Analyze binds tree against the current catalog, producing a
// QueryTree. CreateTableCommand is DDL and is not bound here — the
// executor handles it directly against the catalog tables.
func (a *Analyzer) Analyze(tree objects.ParseTree) (objects.QueryTree, error) {
	switch t := tree.(type) {
	case objects.InsertCommand:
		return a.analyzeInsert(t)
	case objects.SelectCommand:
		return a.analyzeSelect(t)
	default:
		return objects.QueryTree{}, NotImplementedError{Kind: fmt.Sprintf("%T", tree)}
	}
}

func (a *Analyzer) analyzeInsert(cmd objects.InsertCommand) (objects.QueryTree, error) {
	table, err := a.catalog.GetDefinition(cmd.TableName)
	if err != nil {
		return objects.QueryTree{}, err
	}

	values := make([]string, len(table.Attributes))
	supplied := make([]bool, len(table.Attributes))

	if cmd.Columns == nil {
		if len(cmd.Values) != len(table.Attributes) {
			return objects.QueryTree{}, MissingColumnError{Table: cmd.TableName, Reason: "positional value count does not match column count"}
		}
		copy(values, cmd.Values)
		for i := range supplied {
			supplied[i] = true
		}
	} else {
		if len(cmd.Columns) != len(cmd.Values) {
			return objects.QueryTree{}, UnknownColumnsError{Table: cmd.TableName, Columns: cmd.Columns}
		}
		var unknown []string
		for i, col := range cmd.Columns {
			idx := table.IndexOf(col)
			if idx < 0 {
				unknown = append(unknown, col)
				continue
			}
			values[idx] = cmd.Values[i]
			supplied[idx] = true
		}
		if len(unknown) > 0 {
			return objects.QueryTree{}, UnknownColumnsError{Table: cmd.TableName, Columns: unknown}
		}
	}

	targets := make([]objects.TargetEntry, len(table.Attributes))
	bound := make([]constants.Value, len(table.Attributes))
	for i, attr := range table.Attributes {
		targets[i] = objects.TargetEntry{Attribute: attr}
		if !supplied[i] || isNullLiteral(values[i]) {
			if attr.Nullable == constants.NotNull {
				return objects.QueryTree{}, MissingColumnError{Table: cmd.TableName, Reason: fmt.Sprintf("column %q requires a value", attr.Name)}
			}
			bound[i] = nil
			continue
		}
		v, err := constants.Parse(attr.SQLType, values[i])
		if err != nil {
			return objects.QueryTree{}, err
		}
		bound[i] = v
	}

	return objects.QueryTree{
		CommandType: objects.CommandInsert,
		Targets:     targets,
		RangeTables: []objects.RangeRelation{objects.AnonymousTable{Table: table, Values: bound}},
	}, nil
}

func (a *Analyzer) analyzeSelect(cmd objects.SelectCommand) (objects.QueryTree, error) {
	table, err := a.catalog.GetDefinition(cmd.TableName)
	if err != nil {
		return objects.QueryTree{}, err
	}

	targets, err := projectionTargets(table, cmd.Columns)
	if err != nil {
		return objects.QueryTree{}, err
	}

	qt := objects.QueryTree{
		CommandType: objects.CommandSelect,
		Targets:     targets,
		RangeTables: []objects.RangeRelation{objects.RangeRelationTable{Table: table}},
	}

	if cmd.Where != nil {
		idx := table.IndexOf(cmd.Where.Column)
		if idx < 0 {
			return objects.QueryTree{}, UnknownColumnsError{Table: cmd.TableName, Columns: []string{cmd.Where.Column}}
		}
		attr := table.Attributes[idx]
		v, err := constants.Parse(attr.SQLType, cmd.Where.Value)
		if err != nil {
			return objects.QueryTree{}, err
		}
		qt.Filter = &objects.BoundFilter{Attribute: attr, Value: v}
	}

	return qt, nil
}

func projectionTargets(table *objects.Table, columns []string) ([]objects.TargetEntry, error) {
	if len(columns) == 1 && columns[0] == "*" {
		targets := make([]objects.TargetEntry, len(table.Attributes))
		for i, attr := range table.Attributes {
			targets[i] = objects.TargetEntry{Attribute: attr}
		}
		return targets, nil
	}

	var unknown []string
	targets := make([]objects.TargetEntry, 0, len(columns))
	for _, col := range columns {
		idx := table.IndexOf(col)
		if idx < 0 {
			unknown = append(unknown, col)
			continue
		}
		targets = append(targets, objects.TargetEntry{Attribute: table.Attributes[idx]})
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, UnknownColumnsError{Table: table.Name, Columns: unknown}
	}
	return targets, nil
}

func isNullLiteral(s string) bool {
	return strings.EqualFold(s, "null")
}

type NotImplementedError struct {
	Kind string
}

func (e NotImplementedError) Error() string { return "analyzer: not implemented: " + e.Kind }

type MissingColumnError struct {
	Table  string
	Reason string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("table %q: missing column: %s", e.Table, e.Reason)
}

type UnknownColumnsError struct {
	Table   string
	Columns []string
}

func (e UnknownColumnsError) Error() string {
	return fmt.Sprintf("table %q: unknown columns: %v", e.Table, e.Columns)
}
