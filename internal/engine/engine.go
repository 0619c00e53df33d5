// Package engine wires every layer together: page store, transaction
// manager, row manager, visibility filter, catalog lookup, analyzer,
// and executor. One Engine is constructed at process startup and
// shared by every client session.
package engine

import (
	"github.com/chotchki/elephantcore/internal/engine/analyzer"
	"github.com/chotchki/elephantcore/internal/engine/catalog"
	"github.com/chotchki/elephantcore/internal/engine/executor"
	"github.com/chotchki/elephantcore/internal/engine/storageio"
	"github.com/chotchki/elephantcore/internal/engine/txn"
)

// Engine holds every shared, process-wide mutable component. Nothing
// here is bootstrapped at construction beyond the in-memory maps
// themselves: pg_class and pg_attribute's schemas are hard-coded
// constants, not rows, so the first CREATE TABLE is what allocates
// their first page.
type Engine struct {
	IO       *storageio.IOManager
	Txns     *txn.Manager
	Rows     *storageio.RowManager
	Visible  *storageio.VisibleRowManager
	Catalog  *catalog.Lookup
	Analyzer *analyzer.Analyzer
	Executor *executor.Executor
}

// New constructs a fully-wired Engine.
func New() *Engine {
	io := storageio.NewIOManager()
	txns := txn.NewManager()
	rows := storageio.NewRowManager(io)
	visible := storageio.NewVisibleRowManager(rows, txns)
	lookup := catalog.NewLookup(visible)
	az := analyzer.NewAnalyzer(lookup)
	ex := executor.NewExecutor(rows, visible)

	return &Engine{
		IO:       io,
		Txns:     txns,
		Rows:     rows,
		Visible:  visible,
		Catalog:  lookup,
		Analyzer: az,
		Executor: ex,
	}
}
