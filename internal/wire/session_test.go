package wire

import (
	"strings"
	"testing"

	"github.com/chotchki/elephantcore/internal/engine/analyzer"
	"github.com/chotchki/elephantcore/internal/engine/catalog"
	"github.com/chotchki/elephantcore/internal/engine/executor"
	"github.com/chotchki/elephantcore/internal/engine/storageio"
	"github.com/chotchki/elephantcore/internal/engine/txn"
)

func newTestSession() *Session {
	io := storageio.NewIOManager()
	rows := storageio.NewRowManager(io)
	txns := txn.NewManager()
	visible := storageio.NewVisibleRowManager(rows, txns)
	lookup := catalog.NewLookup(rows)
	az := analyzer.NewAnalyzer(lookup)
	ex := executor.NewExecutor(rows, visible)
	return &Session{txns: txns, analyzer: az, executor: ex}
}

func TestHandleCreateTableReturnsCommandFrame(t *testing.T) {
	s := newTestSession()
	frame := s.handle("CREATE TABLE widgets (id integer not null, label text)")
	if frame.MessageType != MessageCommand {
		t.Fatalf("got message type %q, want MessageCommand; payload: %s", frame.MessageType, frame.Payload)
	}
}

func TestHandleInsertThenSelectRoundTrip(t *testing.T) {
	s := newTestSession()
	if frame := s.handle("CREATE TABLE widgets (id integer not null, label text)"); frame.MessageType != MessageCommand {
		t.Fatalf("create table failed: %s", frame.Payload)
	}
	if frame := s.handle("INSERT INTO widgets VALUES (1, 'hello')"); frame.MessageType != MessageCommand {
		t.Fatalf("insert failed: %s", frame.Payload)
	}

	frame := s.handle("SELECT label FROM widgets WHERE id = 1")
	if frame.MessageType != MessageResult {
		t.Fatalf("got message type %q, want MessageResult; payload: %s", frame.MessageType, frame.Payload)
	}
	body := string(frame.Payload)
	if !strings.Contains(body, "label") || !strings.Contains(body, "hello") {
		t.Fatalf("unexpected result payload: %q", body)
	}
}

func TestHandleUnknownTableReturnsErrorFrame(t *testing.T) {
	s := newTestSession()
	frame := s.handle("SELECT * FROM nope")
	if frame.MessageType != MessageError {
		t.Fatalf("got message type %q, want MessageError", frame.MessageType)
	}
}

func TestHandleBadSQLReturnsErrorFrame(t *testing.T) {
	s := newTestSession()
	frame := s.handle("NOT EVEN SQL")
	if frame.MessageType != MessageError {
		t.Fatalf("got message type %q, want MessageError", frame.MessageType)
	}
}
