package wire

import (
	"fmt"
	"net"

	"github.com/chotchki/elephantcore/internal/engine/analyzer"
	"github.com/chotchki/elephantcore/internal/engine/executor"
	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/sqlfront"
	"github.com/chotchki/elephantcore/internal/engine/txn"
)

// Session owns one client connection. There is no implicit
// multi-statement transaction: each top-level statement begins its
// own xid and commits on success. On error there is no automatic
// rollback — the error frame is reported back and the xid stays
// InProgress; no statement this session accepts aborts it.
type Session struct {
	conn     net.Conn
	txns     *txn.Manager
	analyzer *analyzer.Analyzer
	executor *executor.Executor
}

func NewSession(conn net.Conn, txns *txn.Manager, az *analyzer.Analyzer, ex *executor.Executor) *Session {
	return &Session{conn: conn, txns: txns, analyzer: az, executor: ex}
}

// Serve loops: read a frame, run its payload as one SQL statement,
// write back a result or error frame. It returns when the connection
// is closed or a frame fails to read.
func (s *Session) Serve() error {
	defer s.conn.Close()
	for {
		frame, err := ReadFrame(s.conn)
		if err != nil {
			return err
		}
		if frame.MessageType != MessageQuery {
			if err := s.writeError(fmt.Errorf("wire: unsupported message type %q", frame.MessageType)); err != nil {
				return err
			}
			continue
		}

		reply := s.handle(string(frame.Payload))
		if err := WriteFrame(s.conn, reply); err != nil {
			return err
		}
	}
}

func (s *Session) handle(sql string) Frame {
	tree, err := sqlfront.Parse(sql)
	if err != nil {
		return errorFrame(err)
	}

	xid := s.txns.Begin()

	if create, ok := tree.(objects.CreateTableCommand); ok {
		if _, err := s.executor.ExecuteUtility(xid, create); err != nil {
			return errorFrame(err)
		}
		if err := s.txns.Commit(xid); err != nil {
			return errorFrame(err)
		}
		return Frame{MessageType: MessageCommand, Payload: []byte("CREATE TABLE")}
	}

	qt, err := s.analyzer.Analyze(tree)
	if err != nil {
		return errorFrame(err)
	}

	result, err := s.executor.ExecutePlan(xid, qt)
	if err != nil {
		return errorFrame(err)
	}
	if err := s.txns.Commit(xid); err != nil {
		return errorFrame(err)
	}

	return resultFrame(result)
}

func (s *Session) writeError(err error) error {
	return WriteFrame(s.conn, errorFrame(err))
}

func errorFrame(err error) Frame {
	return Frame{MessageType: MessageError, Payload: []byte(err.Error())}
}

func resultFrame(res *executor.Result) Frame {
	if res == nil || res.Columns == nil {
		return Frame{MessageType: MessageCommand, Payload: []byte("OK")}
	}
	payload := encodeResult(res)
	return Frame{MessageType: MessageResult, Payload: payload}
}
