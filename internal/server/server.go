// Package server runs the TCP accept loop: one goroutine per client
// connection, bounded by a weighted semaphore, with graceful shutdown
// on context cancellation. The errgroup-based lifecycle follows the
// one in solidcoredata-dca's internal/start package.
package server

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/chotchki/elephantcore/internal/engine/analyzer"
	"github.com/chotchki/elephantcore/internal/engine/executor"
	"github.com/chotchki/elephantcore/internal/engine/txn"
	"github.com/chotchki/elephantcore/internal/wire"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultAddr is the fixed listen address spec.md's external
// interfaces section calls for: no flags, no environment variables
// required by the core.
const DefaultAddr = "127.0.0.1:50000"

// MaxConcurrentClients bounds the per-client goroutine pool. Each
// client connection is an independent task multiplexed over this
// bounded pool, per spec.md §5's scheduling model.
const MaxConcurrentClients = 64

// Server accepts client connections and runs each as an independent
// task against the shared txn manager and executor.
type Server struct {
	Addr     string
	Txns     *txn.Manager
	Analyzer *analyzer.Analyzer
	Executor *executor.Executor

	sem *semaphore.Weighted
}

func New(addr string, txns *txn.Manager, az *analyzer.Analyzer, ex *executor.Executor) *Server {
	return &Server{
		Addr:     addr,
		Txns:     txns,
		Analyzer: az,
		Executor: ex,
		sem:      semaphore.NewWeighted(MaxConcurrentClients),
	}
}

// Serve listens on s.Addr and runs until ctx is canceled or the
// listener fails. Dropping a client connection is the only
// cancellation mechanism for that client's in-flight statement; it
// never leaves a partially-written page, since every page write is
// one critical section.
func (s *Server) Serve(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.Addr, err)
	}
	log.Printf("elephantcore listening on %s", s.Addr)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})
	group.Go(func() error {
		return s.acceptLoop(gctx, ln)
	})
	return group.Wait()
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := s.sem.Acquire(ctx, 1); err != nil {
			conn.Close()
			return nil
		}
		go func() {
			defer s.sem.Release(1)
			defer conn.Close()
			session := wire.NewSession(conn, s.Txns, s.Analyzer, s.Executor)
			if err := session.Serve(); err != nil {
				log.Printf("session ended: %v", err)
			}
		}()
	}
}
