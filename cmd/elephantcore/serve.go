package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/chotchki/elephantcore/internal/config"
	"github.com/chotchki/elephantcore/internal/engine"
	"github.com/chotchki/elephantcore/internal/server"
	"github.com/spf13/cobra"
)

type serveFlags struct {
	configPath  string
	snapshotOut string
}

func serveCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Listen for client connections and run the storage engine",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(flags)
		},
	}
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Optional TOML config file")
	cmd.Flags().StringVar(&flags.snapshotOut, "snapshot-out", "", "Write all pages here on graceful shutdown, for later 'inspect'")
	return cmd
}

func runServe(flags *serveFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	addr := server.DefaultAddr
	if cfg.ListenAddr != "" {
		addr = cfg.ListenAddr
	}

	eng := engine.New()
	srv := server.New(addr, eng.Txns, eng.Analyzer, eng.Executor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("elephantcore serving on %s\n", addr)
	serveErr := srv.Serve(ctx)

	if flags.snapshotOut != "" {
		if err := writeSnapshot(eng, flags.snapshotOut); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write snapshot: %v\n", err)
		}
	}
	return serveErr
}

func writeSnapshot(eng *engine.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return eng.IO.SnapshotTo(f)
}
