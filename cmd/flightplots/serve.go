package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"flightplots/internal/admin"
	"flightplots/internal/library"
	"flightplots/internal/metrics"
)

var (
	serveAddr    string
	serveLogsDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chart pages for a directory of logs",
	Long:  "serve watches a directory of JSONL log exports and serves one chart page per log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.ListenAddr = serveAddr
		}
		if serveLogsDir != "" {
			cfg.Server.LogsDir = serveLogsDir
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		lib, err := library.Open(ctx, cfg.Server.LogsDir)
		if err != nil {
			return err
		}
		defer lib.Close()

		events, cleanup, err := newEventWriter(cfg.Events)
		if err != nil {
			return err
		}
		defer cleanup()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if err := metrics.Register(reg); err != nil {
			return err
		}

		srv := admin.NewServer(ctx, cfg, lib, events, reg)
		return srv.Start(ctx, cfg.Server.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.listen_addr)")
	serveCmd.Flags().StringVar(&serveLogsDir, "logs", "", "Log directory (overrides server.logs_dir)")
}
