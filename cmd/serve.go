// =============================================================================
// Weighing Report - Serve Command
// =============================================================================
//
// COMMAND USAGE:
//   laporan serve [--addr :8080]
//
// Starts the HTTP service (see internal/server). When export.schedule is set
// the daily export runs alongside it. SIGINT/SIGTERM shut both down.
//
// =============================================================================

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/weighing-report/internal/scheduler"
	"github.com/ginjaninja78/weighing-report/internal/server"
	"github.com/ginjaninja78/weighing-report/pkg/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default server.addr)")
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService("")
	if err != nil {
		return err
	}

	if cfg.Export.Schedule != "" {
		sched, err := scheduler.New(svc, scheduler.Options{
			Schedule:   cfg.Export.Schedule,
			NameFormat: cfg.Export.NameFormat,
			Location:   svc.Options().Formatter.Location(),
		}, logger.Named(log, "scheduler"))
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	handler := server.NewHandler(svc, cfg.Report.PageSize, logger.Named(log, "handler"))
	srv := server.New(addr, server.NewRouter(handler, logger.Named(log, "http")), log)

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info("server stopped", zap.String("addr", addr))
	return nil
}
