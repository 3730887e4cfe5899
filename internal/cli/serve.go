package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SubratDash67/iplauctionbot-sub000/internal/config"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/engine"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/httpapi"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/report"
	"github.com/SubratDash67/iplauctionbot-sub000/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr      string
	ReportDir string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the auction HTTP server",
		Long: `Start the auction engine and serve its HTTP API.

The database is created and seeded from the config file on first run.
Report files are regenerated under the report directory after each sale.

Example:
  auctiond serve --config ./auction.yaml
  auctiond serve --addr :9000 --reports ./out --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&opts.ReportDir, "reports", "reports", "directory for generated report files")

	return cmd
}

func runServe(parentCtx context.Context, opts *ServeOptions) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	addr := cfg.ListenAddr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	log.Info("opening database", "path", cfg.DBPath)
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	if err := db.InitTeams(ctx, cfg.Seeds()); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed teams", err)
	}
	if err := cfg.SeedRetained(ctx, db); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed retained players", err)
	}

	refresher := report.NewFileRefresher(db, opts.ReportDir)
	eng, err := engine.New(ctx, db, cfg.EngineRules(),
		engine.WithLogger(log),
		engine.WithRefresher(refresher),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start engine", err)
	}

	api := httpapi.NewServer(eng, log)
	defer api.Close()
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, shutting down", "signal", sig)
		case <-ctx.Done():
		}
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
	}()

	log.Info("auction server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return WrapExitError(ExitCommandError, "server failed", err)
	}
	log.Info("server stopped")
	return nil
}
