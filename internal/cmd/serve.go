package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xdg/mcphost/internal/audit"
	"github.com/xdg/mcphost/internal/clog"
	"github.com/xdg/mcphost/internal/config"
	"github.com/xdg/mcphost/internal/executor"
	"github.com/xdg/mcphost/internal/gateway"
	"github.com/xdg/mcphost/internal/llm"
	"github.com/xdg/mcphost/internal/pathutil"
	"github.com/xdg/mcphost/internal/server"
	"github.com/xdg/mcphost/internal/term"
)

var logger = clog.Component("serve")

var (
	serveListen    string
	serveAllowlist string
	serveDebug     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the mcphost HTTP server until interrupted (SIGINT/SIGTERM).

Settings come from the config file (see 'mcphost config path'); flags
override the corresponding config values. The allow-list file is re-read on
every /make request, so edits take effect without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (overrides server.listen)")
	serveCmd.Flags().StringVar(&serveAllowlist, "allowlist", "", "allow-list file (overrides make.allowlist)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}
	if serveAllowlist != "" {
		cfg.Make.Allowlist = pathutil.ExpandHome(serveAllowlist)
	}

	level := clog.ParseLevel(cfg.Log.Level)
	if serveDebug {
		level = clog.LevelDebug
	}
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = clog.DefaultLogPath()
	}
	if err := clog.Configure(clog.Options{File: logPath, Level: level}); err != nil {
		term.Warn("failed to open log file %s: %v", logPath, err)
	}
	defer func() { _ = clog.Close() }()

	srv, cleanup, err := buildServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	term.Printf("mcphost listening on http://%s\n", srv.ListenAddr())
	term.Printf("Allow-list: %s\n", cfg.Make.Allowlist)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	signal.Stop(sigChan)

	logger.Info("received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	logger.Debug("server stopped")
	return nil
}

// buildServer wires the gateway, LLM client and search settings from cfg
// into an unstarted server. The returned cleanup closes the audit log.
func buildServer(cfg *config.Config) (*server.Server, func(), error) {
	cleanup := func() {}

	opts := []gateway.Option{
		gateway.WithTool(cfg.Make.Tool),
		gateway.WithTimeout(cfg.MakeTimeout()),
	}

	auditPath := cfg.Log.Audit
	if auditPath == "" {
		auditPath = clog.AuditLogPath()
	}
	auditFile, err := audit.OpenFile(auditPath)
	if err != nil {
		logger.Warn("failed to open audit log file %s: %v", auditPath, err)
	} else {
		logger.Info("audit logging enabled: %s", auditPath)
		opts = append(opts, gateway.WithAuditLogger(audit.NewLogger(auditFile)))
		cleanup = func() { _ = auditFile.Close() }
	}

	gw := gateway.New(gateway.NewFileStore(cfg.Make.Allowlist), executor.NewRealExecutor(), opts...)

	// A broken allow-list is not fatal at startup: it is re-read per request
	// and may be fixed while the server runs.
	if targets, err := gw.Allowed(); err != nil {
		logger.Warn("allow-list %s: %v", cfg.Make.Allowlist, err)
	} else {
		logger.Info("loaded allow-list %s (%d targets)", cfg.Make.Allowlist, len(targets))
	}

	gen := llm.NewClient(cfg.LLM.URL, cfg.LLM.DefaultModel, cfg.LLMTimeout())

	srv := server.New(cfg.Server.Listen, gw, gen)
	srv.SearchExtensions = cfg.Search.Extensions
	srv.MaxBodyBytes = cfg.Server.MaxBodyBytes

	return srv, cleanup, nil
}
