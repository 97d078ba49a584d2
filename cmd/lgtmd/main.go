// Command lgtmd is the LGTM snippet daemon. It attaches to a Chrome
// instance, and on each trigger event fetches the catalog, picks a random
// image, and copies its markup snippet to the clipboard.
//
// Usage:
//
//	lgtmd -config lgtmd.yaml        # run with a config file
//	lgtmd                           # run with built-in defaults
//	lgtmd -mcp                      # additionally serve MCP tools on stdio
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/kkhys/lgtmd/badge"
	"github.com/kkhys/lgtmd/catalog"
	"github.com/kkhys/lgtmd/clip"
	"github.com/kkhys/lgtmd/diag"
	"github.com/kkhys/lgtmd/gate"
	"github.com/kkhys/lgtmd/internal/browser"
	"github.com/kkhys/lgtmd/internal/config"
	"github.com/kkhys/lgtmd/pick"
	"github.com/kkhys/lgtmd/snippet"
	"github.com/kkhys/lgtmd/trigger"
)

func main() {
	configPath := flag.String("config", "", "path to lgtmd.yaml config file")
	listen := flag.String("listen", "", "trigger listen address (overrides config)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	mcpStdio := flag.Bool("mcp", false, "serve MCP tools on stdio")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *listen, *mcpStdio); err != nil {
		logger.Error("lgtmd: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, listen string, mcpStdio bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if listen != "" {
		cfg.Listen = listen
	}

	// Diagnostic journal.
	db, err := sql.Open("sqlite", cfg.Diag.Path)
	if err != nil {
		return fmt.Errorf("open diag db: %w", err)
	}
	defer db.Close()
	rec, err := diag.NewRecorder(db)
	if err != nil {
		return err
	}
	go retentionLoop(ctx, logger, rec, cfg.Diag.RetentionDays)

	// Browser. The page clipboard path and the activation gate both need it;
	// a pure system-clipboard setup without a gate runs browserless.
	needBrowser := cfg.Clipboard.Mode == "page" || cfg.Gate.Suffix() != ""
	var mgr *browser.Manager
	if needBrowser {
		mgr = browser.NewManager(browser.Config{
			RemoteURL: cfg.Browser.Remote,
			Headless:  cfg.Browser.Headless,
			Logger:    logger,
		})
		if _, err := mgr.Start(ctx); err != nil {
			return fmt.Errorf("start browser: %w", err)
		}
		defer mgr.Close()

		if cfg.Browser.StartURL != "" {
			seed, err := mgr.OpenPage(ctx, cfg.Browser.StartURL)
			if err != nil {
				logger.Warn("lgtmd: seed tab failed", "url", cfg.Browser.StartURL, "error", err)
			} else {
				defer seed.Close()
			}
		}
	}

	// Activation gate: install-time lifecycle runs once here, navigation
	// events re-evaluate afterwards.
	var g *gate.Gate
	if cfg.Gate.Suffix() != "" && mgr != nil {
		g = gate.New()
		g.HandleInstalled(cfg.Gate.Suffix())
		// Seed from the tab that is already in the foreground; navigation
		// events only cover changes after this point.
		if s, err := mgr.ActivePage(ctx); err == nil {
			if loc, err := s.Location(); err == nil {
				g.OnNavigate(loc)
			}
		}
		go mgr.WatchNavigation(ctx, func(location string) {
			state := g.OnNavigate(location)
			logger.Debug("lgtmd: navigation", "location", location, "state", state.String())
		})
	}

	// Clipboard sink.
	var sink clip.Sink
	if cfg.Clipboard.Mode == "page" {
		sink = clip.NewPageSink(mgr)
	} else {
		sink = clip.NewSystemSink()
	}

	// Orchestrator.
	opts := []trigger.Option{trigger.WithRecorder(rec)}
	if g != nil {
		opts = append(opts, trigger.WithGate(g))
	}
	if mgr != nil {
		b := badge.New(browser.NewOverlayBadge(mgr), badge.Config{
			Label:    cfg.Badge.Label,
			Color:    cfg.Badge.Color,
			Duration: cfg.Badge.Duration,
			Logger:   logger,
		})
		opts = append(opts, trigger.WithBadge(b))
	}
	h := trigger.New(
		catalog.New(cfg.Origin, cfg.APIPath),
		pick.New(),
		snippet.Formatter{Origin: cfg.Origin, Ext: cfg.Extension},
		sink,
		logger,
		opts...,
	)

	// Optional MCP stdio surface.
	if mcpStdio {
		srv := mcp.NewServer(&mcp.Implementation{Name: "lgtmd", Version: "1.0.0"}, nil)
		h.RegisterMCP(srv)
		go func() {
			if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				logger.Error("lgtmd: mcp stdio", "error", err)
			}
		}()
	}

	// HTTP trigger surface.
	httpSrv := &http.Server{Addr: cfg.Listen, Handler: h.Router()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("lgtmd: listening", "addr", cfg.Listen,
		"origin", cfg.Origin, "clipboard", cfg.Clipboard.Mode)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// retentionLoop prunes the failure journal once a day.
func retentionLoop(ctx context.Context, logger *slog.Logger, rec *diag.Recorder, days int) {
	if days <= 0 {
		return
	}
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := rec.Cleanup(ctx, days); err != nil {
				logger.Warn("lgtmd: diag cleanup", "error", err)
			}
		}
	}
}
