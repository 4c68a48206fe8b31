package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/habitxp/habits-mcp/internal/config"
	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/i18n"
	"github.com/habitxp/habits-mcp/internal/invalidation"
	"github.com/habitxp/habits-mcp/internal/listview"
	"github.com/habitxp/habits-mcp/internal/mcp"
	"github.com/habitxp/habits-mcp/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	habitRepo := sqlite.NewHabitRepository(db)
	completionRepo := sqlite.NewCompletionRepository(db)
	spaceRepo := sqlite.NewSpaceRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	bus := invalidation.NewBus()
	locale := i18n.Match(cfg.List.Locale)

	activitySvc := activity.NewService(activityRepo, logger)
	habitSvc := habit.NewService(habitRepo, completionRepo, spaceRepo, activityRepo, bus, logger)
	spaceSvc := space.NewService(spaceRepo, habitRepo, activityRepo, bus, logger)
	listSvc := listview.NewService(habitSvc, spaceSvc, locale, bus, cfg.List.CacheTTL, logger)
	defer listSvc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	if cfg.Scheduler.ResetInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runResetLoop(ctx, logger, habitSvc, cfg.Scheduler.ResetInterval)
		}()
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Habits:   habitSvc,
			Spaces:   spaceSvc,
			Lists:    listSvc,
			Activity: activitySvc,
		},
		Resolver:      sqlite.NewAPIKeyRepository(db),
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		DefaultUser:   cfg.Auth.DefaultUser,
		Locale:        locale,
		Logger:        logger,
	})

	// Branch based on transport mode
	if cfg.Transport.Mode == "stdio" {
		err = runStdioMode(ctx, logger, mcpServer)
	} else {
		err = runHTTPMode(ctx, logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}
	stop()
	wg.Wait()
	if err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

type expiredResetter interface {
	ResetExpired(ctx context.Context) (int, error)
}

// runResetLoop sweeps expired habits once at startup and then every interval.
func runResetLoop(ctx context.Context, logger *slog.Logger, habits expiredResetter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := habits.ResetExpired(ctx); err != nil && ctx.Err() == nil {
			logger.Error("reset expired habits failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
