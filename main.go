package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/kalite-mobile/internal/config"
	"github.com/ytget/kalite-mobile/internal/content"
	"github.com/ytget/kalite-mobile/internal/download"
	"github.com/ytget/kalite-mobile/internal/logctx"
	"github.com/ytget/kalite-mobile/internal/platform"
	"github.com/ytget/kalite-mobile/internal/progress"
	"github.com/ytget/kalite-mobile/internal/server"
	"github.com/ytget/kalite-mobile/internal/storage/sqlite"
	"github.com/ytget/kalite-mobile/internal/telemetry"
	"github.com/ytget/kalite-mobile/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "org.learningequality.kalite"
	AppName = "KA Lite"

	WindowWidth  = 480
	WindowHeight = 720
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	logger := logctx.NewLogger(os.Stdout, cfg.LogFormat, cfg.SlogLevel())
	slog.SetDefault(logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("Error: %T%v", r, r))
			panic(r)
		}
	}()

	logger.Info("KA Lite starting...", "version", version, "log_level", cfg.LogLevel, "android", platform.IsAndroid())

	if err := run(logctx.WithLogger(context.Background(), logger), cfg); err != nil {
		logger.Error("fatal error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logctx.LoggerFromContext(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// =========================================================================
	// Start Telemetry
	tel, err := telemetry.New(telemetry.Config{Enabled: cfg.MetricsEnabled, ServiceName: "kalite-mobile"})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	// =========================================================================
	// Start Database
	database, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open download store: %w", err)
	}
	defer database.Close()

	// =========================================================================
	// Start Download Service
	downloads := download.NewService(ctx, sqlite.NewDownloadRepository(database),
		download.WithMaxParallel(cfg.MaxParallel),
		download.WithMaxAttempts(cfg.MaxAttempts),
		download.WithRetryBackoff(cfg.RetryBackoff),
		download.WithTelemetry(tel),
	)

	store := content.NewStore(cfg.ContentDir)

	exercises := server.New(server.Config{
		Addr:         cfg.BindAddress(),
		Root:         cfg.ExercisesDir,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, tel)

	// =========================================================================
	// Start UI
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewMobileTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	if icon, err := ui.LoadAppIcon(); err == nil {
		myWindow.SetIcon(icon)
	}

	ui.NewRootUI(ctx, myWindow, myApp, ui.Options{
		Store:        store,
		Enqueuer:     download.NewEnqueuer(downloads, store),
		Poller:       progress.NewSource(downloads),
		Server:       exercises,
		PollInterval: cfg.PollInterval,
		Telemetry:    tel,
	})

	myApp.Lifecycle().SetOnStopped(func() {
		logger.Info("start shutdown")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(logctx.WithLogger(context.Background(), logger), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		var g errgroup.Group
		g.Go(func() error { return exercises.Shutdown(shutdownCtx) })
		g.Go(func() error { return downloads.Close(shutdownCtx) })
		g.Go(func() error { return tel.Shutdown(shutdownCtx) })

		if err := g.Wait(); err != nil {
			logger.Error("failed to shut down cleanly", "err", err)
		}
	})

	myWindow.ShowAndRun()

	return nil
}
