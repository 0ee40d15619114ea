package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"
	"github.com/vietddude/wsprobe/internal/control"
	"github.com/vietddude/wsprobe/internal/core/config"
)

var (
	cfgPath        string
	isDebug        bool
	endpointURL    string
	reconnectEvery time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "wsprobe",
	Short: "WebSocket diagnostic probe",
	Long: `wsprobe keeps a single connection to a WebSocket endpoint, prints every
inbound frame (text, binary, or unknown), and reconnects forever with a fixed
delay. It never exits on its own; stop it with Ctrl-C.`,
	Run: runProbe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&endpointURL, "url", "", "endpoint URL override")
	rootCmd.Flags().DurationVar(&reconnectEvery, "reconnect-delay", 0, "reconnect delay override")
}

func runProbe(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	// Load Configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if endpointURL != "" {
		cfg.Endpoint.URL = endpointURL
	}
	if reconnectEvery > 0 {
		cfg.Endpoint.ReconnectDelay = config.Duration(reconnectEvery)
	}

	// Setup logging
	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	// Transform config
	controlCfg := control.Config{
		Port:     cfg.Server.Port,
		Endpoint: cfg.Endpoint,
		Redis:    cfg.Redis,
	}

	// Initialize Probe
	app, err := control.NewProbe(controlCfg)
	if err != nil {
		slog.Error("Failed to initialize probe", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start probe", "error", err)
		os.Exit(1)
	}

	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}

	app.Printer().Stopped()
}
