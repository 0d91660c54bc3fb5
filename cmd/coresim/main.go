package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/endix-foundation/hyper-evm-lib/config"
	"github.com/endix-foundation/hyper-evm-lib/internal/adapters/hypercore"
	"github.com/endix-foundation/hyper-evm-lib/internal/adapters/notify"
	"github.com/endix-foundation/hyper-evm-lib/internal/adapters/remote"
	"github.com/endix-foundation/hyper-evm-lib/internal/adapters/storage"
	"github.com/endix-foundation/hyper-evm-lib/internal/fixture"
	"github.com/endix-foundation/hyper-evm-lib/internal/ports"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	fork := flag.Bool("fork", false, "initialize against a live network snapshot")
	rpcURL := flag.String("rpc", "", "fork-mode RPC endpoint (overrides config)")
	table := flag.Bool("table", false, "print full provision table (default: compact 1-line)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err, "path", *configPath)
			os.Exit(1)
		}
	} else {
		cfg = config.Default()
	}

	if *fork {
		cfg.Fixture.ForkMode = true
	}
	if *rpcURL != "" {
		cfg.Fixture.RPCURL = *rpcURL
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("coresim starting",
		"fork_mode", cfg.Fixture.ForkMode,
		"rpc_url", cfg.Fixture.RPCURL,
		"cache_dsn", cfg.Fixture.CacheDSN,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := fixture.Options{
		ForkMode: cfg.Fixture.ForkMode,
		RPCURL:   cfg.Fixture.RPCURL,
		CacheDSN: cfg.Fixture.CacheDSN,
	}

	p := fixture.New(opts, dialFunc(opts.CacheDSN), newCore).
		WithReporter(notify.NewConsole(*table))

	fx, err := p.Provision(ctx)
	if err != nil {
		slog.Error("fixture setup failed", "err", err)
		os.Exit(1)
	}
	defer fx.Close()

	slog.Info("coresim done", "run_id", fx.RunID, "mode", fx.Strategy.Mode.String())
}

// dialFunc arma la conexión fork, envuelta en el cache de lecturas si hay
// DSN configurado. El cache es opcional: si no abre, se sigue sin él.
func dialFunc(cacheDSN string) fixture.DialFunc {
	return func(ctx context.Context, endpoint, runID string) (ports.RemoteReader, error) {
		client, err := remote.Dial(ctx, endpoint)
		if err != nil {
			return nil, err
		}

		if cacheDSN == "" {
			return client, nil
		}

		cache, err := storage.NewSQLiteCache(cacheDSN)
		if err != nil {
			slog.Warn("read cache unavailable, continuing without it", "err", err, "dsn", cacheDSN)
			return client, nil
		}
		return remote.NewCachedReader(client, cache, runID), nil
	}
}

func newCore(reader ports.RemoteReader) ports.CoreSimulator {
	return hypercore.New(reader)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
