package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdlinkfix/internal/config"
	"git.home.luguber.info/inful/mdlinkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkfix/internal/linkfix"
	"git.home.luguber.info/inful/mdlinkfix/internal/metrics"
	"git.home.luguber.info/inful/mdlinkfix/internal/version"
	"git.home.luguber.info/inful/mdlinkfix/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"mdlinkfix.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Fix struct {
		Root string `arg:"" optional:"" help:"Docs root to process (overrides docs.root)"`
	} `cmd:"" help:"Normalize links in place and report changed documents"`

	Check struct {
		Root string `arg:"" optional:"" help:"Docs root to check (overrides docs.root)"`
	} `cmd:"" help:"Report documents whose links would change, without writing"`

	Watch struct {
		Root    string `arg:"" optional:"" help:"Docs root to watch (overrides docs.root)"`
		Metrics string `help:"Expose Prometheus metrics on this address (overrides watch.metrics_listen)"`
	} `cmd:"" help:"Watch the docs tree and re-run fixes when it changes"`

	Version struct{} `cmd:"" help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	switch ctx.Command() {
	case "fix", "fix <root>":
		cfg := mustLoadConfig(adapter)
		result := runFix(adapter, cfg, rootOr(cfg, CLI.Fix.Root), false)
		printSummary(os.Stdout, result, false)

	case "check", "check <root>":
		cfg := mustLoadConfig(adapter)
		result := runFix(adapter, cfg, rootOr(cfg, CLI.Check.Root), true)
		printSummary(os.Stdout, result, true)
		if !result.Clean() {
			os.Exit(1)
		}

	case "watch", "watch <root>":
		cfg := mustLoadConfig(adapter)
		if err := runWatch(cfg, rootOr(cfg, CLI.Watch.Root), CLI.Watch.Metrics); err != nil {
			adapter.HandleError(err)
		}

	case "version":
		fmt.Printf("mdlinkfix %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)

	default:
		adapter.HandleError(errors.ValidationError("unknown command").
			WithContext("command", ctx.Command()).
			Build())
	}
}

func mustLoadConfig(adapter *errors.CLIErrorAdapter) *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		adapter.HandleError(err)
	}
	return cfg
}

func rootOr(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	return cfg.Docs.Root
}

func runWatch(cfg *config.Config, root string, metricsOverride string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var collector *metrics.Collector
	addr := metricsOverride
	if addr == "" {
		addr = cfg.Watch.MetricsListen
	}
	if addr != "" {
		collector = metrics.NewCollector()
		go func() {
			if err := collector.Serve(ctx, addr); err != nil {
				slog.Error("Metrics listener failed", "error", err)
			}
		}()
	}

	return watch.New(cfg, linkfix.NewFixer(cfg), collector).Run(ctx, root)
}
