package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/merchstat/scout/config"
	"github.com/merchstat/scout/engine"
)

var (
	flagTimeout     time.Duration
	flagProxy       string
	flagVerifySSL   bool
	flagConcurrency int
	flagRPS         float64
)

func main() {
	root := &cobra.Command{
		Use:          "scout",
		Short:        "Extract structured product data from marketplace pages",
		SilenceUsage: true,
	}

	extractCmd := &cobra.Command{
		Use:   "extract URL...",
		Short: "Extract product records and print them as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "per-request fetch timeout (overrides SCOUT_TIMEOUT)")
	extractCmd.Flags().StringVar(&flagProxy, "proxy", "", "upstream proxy URL (http, https or socks5)")
	extractCmd.Flags().BoolVar(&flagVerifySSL, "verify-ssl", false, "verify TLS certificates on plain HTTP fetches")
	extractCmd.Flags().IntVar(&flagConcurrency, "concurrency", 1, "max concurrent extractions (each may own a browser process)")
	extractCmd.Flags().Float64Var(&flagRPS, "rps", 0, "pace extraction starts at this rate (0 = unpaced)")

	root.AddCommand(extractCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if flagTimeout > 0 {
		cfg.Scraper.Timeout = flagTimeout
	}
	if flagProxy != "" {
		cfg.Scraper.ProxyURL = flagProxy
	}
	if flagVerifySSL {
		cfg.Scraper.VerifySSL = true
	}

	initLogger(cfg.Log)
	slog.Info("scout starting",
		"urls", len(args),
		"concurrency", flagConcurrency,
		"timeout", cfg.Scraper.Timeout,
	)

	var limiter *rate.Limiter
	if flagRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(flagRPS), 1)
	}

	eng := engine.New(cfg)
	results := eng.ExtractBatch(cmd.Context(), args, flagConcurrency, limiter)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			slog.Error("extraction failed", "url", r.URL, "error", r.Err)
			continue
		}
		if err := enc.Encode(r.Product); err != nil {
			return err
		}
	}

	if failed == len(results) {
		return fmt.Errorf("all %d extractions failed", failed)
	}
	return nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
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
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
