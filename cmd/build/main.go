package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/meur/mhwdb/internal/build"
	"github.com/meur/mhwdb/internal/config"
	"github.com/meur/mhwdb/internal/observability"
	"github.com/meur/mhwdb/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Finished build")
}

func run(configPath string) error {
	start := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	bc, err := build.NewContext(cfg.Data.Dir, cfg.Data.Languages, logger)
	if err != nil {
		return err
	}

	store, err := storage.Recreate(cfg.Output.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := build.Run(context.Background(), bc, store)
	if err != nil {
		return err
	}

	if cfg.Output.Summary != "" {
		if err := build.WriteSummary(cfg.Output.Summary, summary); err != nil {
			return err
		}
	}

	logger.Info("database written",
		zap.String("path", cfg.Output.Path),
		zap.String("build_id", summary.BuildID),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}
