package main

import (
	"context"
	"os"
	"time"

	"github.com/fhuszti/videos-ms-go/internal/config"
	"github.com/fhuszti/videos-ms-go/internal/logger"
	"github.com/fhuszti/videos-ms-go/internal/spool"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	sp, err := spool.NewOnDisk(cfg.SpoolDir)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to open spool directory %q: %v", cfg.SpoolDir, err)
		os.Exit(1)
	}

	cutoff := time.Now().Add(-cfg.SpoolMaxAge)
	n, err := sp.Sweep(cutoff)
	if err != nil {
		logger.Errorf(ctx, "❌  Spool sweep failed after removing %d files: %v", n, err)
		os.Exit(1)
	}
	logger.Infof(ctx, "✅  Spool sweep completed, removed %d files older than %s", n, cutoff.Format(time.RFC3339))
}
