package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/transferlab/handoff"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Build a source with a random mix of integers and floats. The queue
	// capacity defaults to half the source length.
	source := handoff.RandomSource(10)

	transfer, err := handoff.NewTransfer(source, handoff.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to create transfer", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	if err := transfer.Run(ctx); err != nil {
		logger.Error("Transfer failed", "error", err)
		os.Exit(1)
	}

	if err := transfer.Verify(); err != nil {
		logger.Error("Verification failed", "error", err)
		os.Exit(1)
	}

	logger.Info("All data transferred successfully",
		"n", source.Len(),
		"duration", time.Since(start),
	)
}
