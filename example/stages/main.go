package main

import (
	"log/slog"
	"os"

	"github.com/transferlab/handoff"
	"github.com/transferlab/handoff/pipeline"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Define the pipeline topology: one producer feeding one consumer
	// through a single bounded queue.
	vertices := []pipeline.StageVertex{
		{
			Label:   "producer",
			Inputs:  []pipeline.EdgeLabels{}, // No inputs for the producer
			Outputs: []pipeline.EdgeLabels{{"values"}},
		},
		{
			Label:   "consumer",
			Inputs:  []pipeline.EdgeLabels{{"values"}},
			Outputs: []pipeline.EdgeLabels{}, // No outputs for the consumer
		},
	}

	ppl, err := pipeline.NewPipeline(vertices, logger)
	if err != nil {
		logger.Error("Failed to create pipeline", "error", err)
		os.Exit(1)
	}

	source := handoff.NewSource(
		handoff.Int(1),
		handoff.Float(2.5),
		handoff.Int(3),
		handoff.Float(4.5),
		handoff.Int(5),
		handoff.Float(6.5),
	)

	queue, err := handoff.NewBoundedQueue[handoff.Value](source.Len() / 2)
	if err != nil {
		logger.Error("Failed to create queue", "error", err)
		os.Exit(1)
	}
	destination := handoff.NewDestination(source.Len())

	producer := handoff.NewProducer(source, queue, handoff.WithLogger(logger))
	consumer := handoff.NewConsumer(queue, destination, handoff.WithLogger(logger))

	if err := ppl.AddStage("producer", producer); err != nil {
		logger.Error("Failed to add producer stage", "error", err)
		os.Exit(1)
	}
	if err := ppl.AddStage("consumer", consumer); err != nil {
		logger.Error("Failed to add consumer stage", "error", err)
		os.Exit(1)
	}

	// Start the stages in topological order, then join them in reverse
	// order. Stop blocks until both workers have terminated.
	if err := ppl.Start(); err != nil {
		logger.Error("Failed to start pipeline", "error", err)
		os.Exit(1)
	}

	if err := ppl.Stop(); err != nil {
		logger.Error("Failed to stop pipeline", "error", err)
		os.Exit(1)
	}

	logger.Info("Pipeline finished", "transferred", destination.Len())
}
