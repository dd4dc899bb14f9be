package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/samber/lo"
)

// Stage is a worker that can be started and joined. Both handoff.Producer
// and handoff.Consumer satisfy it.
type Stage interface {
	Label() string
	Start() error
	Stop() error
}

// EdgeLabels represents a collection of queue labels connecting two stages.
type EdgeLabels []string

// StageVertex defines a stage node in the pipeline DAG. Label identifies the
// stage, Inputs/Outputs name the queues it reads from and writes to.
type StageVertex struct {
	Label   string
	Inputs  []EdgeLabels
	Outputs []EdgeLabels
}

type stageVertex struct {
	label   string
	inputs  []EdgeLabels
	outputs []EdgeLabels

	stage Stage
}

func stageVertexHash(n *stageVertex) string {
	return n.label
}

// Pipeline orchestrates transfer stages as a Directed Acyclic Graph. Stages
// start in topological order, so every queue has its producer running before
// a downstream consumer starts waiting on it, and stop in reverse order.
type Pipeline struct {
	graph graph.Graph[string, *stageVertex]

	logger *slog.Logger
}

// NewPipeline creates a pipeline from stage vertex definitions. Validates
// the DAG structure, ensures unique output labels and establishes queue
// connectivity. Returns an error if the topology is invalid or queue labels
// conflict.
func NewPipeline(vertices []StageVertex, logger *slog.Logger) (*Pipeline, error) {
	g := graph.New(stageVertexHash, graph.Directed(), graph.Acyclic())

	outputEdges := make(map[string]string)
	// Add vertices
	for _, vertex := range vertices {
		if err := g.AddVertex(&stageVertex{
			label:   vertex.Label,
			inputs:  vertex.Inputs,
			outputs: vertex.Outputs,
		},
			graph.VertexAttribute("shape", "box"),
			graph.VertexAttribute("style", "rounded"),
		); err != nil {
			return nil, err
		}
		for _, outputLabels := range vertex.Outputs {
			for _, output := range outputLabels {
				if _, present := outputEdges[output]; present {
					return nil, fmt.Errorf("output %s already present", output)
				}
				outputEdges[output] = vertex.Label
			}
		}
	}

	// Add edges
	for _, vertex := range vertices {
		for _, labels := range vertex.Inputs {
			for _, input := range labels {
				inputVertex, outputPresent := outputEdges[input]
				if !outputPresent {
					return nil, fmt.Errorf("output %s not found", input)
				}
				if err := g.AddEdge(inputVertex, vertex.Label, graph.EdgeAttribute("label", input)); err != nil {
					return nil, err
				}
			}
		}
	}

	return &Pipeline{
		graph:  g,
		logger: logger,
	}, nil
}

// AddStage binds a stage to an existing vertex.
func (ppl *Pipeline) AddStage(label string, stage Stage) error {
	sv, err := ppl.graph.Vertex(label)
	if err != nil {
		if errors.Is(err, graph.ErrVertexNotFound) {
			return fmt.Errorf("stage cannot be added: vertex %s not found", label)
		}
		return fmt.Errorf("stage cannot be added to vertex %s: %w", label, err)
	}

	if sv.stage != nil {
		return fmt.Errorf("vertex %s already has a stage", label)
	}

	sv.stage = stage
	return nil
}

func (ppl *Pipeline) sortedVertices() ([]*stageVertex, error) {
	topSortedVertices, err := graph.TopologicalSort(ppl.graph)
	if err != nil {
		return nil, err
	}

	vertices := make([]*stageVertex, 0, len(topSortedVertices))
	for _, vertex := range topSortedVertices {
		sv, err := ppl.graph.Vertex(vertex)
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, sv)
	}
	return vertices, nil
}

// Start begins execution of all stages in topological order. Stops every
// already-started stage if any start fails. Returns an error if a vertex has
// no bound stage.
func (ppl *Pipeline) Start() error {
	vertices, err := ppl.sortedVertices()
	if err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}

	for _, sv := range vertices {
		if sv.stage == nil {
			return fmt.Errorf("failed to start pipeline: vertex %s has not been added with a stage", sv.label)
		}
	}

	for _, sv := range vertices {
		if err := sv.stage.Start(); err != nil {
			ppl.logger.With("error", err).With("vertex", sv.label).Error("Failed to start stage")
			ppl.stopAllStages()
			return err
		}
	}

	return nil
}

// Stop joins all stages in reverse topological order, so downstream
// consumers drain before their upstream producers are collected.
func (ppl *Pipeline) Stop() error {
	ppl.stopAllStages()
	return nil
}

func (ppl *Pipeline) stopAllStages() {
	vertices, err := ppl.sortedVertices()
	if err != nil {
		panic(fmt.Errorf("failed to stop all stages: %w", err))
	}

	for _, sv := range lo.Reverse(vertices) {
		if sv.stage == nil {
			continue
		}

		if err := sv.stage.Stop(); err != nil {
			ppl.logger.With("error", err).With("vertex", sv.label).Error("failed to stop stage, continuing...")
		}
	}
}

// GetStageByVertex retrieves the stage bound to a vertex label. Returns an
// error if the vertex is not found.
func (ppl *Pipeline) GetStageByVertex(vertex string) (Stage, error) {
	sv, err := ppl.graph.Vertex(vertex)
	if err != nil {
		return nil, err
	}
	return sv.stage, nil
}

// DumpDot exports the pipeline topology as a Graphviz DOT file for
// visualization. Creates pipeline.gv in the current directory.
func (ppl *Pipeline) DumpDot() {
	file, _ := os.Create("./pipeline.gv")
	_ = draw.DOT(ppl.graph, file)
}
