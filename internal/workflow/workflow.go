package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the captioning workflow for a single staged image. It builds
// the state graph (caption → enhance? → finalize), executes it, and extracts
// the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, filename, imagePath string) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyFilename, filename)
	initialState = initialState.Set(KeyImagePath, imagePath)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("recap-caption")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("caption", CaptionNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("enhance", EnhanceNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	enhanceEnabled := func(state.State) bool {
		return rt.Enhancer.Enabled()
	}

	// caption → enhance (when the enhancement system is enabled)
	if err := graph.AddEdge("caption", "enhance", enhanceEnabled); err != nil {
		return nil, err
	}

	// caption → finalize (when enhancement is disabled)
	if err := graph.AddEdge("caption", "finalize", state.Not(enhanceEnabled)); err != nil {
		return nil, err
	}

	// enhance → finalize (unconditional)
	if err := graph.AddEdge("enhance", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("caption"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in final state", ErrInvalidState, KeyResult)
	}

	result, ok := val.(Result)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Result", ErrInvalidState, KeyResult)
	}

	return &result, nil
}
