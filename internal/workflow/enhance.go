package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// EnhanceNode returns a state node that rewrites the baseline caption through
// the enhancement system. Enhancement never fails the workflow: a rejected or
// failed rewrite resolves to the original caption inside the enhancer.
func EnhanceNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		original, err := stringValue(s, KeyOriginal)
		if err != nil {
			return s, fmt.Errorf("enhance: %w", err)
		}

		imagePath, err := stringValue(s, KeyImagePath)
		if err != nil {
			return s, fmt.Errorf("enhance: %w", err)
		}

		enhanced := rt.Enhancer.Enhance(ctx, original, imagePath)

		rt.Logger.InfoContext(
			ctx, "enhance node complete",
			"original", original,
			"enhanced", enhanced,
		)

		s = s.Set(KeyEnhanced, enhanced)
		return s, nil
	})
}
