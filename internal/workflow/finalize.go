package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// FinalizeNode returns a state node that assembles the workflow Result. When
// the enhance node was skipped the original caption doubles as the enhanced
// one, so callers always receive both fields populated.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		filename, err := stringValue(s, KeyFilename)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		original, err := stringValue(s, KeyOriginal)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		enhanced := original
		if val, ok := s.Get(KeyEnhanced); ok {
			if str, ok := val.(string); ok {
				enhanced = str
			}
		}

		result := Result{
			ID:              uuid.New(),
			Filename:        filename,
			OriginalCaption: original,
			EnhancedCaption: enhanced,
			CompletedAt:     time.Now(),
		}

		rt.Logger.InfoContext(
			ctx, "finalize node complete",
			"result_id", result.ID,
			"filename", filename,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}
