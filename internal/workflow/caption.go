package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// CaptionNode returns a state node that produces the baseline caption for
// the staged image and stores it in the workflow state bag.
func CaptionNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		imagePath, err := stringValue(s, KeyImagePath)
		if err != nil {
			return s, fmt.Errorf("caption: %w", err)
		}

		caption, err := rt.Captioner.Caption(ctx, imagePath)
		if err != nil {
			return s, fmt.Errorf("caption: %w: %w", ErrCaptionFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "caption node complete",
			"caption", caption,
		)

		s = s.Set(KeyOriginal, caption)
		return s, nil
	})
}

func stringValue(s state.State, key string) (string, error) {
	val, ok := s.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrInvalidState, key)
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not string", ErrInvalidState, key)
	}

	return str, nil
}
