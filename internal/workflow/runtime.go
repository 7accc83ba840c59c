package workflow

import (
	"context"
	"log/slog"

	"github.com/recaplabs/recap/internal/enhancer"
)

// Captioner produces the baseline caption for an image on disk.
type Captioner interface {
	Caption(ctx context.Context, imagePath string) (string, error)
}

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Captioner Captioner
	Enhancer  enhancer.System
	Logger    *slog.Logger
}
