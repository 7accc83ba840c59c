// Package captions is the upload-to-caption domain: it stages an uploaded
// image, runs the captioning workflow against it, and cleans the staged copy
// up once the workflow completes.
package captions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/recaplabs/recap/internal/workflow"
	"github.com/recaplabs/recap/pkg/staging"
)

// System defines the public contract for caption domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Process(ctx context.Context, filename string, file io.Reader) (*workflow.Result, error)
	StagedPath(name string) (string, error)
}

type service struct {
	runtime *workflow.Runtime
	staging staging.System
	logger  *slog.Logger
}

// New creates a caption service implementing the System interface.
func New(
	runtime *workflow.Runtime,
	store staging.System,
	logger *slog.Logger,
) System {
	return &service{
		runtime: runtime,
		staging: store,
		logger:  logger.With("system", "captions"),
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

// Process stages the uploaded file, runs the captioning workflow, and removes
// the staged copy. Removal uses a detached context so cleanup still runs when
// the request is canceled mid-workflow.
func (s *service) Process(ctx context.Context, filename string, file io.Reader) (*workflow.Result, error) {
	imagePath, err := s.staging.Save(filename, file)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	defer func() {
		if err := s.staging.Remove(context.WithoutCancel(ctx), filename); err != nil {
			s.logger.Warn("failed to remove staged file",
				"filename", filename,
				"error", err,
			)
		}
	}()

	result, err := workflow.Execute(ctx, s.runtime, filename, imagePath)
	if err != nil {
		return nil, fmt.Errorf("caption workflow: %w", err)
	}

	return result, nil
}

// StagedPath resolves a staged filename to its on-disk path.
func (s *service) StagedPath(name string) (string, error) {
	path, err := s.staging.Path(name)
	if err != nil {
		if errors.Is(err, staging.ErrNotFound) || errors.Is(err, staging.ErrInvalidName) {
			return "", ErrNotFound
		}
		return "", err
	}
	return path, nil
}
