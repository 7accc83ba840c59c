package captions_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/recaplabs/recap/internal/captions"
	"github.com/recaplabs/recap/internal/workflow"
	"github.com/recaplabs/recap/pkg/staging"
)

type stubCaptioner struct {
	caption string
	err     error
}

func (s *stubCaptioner) Caption(ctx context.Context, imagePath string) (string, error) {
	return s.caption, s.err
}

type stubEnhancer struct {
	enabled  bool
	enhanced string
}

func (s *stubEnhancer) Enabled() bool {
	return s.enabled
}

func (s *stubEnhancer) Enhance(ctx context.Context, original, imagePath string) string {
	if s.enhanced == "" {
		return original
	}
	return s.enhanced
}

func (s *stubEnhancer) BatchEnhance(ctx context.Context, originals []string) []string {
	enhanced := make([]string, len(originals))
	for i, original := range originals {
		enhanced[i] = s.Enhance(ctx, original, "")
	}
	return enhanced
}

func testService(t *testing.T, captioner *stubCaptioner) (captions.System, staging.System) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &staging.Config{Dir: t.TempDir()}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize staging config: %v", err)
	}
	store := staging.New(cfg, logger)

	rt := &workflow.Runtime{
		Captioner: captioner,
		Enhancer:  &stubEnhancer{enabled: false},
		Logger:    logger,
	}

	return captions.New(rt, store, logger), store
}

func TestProcessStagesAndCleansUp(t *testing.T) {
	sys, store := testService(t, &stubCaptioner{caption: "a man is walking"})

	result, err := sys.Process(context.Background(), "photo.jpg", strings.NewReader("image data"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if result.OriginalCaption != "a man is walking" {
		t.Errorf("original: got %q", result.OriginalCaption)
	}
	if result.Filename != "photo.jpg" {
		t.Errorf("filename: got %s", result.Filename)
	}

	// the staged copy is removed once the workflow completes
	if _, err := store.Path("photo.jpg"); !errors.Is(err, staging.ErrNotFound) {
		t.Errorf("staged file should be removed, got %v", err)
	}
}

func TestProcessWorkflowFailureCleansUp(t *testing.T) {
	sys, store := testService(t, &stubCaptioner{err: errors.New("model unavailable")})

	if _, err := sys.Process(context.Background(), "photo.jpg", strings.NewReader("image data")); err == nil {
		t.Fatal("expected error")
	}

	if _, err := store.Path("photo.jpg"); !errors.Is(err, staging.ErrNotFound) {
		t.Errorf("staged file should be removed after failure, got %v", err)
	}
}

func TestProcessInvalidFilename(t *testing.T) {
	sys, _ := testService(t, &stubCaptioner{caption: "a man is walking"})

	_, err := sys.Process(context.Background(), "../escape.jpg", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error for traversal filename")
	}

	// a bad filename is a client input defect, not a server failure
	if status := captions.MapHTTPStatus(err); status != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", status)
	}
}

func TestStagedPathMapsNotFound(t *testing.T) {
	sys, _ := testService(t, &stubCaptioner{})

	if _, err := sys.StagedPath("missing.jpg"); !errors.Is(err, captions.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}
