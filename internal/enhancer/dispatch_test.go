package enhancer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/genai"
)

type dispatchRecorder struct {
	calls     [][]*genai.Part
	responses []string
	errs      []error
}

func (d *dispatchRecorder) generate(_ context.Context, parts []*genai.Part) (string, error) {
	i := len(d.calls)
	d.calls = append(d.calls, parts)
	return d.responses[i], d.errs[i]
}

func testSystem(rec *dispatchRecorder) *system {
	s := &system{
		policy:  NewOverlapPolicy(0.2),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		enabled: true,
	}
	s.generate = rec.generate
	return s
}

func TestEnhanceTextOnlyDispatchesOnce(t *testing.T) {
	rec := &dispatchRecorder{
		responses: []string{""},
		errs:      []error{errors.New("model unavailable")},
	}
	s := testSystem(rec)

	original := "a man is walking"
	if got := s.Enhance(context.Background(), original, ""); got != original {
		t.Errorf("Enhance() = %q, want original %q", got, original)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("dispatch count: got %d, want 1", len(rec.calls))
	}
	if len(rec.calls[0]) != 1 {
		t.Errorf("text-only call parts: got %d, want 1", len(rec.calls[0]))
	}
}

func TestEnhanceVisionFallsBackToText(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(imagePath, []byte("fake image"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &dispatchRecorder{
		responses: []string{"", "a man is walking down the street"},
		errs:      []error{errors.New("vision rejected"), nil},
	}
	s := testSystem(rec)

	got := s.Enhance(context.Background(), "a man is walking", imagePath)
	if want := "a man is walking down the street"; got != want {
		t.Errorf("Enhance() = %q, want %q", got, want)
	}

	if len(rec.calls) != 2 {
		t.Fatalf("dispatch count: got %d, want 2", len(rec.calls))
	}
	if len(rec.calls[0]) != 2 {
		t.Errorf("vision call parts: got %d, want 2", len(rec.calls[0]))
	}
	if len(rec.calls[1]) != 1 {
		t.Errorf("fallback call parts: got %d, want 1", len(rec.calls[1]))
	}
}

func TestEnhanceUnreadableImageFallsBackToText(t *testing.T) {
	rec := &dispatchRecorder{
		responses: []string{"a man is walking down the street"},
		errs:      []error{nil},
	}
	s := testSystem(rec)

	got := s.Enhance(context.Background(), "a man is walking", filepath.Join(t.TempDir(), "missing.jpg"))
	if want := "a man is walking down the street"; got != want {
		t.Errorf("Enhance() = %q, want %q", got, want)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("dispatch count: got %d, want 1", len(rec.calls))
	}
	if len(rec.calls[0]) != 1 {
		t.Errorf("fallback call parts: got %d, want 1", len(rec.calls[0]))
	}
}

func TestEnhanceRejectedRewriteKeepsOriginal(t *testing.T) {
	rec := &dispatchRecorder{
		responses: []string{"completely unrelated text here now"},
		errs:      []error{nil},
	}
	s := testSystem(rec)

	original := "a red apple on a table"
	if got := s.Enhance(context.Background(), original, ""); got != original {
		t.Errorf("Enhance() = %q, want original %q", got, original)
	}
}
