// Package enhancer rewrites machine-generated image captions into natural
// language using the Gemini API. Enhancement is strictly best-effort: any
// failure along the way, from a missing credential to a rejected rewrite,
// yields the original caption unchanged.
package enhancer

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"
)

// System is the caption enhancement contract consumed by the workflow layer.
type System interface {
	// Enabled reports whether outbound enhancement calls will be attempted.
	Enabled() bool

	// Enhance returns an improved version of original, or original itself
	// when enhancement fails or the rewrite is rejected.
	Enhance(ctx context.Context, original, imagePath string) string

	// BatchEnhance enhances each caption in order, returning a slice of the
	// same length.
	BatchEnhance(ctx context.Context, originals []string) []string
}

type system struct {
	client   *genai.Client
	policy   Policy
	logger   *slog.Logger
	model    string
	timeout  time.Duration
	simulate bool
	enabled  bool

	// generate dispatches a single model call. Indirected so tests can
	// observe dispatch counts without a live client.
	generate func(ctx context.Context, parts []*genai.Part) (string, error)
}

// New creates an enhancement system from the finalized config. Construction
// never fails: a missing API key or client error produces a disabled system
// that passes captions through untouched.
func New(cfg *Config, logger *slog.Logger) System {
	s := &system{
		policy:   NewOverlapPolicy(cfg.MinOverlap),
		logger:   logger,
		model:    cfg.Model,
		timeout:  cfg.TimeoutDuration(),
		simulate: cfg.SimulateLatency,
	}
	s.generate = s.generateContent

	if cfg.APIKey == "" {
		logger.Warn("no API key configured, enhancement disabled")
		return s
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		logger.Error("failed to initialize client, enhancement disabled",
			"error", err,
		)
		return s
	}

	s.client = client
	s.enabled = true
	logger.Info("enhancement enabled", "model", s.model)
	return s
}

func (s *system) Enabled() bool {
	return s.enabled
}

func (s *system) Enhance(ctx context.Context, original, imagePath string) string {
	if !s.enabled {
		return original
	}

	s.delay(ctx, 500*time.Millisecond, 1500*time.Millisecond)

	var enhanced string
	var err error
	if imagePath == "" {
		enhanced, err = s.enhanceText(ctx, original)
	} else {
		enhanced, err = s.enhanceVision(ctx, original, imagePath)
		if err != nil {
			s.logger.Warn("vision enhancement failed, retrying text-only",
				"error", err,
			)
			enhanced, err = s.enhanceText(ctx, original)
		}
	}
	if err != nil {
		s.logger.Warn("enhancement failed, keeping original caption",
			"error", err,
		)
		return original
	}

	enhanced = cleanupCaption(enhanced)
	if !s.policy.Accept(original, enhanced) {
		s.logger.Info("rewrite rejected by acceptance policy",
			"original", original,
			"enhanced", enhanced,
		)
		return original
	}

	return enhanced
}

func (s *system) BatchEnhance(ctx context.Context, originals []string) []string {
	enhanced := make([]string, len(originals))
	for i, original := range originals {
		if i > 0 {
			s.delay(ctx, 200*time.Millisecond, 500*time.Millisecond)
		}
		enhanced[i] = s.Enhance(ctx, original, "")
	}
	return enhanced
}

func (s *system) enhanceVision(ctx context.Context, original, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}

	parts := []*genai.Part{
		{Text: visionPrompt(original)},
		{InlineData: &genai.Blob{
			MIMEType: imageMIMEType(imagePath),
			Data:     data,
		}},
	}

	return s.generate(ctx, parts)
}

func (s *system) enhanceText(ctx context.Context, original string) (string, error) {
	parts := []*genai.Part{
		{Text: textPrompt(original)},
	}

	return s.generate(ctx, parts)
}

func (s *system) generateContent(ctx context.Context, parts []*genai.Part) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contents := []*genai.Content{
		{Role: "user", Parts: parts},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", err
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// delay sleeps for a random duration in [min, max) to approximate remote
// model latency in demos. Disabled by default and cut short by ctx.
func (s *system) delay(ctx context.Context, min, max time.Duration) {
	if !s.simulate {
		return
	}

	d := min + rand.N(max-min)
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func imageMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
