// Package captioner produces the baseline caption for an uploaded image by
// calling a vision-capable agent. It stands in for the legacy encoder-decoder
// captioning model and deliberately asks for terse, mechanical output so the
// enhancement stage has something to improve.
package captioner

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const captionInstructions = `Describe this image in one short factual sentence of 8-15 words.
Use the plain structure "a [subject] is [action] [location]".
Do not add opinions, style, or any text besides the sentence itself.`

// Agent captions images through a configured vision model.
type Agent struct {
	cfg    gaconfig.AgentConfig
	logger *slog.Logger
}

func New(cfg gaconfig.AgentConfig, logger *slog.Logger) *Agent {
	return &Agent{
		cfg:    cfg,
		logger: logger,
	}
}

// Caption returns the baseline caption for the image at imagePath.
func (c *Agent) Caption(ctx context.Context, imagePath string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	dataURI, err := encodeImage(imagePath)
	if err != nil {
		return "", err
	}

	resp, err := a.Vision(ctx, captionInstructions, []string{dataURI})
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	caption := strings.TrimSpace(resp.Content())
	if caption == "" {
		return "", ErrEmptyCaption
	}

	c.logger.Debug("captioned image",
		"image", filepath.Base(imagePath),
		"caption", caption,
	)
	return caption, nil
}

// encodeImage produces a base64 data URI for the image, labeled with the MIME
// type its extension implies. PNG goes through the document encoder; other
// upload formats are assembled directly.
func encodeImage(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	if strings.EqualFold(filepath.Ext(imagePath), ".png") {
		dataURI, err := encoding.EncodeImageDataURI(data, document.PNG)
		if err != nil {
			return "", fmt.Errorf("encode image: %w", err)
		}
		return dataURI, nil
	}

	return "data:" + imageMIME(imagePath) + ";base64," +
		base64.StdEncoding.EncodeToString(data), nil
}

func imageMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
