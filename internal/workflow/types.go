package workflow

import (
	"time"

	"github.com/google/uuid"
)

// State bag keys shared across workflow nodes.
const (
	KeyFilename  = "filename"
	KeyImagePath = "image_path"
	KeyOriginal  = "original_caption"
	KeyEnhanced  = "enhanced_caption"
	KeyResult    = "result"
)

// Result is the terminal output of a captioning workflow run.
type Result struct {
	ID              uuid.UUID `json:"id"`
	Filename        string    `json:"filename"`
	OriginalCaption string    `json:"original_caption"`
	EnhancedCaption string    `json:"enhanced_caption"`
	CompletedAt     time.Time `json:"completed_at"`
}
