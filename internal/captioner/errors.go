package captioner

import "errors"

var (
	ErrEmptyCaption = errors.New("vision model returned an empty caption")
)
