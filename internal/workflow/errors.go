// Package workflow implements the captioning workflow as a state graph:
// caption → enhance? → finalize. The enhance node is skipped when the
// enhancement system is disabled.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrCaptionFailed = errors.New("captioning failed")
	ErrInvalidState  = errors.New("invalid workflow state")
)
