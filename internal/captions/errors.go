package captions

import (
	"errors"
	"net/http"

	"github.com/recaplabs/recap/pkg/staging"
)

// Domain errors for caption operations.
var (
	ErrNoFile       = errors.New("no file provided")
	ErrNoFilename   = errors.New("no file selected")
	ErrInvalidForm  = errors.New("malformed upload form")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrNotFound     = errors.New("file not found")
)

// MapHTTPStatus maps caption domain errors to appropriate HTTP status codes.
// Staging name rejections count as client input errors.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoFile) || errors.Is(err, ErrNoFilename) ||
		errors.Is(err, ErrInvalidForm) || errors.Is(err, staging.ErrInvalidName) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
