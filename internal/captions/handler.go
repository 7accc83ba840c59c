package captions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/recaplabs/recap/pkg/handlers"
	"github.com/recaplabs/recap/pkg/routes"
)

// Handler provides HTTP endpoints for caption operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// UploadResponse is the JSON payload returned for a successful upload.
type UploadResponse struct {
	Success         bool   `json:"success"`
	OriginalCaption string `json:"original_caption"`
	EnhancedCaption string `json:"enhanced_caption"`
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "captions"),
		maxUploadSize: maxUploadSize,
	}
}

// UploadRoutes returns the route group for the upload endpoint.
func (h *Handler) UploadRoutes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{$}", Handler: h.Upload},
		},
	}
}

// FileRoutes returns the route group for staged file retrieval.
func (h *Handler) FileRoutes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{filename}", Handler: h.ServeFile},
		},
	}
}

// Upload processes a multipart form upload containing an image file and
// responds with the original and enhanced captions.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// ParseMultipartForm's argument only bounds in-memory buffering; the size
	// limit itself is enforced by capping the body.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidForm)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFile)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoFilename)
		return
	}

	result, err := h.sys.Process(r.Context(), header.Filename, file)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UploadResponse{
		Success:         true,
		OriginalCaption: result.OriginalCaption,
		EnhancedCaption: result.EnhancedCaption,
	})
}

// ServeFile streams a staged file by its filename path parameter.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	path, err := h.sys.StagedPath(r.PathValue("filename"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	http.ServeFile(w, r, path)
}
