package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/quietvalley/beacon/internal/export"
)

type ExportHandler struct {
	manager *export.Manager
	logger  *slog.Logger
}

func NewExportHandler(m *export.Manager, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{manager: m, logger: logger}
}

// Run kicks off an export in the background and returns immediately; callers
// poll Status for completion.
func (h *ExportHandler) Run(w http.ResponseWriter, r *http.Request) {
	// The export outlives the request, so it must not inherit its cancellation.
	go func() {
		switch err := h.manager.RunNow(context.Background()); {
		case err == export.ErrInProgress:
			h.logger.Warn("export already running")
		case err != nil:
			h.logger.Error("export", "error", err)
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (h *ExportHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Status())
}
