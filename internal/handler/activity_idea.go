package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quietvalley/beacon/internal/model"
	"github.com/quietvalley/beacon/internal/store"
)

type ActivityIdeaHandler struct {
	store  *store.ActivityIdeaStore
	logger *slog.Logger
}

func NewActivityIdeaHandler(s *store.ActivityIdeaStore, logger *slog.Logger) *ActivityIdeaHandler {
	return &ActivityIdeaHandler{store: s, logger: logger}
}

type activityIdeaRequest struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ActivityTypes []string `json:"activity_types"`
}

func (h *ActivityIdeaHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*activityIdeaRequest, bool) {
	var req activityIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return nil, false
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Description) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and description are required"})
		return nil, false
	}

	if !validActivityTypes(req.ActivityTypes) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "activity_types must be physical, social, intellectual, or spiritual"})
		return nil, false
	}

	return &req, true
}

func (h *ActivityIdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.store.List()
	if err != nil {
		h.logger.Error("list activity ideas", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch activity ideas"})
		return
	}
	if ideas == nil {
		ideas = []model.ActivityIdea{}
	}
	writeJSON(w, http.StatusOK, ideas)
}

func (h *ActivityIdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(w, r)
	if !ok {
		return
	}

	idea, err := h.store.Create(req.Name, req.Description, req.ActivityTypes)
	if err != nil {
		h.logger.Error("create activity idea", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create activity idea"})
		return
	}

	writeJSON(w, http.StatusCreated, idea)
}

func (h *ActivityIdeaHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(w, r)
	if !ok {
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	existing, err := h.store.GetByID(req.ID)
	if err != nil {
		h.logger.Error("get activity idea", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update activity idea"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "activity idea not found"})
		return
	}

	idea, err := h.store.Update(req.ID, req.Name, req.Description, req.ActivityTypes)
	if err != nil {
		h.logger.Error("update activity idea", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update activity idea"})
		return
	}

	writeJSON(w, http.StatusOK, idea)
}

func (h *ActivityIdeaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete activity idea", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete activity idea"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
