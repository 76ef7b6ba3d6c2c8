package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quietvalley/beacon/internal/model"
	"github.com/quietvalley/beacon/internal/store"
)

var validPriorities = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

type AnnouncementHandler struct {
	store  *store.AnnouncementStore
	logger *slog.Logger
}

func NewAnnouncementHandler(s *store.AnnouncementStore, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{store: s, logger: logger}
}

type announcementRequest struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
}

func (h *AnnouncementHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*announcementRequest, bool) {
	var req announcementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and content are required"})
		return nil, false
	}

	if req.Priority == "" {
		req.Priority = "low"
	}
	if !validPriorities[req.Priority] {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "priority must be low, medium, or high"})
		return nil, false
	}

	return &req, true
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.store.List()
	if err != nil {
		h.logger.Error("list announcements", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch announcements"})
		return
	}
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	writeJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(w, r)
	if !ok {
		return
	}

	announcement, err := h.store.Create(req.Title, req.Content, req.Priority)
	if err != nil {
		h.logger.Error("create announcement", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create announcement"})
		return
	}

	writeJSON(w, http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
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
		h.logger.Error("get announcement", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update announcement"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "announcement not found"})
		return
	}

	announcement, err := h.store.Update(req.ID, req.Title, req.Content, req.Priority)
	if err != nil {
		h.logger.Error("update announcement", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update announcement"})
		return
	}

	writeJSON(w, http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete announcement", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete announcement"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
