package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/quietvalley/beacon/internal/model"
	"github.com/quietvalley/beacon/internal/store"
)

type EventHandler struct {
	store  *store.EventStore
	logger *slog.Logger
}

func NewEventHandler(s *store.EventStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{store: s, logger: logger}
}

type eventRequest struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Date          string   `json:"date"`
	EndDate       string   `json:"end_date"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	ActivityTypes []string `json:"activity_types"`
}

func (h *EventHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*eventRequest, time.Time, *time.Time, bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return nil, time.Time{}, nil, false
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and date are required"})
		return nil, time.Time{}, nil, false
	}

	startTime, err := parseFlexibleTime(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be RFC3339 or YYYY-MM-DDTHH:MM format"})
		return nil, time.Time{}, nil, false
	}

	var endTime *time.Time
	if req.EndDate != "" {
		end, err := parseFlexibleTime(req.EndDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end_date must be RFC3339 or YYYY-MM-DDTHH:MM format"})
			return nil, time.Time{}, nil, false
		}
		if end.Before(startTime) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "end_date must not be before date"})
			return nil, time.Time{}, nil, false
		}
		endTime = &end
	}

	if req.Type == "" {
		req.Type = model.EventTypeActivity
	}
	if req.Type != model.EventTypeSacrament && req.Type != model.EventTypeActivity {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type must be sacrament or activity"})
		return nil, time.Time{}, nil, false
	}

	if !validActivityTypes(req.ActivityTypes) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "activity_types must be physical, social, intellectual, or spiritual"})
		return nil, time.Time{}, nil, false
	}

	return &req, startTime, endTime, true
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.List()
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch events"})
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, startTime, endTime, ok := h.parseAndValidate(w, r)
	if !ok {
		return
	}

	event, err := h.store.Create(req.Name, startTime, endTime, req.Location, req.Description, req.Type, req.ActivityTypes)
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create event"})
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, startTime, endTime, ok := h.parseAndValidate(w, r)
	if !ok {
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	existing, err := h.store.GetByID(req.ID)
	if err != nil {
		h.logger.Error("get event", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update event"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	event, err := h.store.Update(req.ID, req.Name, startTime, endTime, req.Location, req.Description, req.Type, req.ActivityTypes)
	if err != nil {
		h.logger.Error("update event", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update event"})
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	// Deleting an id that never existed is still acknowledged.
	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete event", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete event"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- shared helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseQueryID reads the id from the ?id= query parameter.
func parseQueryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
}

// parseFlexibleTime accepts RFC3339, the datetime-local form values
// (YYYY-MM-DDTHH:MM), and bare dates.
func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

var activityTypeSet = map[string]bool{
	model.ActivityTypePhysical:     true,
	model.ActivityTypeSocial:       true,
	model.ActivityTypeIntellectual: true,
	model.ActivityTypeSpiritual:    true,
}

func validActivityTypes(tags []string) bool {
	for _, tag := range tags {
		if !activityTypeSet[tag] {
			return false
		}
	}
	return true
}
