package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quietvalley/beacon/internal/model"
	"github.com/quietvalley/beacon/internal/store"
)

type RewardHandler struct {
	store  *store.RewardStore
	logger *slog.Logger
}

func NewRewardHandler(s *store.RewardStore, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{store: s, logger: logger}
}

type rewardRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Action      string `json:"action"`
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.store.List()
	if err != nil {
		h.logger.Error("list rewards", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to fetch rewards"})
		return
	}
	if rewards == nil {
		rewards = []model.Reward{}
	}
	writeJSON(w, http.StatusOK, rewards)
}

// Create handles POST. With action "add_points" it performs a name-keyed
// upsert: an existing entry gains the submitted points, an unknown name gets
// a fresh ledger entry. Without the action it creates a plain entry.
func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	if req.Action == "add_points" {
		reward, err := h.store.AddPoints(req.Name, req.Points)
		if err != nil {
			h.logger.Error("add points", "error", err, "name", req.Name)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update rewards"})
			return
		}
		writeJSON(w, http.StatusOK, reward)
		return
	}

	existing, err := h.store.GetByName(req.Name)
	if err != nil {
		h.logger.Error("get reward by name", "error", err, "name", req.Name)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create reward"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a reward entry with that name already exists"})
		return
	}

	reward, err := h.store.Create(req.Name, req.Points, req.Description, req.Emoji)
	if err != nil {
		h.logger.Error("create reward", "error", err, "name", req.Name)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create reward"})
		return
	}

	writeJSON(w, http.StatusCreated, reward)
}

func (h *RewardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.ID == 0 || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id and name are required"})
		return
	}

	existing, err := h.store.GetByID(req.ID)
	if err != nil {
		h.logger.Error("get reward", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update reward"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "reward not found"})
		return
	}

	if req.Description == "" {
		req.Description = existing.Description
	}
	if req.Emoji == "" {
		req.Emoji = existing.Emoji
	}

	reward, err := h.store.Update(req.ID, req.Name, req.Points, req.Description, req.Emoji)
	if err != nil {
		h.logger.Error("update reward", "error", err, "id", req.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update reward"})
		return
	}

	writeJSON(w, http.StatusOK, reward)
}

func (h *RewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseQueryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete reward", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete reward"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
