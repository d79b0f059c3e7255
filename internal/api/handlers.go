package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/voxelworks/terragen/internal/config"
	"github.com/voxelworks/terragen/internal/world"
	"github.com/voxelworks/terragen/internal/worldgen"
)

type Handler struct {
	worlds *world.Manager
	gen    config.GenerationConfig
}

func NewHandler(worlds *world.Manager, gen config.GenerationConfig) *Handler {
	return &Handler{
		worlds: worlds,
		gen:    gen,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "terragen-api",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// CreateWorldRequest carries the generation parameters. Settings left
// nil fall back to the server defaults; Blocks optionally overrides the
// default block registry.
type CreateWorldRequest struct {
	Name     string              `json:"name"`
	Seed     int32               `json:"seed"`
	Settings *worldgen.Settings  `json:"settings,omitempty"`
	Blocks   worldgen.BlockTable `json:"blocks,omitempty"`
}

func (h *Handler) CreateWorld(w http.ResponseWriter, r *http.Request) {
	var req CreateWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" {
		h.renderError(w, r, http.StatusBadRequest, "name must not be empty", nil)
		return
	}

	settings := worldgen.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if settings.Width > h.gen.MaxWidth || settings.Length > h.gen.MaxLength || settings.MaxHeight > h.gen.MaxHeight {
		h.renderError(w, r, http.StatusBadRequest, "requested world exceeds the configured size limits", nil)
		return
	}
	if err := settings.Validate(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.gen.WorldTimeout)
	defer cancel()

	detail, err := h.worlds.Create(ctx, req.Name, req.Seed, settings, req.Blocks)
	if err != nil {
		log.Error("failed to create world", "error", err, "name", req.Name, "seed", req.Seed)
		h.renderError(w, r, http.StatusInternalServerError, "failed to create world", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, detail)
}

func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	detail, err := h.worlds.Get(ctx, id)
	if errors.Is(err, world.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "world not found", nil)
		return
	}
	if err != nil {
		log.Error("failed to load world", "error", err, "id", id)
		h.renderError(w, r, http.StatusInternalServerError, "failed to load world", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, detail)
}

func (h *Handler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summaries, err := h.worlds.List(ctx)
	if err != nil {
		log.Error("failed to list worlds", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "failed to list worlds", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"worlds": summaries,
		"count":  len(summaries),
	})
}

func (h *Handler) DeleteWorld(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := h.worlds.Delete(ctx, id)
	if errors.Is(err, world.ErrNotFound) {
		h.renderError(w, r, http.StatusNotFound, "world not found", nil)
		return
	}
	if err != nil {
		log.Error("failed to delete world", "error", err, "id", id)
		h.renderError(w, r, http.StatusInternalServerError, "failed to delete world", err)
		return
	}

	render.NoContent(w, r)
}

// GetBlocks returns the block name to id table clients need to interpret
// voxel payloads.
func (h *Handler) GetBlocks(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"blocks": h.worlds.Blocks(),
	})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := world.ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
