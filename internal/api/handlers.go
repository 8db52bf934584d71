// internal/api/handlers.go
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/config"
	"github.com/richiewg3/DreamWeaver/internal/llm"
	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/services"
)

// Handler serves the authoring API. All state lives in the services;
// handlers only translate HTTP to service calls.
type Handler struct {
	Workspace  *services.WorkspaceService
	Story      *services.StoryService
	Generation *services.GenerationService
	Client     llm.Client
	Config     *config.Config
	Hub        *Hub
	Response   *ResponseHelper
	Log        *zap.Logger
}

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError is the standard error payload.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewHandler(
	workspace *services.WorkspaceService,
	story *services.StoryService,
	generation *services.GenerationService,
	client llm.Client,
	cfg *config.Config,
	hub *Hub,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Workspace:  workspace,
		Story:      story,
		Generation: generation,
		Client:     client,
		Config:     cfg,
		Hub:        hub,
		Response:   NewResponseHelper(),
		Log:        log,
	}
}

// GetStatus reports whether generation is available and which model
// would serve it.
func (h *Handler) GetStatus(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"configured": h.Client.Configured(),
		"provider":   "google",
		"model":      h.Config.GeminiModel,
	})
}

// GetWorkspace returns the full authoring state in one payload so a
// client can hydrate on load with a single request.
func (h *Handler) GetWorkspace(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"characters":             h.Workspace.Characters.List(),
		"locations":              h.Workspace.Locations.List(),
		"selected_character_ids": h.Workspace.SelectedIDs(models.AssetKindCharacter),
		"selected_location_ids":  h.Workspace.SelectedIDs(models.AssetKindLocation),
		"story_context":          h.Workspace.Context.Get(),
		"beats":                  h.Workspace.Beats.List(),
		"current_story_id":       h.Story.CurrentID(),
	})
}

// GetOptions lists the cinematography vocabularies for the authoring
// UI dropdowns.
func (h *Handler) GetOptions(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"shot_types":       models.ShotTypes,
		"camera_angles":    models.CameraAngles,
		"lighting_presets": models.LightingPresets,
	})
}

// GetContext returns the shared story context.
func (h *Handler) GetContext(c *gin.Context) {
	h.Response.Success(c, gin.H{"story_context": h.Workspace.Context.Get()})
}

// UpdateContext replaces the shared story context. Persistence is
// debounced; rapid edits coalesce into one write.
func (h *Handler) UpdateContext(c *gin.Context) {
	var req struct {
		StoryContext string `json:"story_context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	h.Workspace.Context.Set(req.StoryContext)
	h.Response.Success(c, gin.H{"story_context": req.StoryContext})
}
