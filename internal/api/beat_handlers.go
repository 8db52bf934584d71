// internal/api/beat_handlers.go
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/richiewg3/DreamWeaver/internal/models"
)

// ListBeats returns every beat in story order, with display labels.
func (h *Handler) ListBeats(c *gin.Context) {
	beats := h.Workspace.Beats.List()

	type labeledBeat struct {
		models.Beat
		Label string `json:"label"`
	}
	out := make([]labeledBeat, len(beats))
	for i, b := range beats {
		out[i] = labeledBeat{Beat: b, Label: models.BeatLabel(i)}
	}

	h.Response.Success(c, gin.H{"beats": out})
}

// AddBeat appends an empty beat to the end of the story.
func (h *Handler) AddBeat(c *gin.Context) {
	beat := h.Workspace.Beats.Add()
	h.Response.Created(c, beat)
}

// UpdateBeat sets a single field on a beat. Unknown beat ids succeed
// without effect so a delete racing an edit does not surface as an
// error in the authoring UI.
func (h *Handler) UpdateBeat(c *gin.Context) {
	var req struct {
		Field string      `json:"field"`
		Value interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	id := c.Param("id")
	if err := h.Workspace.Beats.UpdateField(id, req.Field, req.Value); err != nil {
		h.Response.AppError(c, err)
		return
	}

	beat, ok := h.Workspace.Beats.Get(id)
	if !ok {
		h.Response.Success(c, gin.H{"id": id})
		return
	}
	h.Response.Success(c, beat)
}

// RemoveBeat deletes the beat. Later beats shift forward and their
// labels change accordingly.
func (h *Handler) RemoveBeat(c *gin.Context) {
	id := c.Param("id")
	if !h.Workspace.Beats.Remove(id) {
		h.Response.NotFound(c, "beat not found")
		return
	}
	h.Response.Success(c, gin.H{"id": id})
}

// GenerateBeat runs one generation attempt for the beat and returns
// the post-attempt state. The request blocks for the duration of the
// model call; the websocket hub pushes the same result to other
// connected clients.
func (h *Handler) GenerateBeat(c *gin.Context) {
	beat, err := h.Generation.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Response.AppError(c, err)
		return
	}
	h.Response.Success(c, beat)
}
