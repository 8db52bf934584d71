// internal/api/story_handlers.go
package api

import (
	"github.com/gin-gonic/gin"
)

// ListStories returns slot metadata plus the current pointer. Slot
// data stays out of the listing; snapshots can carry megabytes of
// encoded images.
func (h *Handler) ListStories(c *gin.Context) {
	h.Response.Success(c, gin.H{
		"stories":          h.Story.List(),
		"current_story_id": h.Story.CurrentID(),
	})
}

// SaveStory snapshots the workspace into a slot. With existing_id it
// overwrites that slot; otherwise, or when the id is stale, it
// creates a new one.
func (h *Handler) SaveStory(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		ExistingID string `json:"existing_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	slot := h.Story.Save(req.Name, req.ExistingID)
	h.Response.Created(c, slot.Meta())
}

// LoadStory replaces the live workspace with a saved snapshot.
func (h *Handler) LoadStory(c *gin.Context) {
	id := c.Param("id")
	if !h.Story.Load(id) {
		h.Response.NotFound(c, "story not found")
		return
	}
	h.Response.Success(c, gin.H{"current_story_id": id})
}

// DeleteStory removes a saved slot. The live workspace is untouched.
func (h *Handler) DeleteStory(c *gin.Context) {
	id := c.Param("id")
	if !h.Story.Delete(id) {
		h.Response.NotFound(c, "story not found")
		return
	}
	h.Response.Success(c, gin.H{"id": id})
}

// RenameStory updates a slot's display name.
func (h *Handler) RenameStory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	id := c.Param("id")
	if !h.Story.Rename(id, req.Name) {
		h.Response.NotFound(c, "story not found")
		return
	}
	h.Response.Success(c, gin.H{"id": id, "name": req.Name})
}

// NewStory clears the workspace and detaches it from any saved slot.
func (h *Handler) NewStory(c *gin.Context) {
	h.Story.StartNew()
	h.Response.Success(c, gin.H{"current_story_id": ""})
}
