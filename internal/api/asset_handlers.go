// internal/api/asset_handlers.go
package api

import (
	"encoding/base64"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/services"
)

// maxImageUpload caps reference image size at 8MB decoded.
const maxImageUpload = 8 << 20

type addAssetRequest struct {
	Name        string `json:"name"`
	ImageBase64 string `json:"image_base64"`
}

func (h *Handler) assetService(kind models.AssetKind) *services.AssetService {
	if kind == models.AssetKindCharacter {
		return h.Workspace.Characters
	}
	return h.Workspace.Locations
}

// ListAssets returns the roster for one kind.
func (h *Handler) ListAssets(kind models.AssetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Response.Success(c, gin.H{
			string(kind) + "s": h.assetService(kind).List(),
			"selected_ids":     h.Workspace.SelectedIDs(kind),
		})
	}
}

// AddAsset accepts either a multipart upload (field "image", optional
// field "name") or a JSON body with base64 image bytes.
func (h *Handler) AddAsset(kind models.AssetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		imageBytes, name, ok := h.readAssetUpload(c)
		if !ok {
			return
		}

		asset, err := h.assetService(kind).Add(imageBytes, name)
		if err != nil {
			h.Response.AppError(c, err)
			return
		}

		h.Response.Created(c, asset)
	}
}

func (h *Handler) readAssetUpload(c *gin.Context) (imageBytes []byte, name string, ok bool) {
	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxImageUpload {
			h.Response.BadRequest(c, "image too large")
			return nil, "", false
		}
		f, err := file.Open()
		if err != nil {
			h.Response.BadRequest(c, "could not read uploaded image", err.Error())
			return nil, "", false
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxImageUpload+1))
		if err != nil {
			h.Response.BadRequest(c, "could not read uploaded image", err.Error())
			return nil, "", false
		}
		return data, c.PostForm("name"), true
	}

	var req addAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, "invalid request body", err.Error())
		return nil, "", false
	}

	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		h.Response.BadRequest(c, "image_base64 is not valid base64", err.Error())
		return nil, "", false
	}
	if len(data) > maxImageUpload {
		h.Response.BadRequest(c, "image too large")
		return nil, "", false
	}
	return data, req.Name, true
}

// RemoveAsset deletes the asset and evicts it from the selection set.
func (h *Handler) RemoveAsset(kind models.AssetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !h.Workspace.RemoveAsset(kind, id) {
			h.Response.NotFound(c, kind.DisplayName()+" not found")
			return
		}
		h.Response.Success(c, gin.H{"id": id})
	}
}

// RenameAsset updates the display name.
func (h *Handler) RenameAsset(kind models.AssetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			h.Response.BadRequest(c, "invalid request body", err.Error())
			return
		}

		id := c.Param("id")
		if !h.assetService(kind).Rename(id, req.Name) {
			h.Response.NotFound(c, kind.DisplayName()+" not found")
			return
		}

		asset, _ := h.assetService(kind).Get(id)
		h.Response.Success(c, asset)
	}
}

// SelectAsset adds the asset to the reference-image selection.
func (h *Handler) SelectAsset(kind models.AssetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !h.Workspace.Select(kind, id) {
			h.Response.NotFound(c, kind.DisplayName()+" not found")
			return
		}
		h.Response.Success(c, gin.H{"selected_ids": h.Workspace.SelectedIDs(kind)})
	}
}

// DeselectAsset removes the asset from the selection. Idempotent.
func (h *Handler) DeselectAsset(kind models.AssetKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.Workspace.Deselect(kind, c.Param("id"))
		h.Response.Success(c, gin.H{"selected_ids": h.Workspace.SelectedIDs(kind)})
	}
}
