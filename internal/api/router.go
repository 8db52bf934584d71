// internal/api/router.go
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/app"
	"github.com/richiewg3/DreamWeaver/internal/config"
	"github.com/richiewg3/DreamWeaver/internal/di"
	"github.com/richiewg3/DreamWeaver/internal/llm"
	"github.com/richiewg3/DreamWeaver/internal/models"
	"github.com/richiewg3/DreamWeaver/internal/services"
)

// SetupRouter wires the HTTP surface from the already-initialized
// container. Services are only fetched here, never constructed.
func SetupRouter(log *zap.Logger) (*gin.Engine, error) {
	container := di.GetContainer()

	cfg, ok := container.Get(app.ServiceConfig).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("config not initialized")
	}
	workspace, ok := container.Get(app.ServiceWorkspace).(*services.WorkspaceService)
	if !ok {
		return nil, fmt.Errorf("workspace service not initialized")
	}
	story, ok := container.Get(app.ServiceStory).(*services.StoryService)
	if !ok {
		return nil, fmt.Errorf("story service not initialized")
	}
	generation, ok := container.Get(app.ServiceGeneration).(*services.GenerationService)
	if !ok {
		return nil, fmt.Errorf("generation service not initialized")
	}
	client, ok := container.Get(app.ServiceLLM).(llm.Client)
	if !ok {
		return nil, fmt.Errorf("llm client not initialized")
	}

	hub := NewHub(log)
	generation.SetNotifier(hub)

	handler := NewHandler(workspace, story, generation, client, cfg, hub, log)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(ZapLoggingMiddleware(log))
	r.Use(CORSMiddleware())

	r.GET("/ws", hub.Serve)

	api := r.Group("/api")
	{
		api.GET("/status", handler.GetStatus)
		api.GET("/workspace", handler.GetWorkspace)
		api.GET("/options", handler.GetOptions)

		charactersGroup := api.Group("/characters")
		{
			charactersGroup.GET("", handler.ListAssets(models.AssetKindCharacter))
			charactersGroup.POST("", handler.AddAsset(models.AssetKindCharacter))
			charactersGroup.DELETE("/:id", handler.RemoveAsset(models.AssetKindCharacter))
			charactersGroup.PUT("/:id/name", handler.RenameAsset(models.AssetKindCharacter))
			charactersGroup.POST("/:id/select", handler.SelectAsset(models.AssetKindCharacter))
			charactersGroup.DELETE("/:id/select", handler.DeselectAsset(models.AssetKindCharacter))
		}

		locationsGroup := api.Group("/locations")
		{
			locationsGroup.GET("", handler.ListAssets(models.AssetKindLocation))
			locationsGroup.POST("", handler.AddAsset(models.AssetKindLocation))
			locationsGroup.DELETE("/:id", handler.RemoveAsset(models.AssetKindLocation))
			locationsGroup.PUT("/:id/name", handler.RenameAsset(models.AssetKindLocation))
			locationsGroup.POST("/:id/select", handler.SelectAsset(models.AssetKindLocation))
			locationsGroup.DELETE("/:id/select", handler.DeselectAsset(models.AssetKindLocation))
		}

		api.GET("/context", handler.GetContext)
		api.PUT("/context", handler.UpdateContext)

		beatsGroup := api.Group("/beats")
		{
			beatsGroup.GET("", handler.ListBeats)
			beatsGroup.POST("", handler.AddBeat)
			beatsGroup.PATCH("/:id", handler.UpdateBeat)
			beatsGroup.DELETE("/:id", handler.RemoveBeat)
			beatsGroup.POST("/:id/generate", handler.GenerateBeat)
		}

		storiesGroup := api.Group("/stories")
		{
			storiesGroup.GET("", handler.ListStories)
			storiesGroup.POST("", handler.SaveStory)
			storiesGroup.POST("/new", handler.NewStory)
			storiesGroup.POST("/:id/load", handler.LoadStory)
			storiesGroup.DELETE("/:id", handler.DeleteStory)
			storiesGroup.PUT("/:id/name", handler.RenameStory)
		}
	}

	return r, nil
}
