// internal/app/app.go
package app

import (
	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/config"
	"github.com/richiewg3/DreamWeaver/internal/di"
	"github.com/richiewg3/DreamWeaver/internal/llm"
	"github.com/richiewg3/DreamWeaver/internal/services"
	"github.com/richiewg3/DreamWeaver/internal/storage"

	// Registers the generation provider.
	_ "github.com/richiewg3/DreamWeaver/internal/llm/providers/google"
)

// Container keys for the registered services.
const (
	ServiceConfig     = "config"
	ServiceLogger     = "logger"
	ServiceStore      = "store"
	ServiceDebouncer  = "debouncer"
	ServiceWorkspace  = "workspace"
	ServiceStory      = "story"
	ServiceLLM        = "llm"
	ServiceGeneration = "generation"
)

// InitServices builds the full service graph and registers it in the
// global container. Construction order matters: the workspace loads
// persisted state, the story service needs the workspace, and the
// generation service needs both the workspace and the LLM client.
func InitServices(cfg *config.Config, log *zap.Logger) error {
	container := di.GetContainer()

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}
	debouncer := storage.NewDebouncer(cfg.DebounceWindow)

	workspace := services.NewWorkspaceService(store, debouncer, log)
	story := services.NewStoryService(store, workspace, log)

	client := llm.NewClient("google", cfg.LLMConfig())
	generation := services.NewGenerationService(workspace, client, log)

	container.Register(ServiceConfig, cfg)
	container.Register(ServiceLogger, log)
	container.Register(ServiceStore, store)
	container.Register(ServiceDebouncer, debouncer)
	container.Register(ServiceWorkspace, workspace)
	container.Register(ServiceStory, story)
	container.Register(ServiceLLM, client)
	container.Register(ServiceGeneration, generation)

	return nil
}

// Workspace returns the registered workspace service.
func Workspace() *services.WorkspaceService {
	ws, _ := di.GetContainer().Get(ServiceWorkspace).(*services.WorkspaceService)
	return ws
}

// Story returns the registered story slot service.
func Story() *services.StoryService {
	s, _ := di.GetContainer().Get(ServiceStory).(*services.StoryService)
	return s
}

// Generation returns the registered generation coordinator.
func Generation() *services.GenerationService {
	g, _ := di.GetContainer().Get(ServiceGeneration).(*services.GenerationService)
	return g
}

// Debouncer returns the shared write debouncer so shutdown can flush
// pending persists.
func Debouncer() *storage.Debouncer {
	d, _ := di.GetContainer().Get(ServiceDebouncer).(*storage.Debouncer)
	return d
}
