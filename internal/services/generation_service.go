// internal/services/generation_service.go
package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/apperr"
	"github.com/richiewg3/DreamWeaver/internal/llm"
	"github.com/richiewg3/DreamWeaver/internal/models"
)

// BeatNotifier receives the final beat state after a generation
// attempt finishes, success or failure. Used to push the result to
// connected clients so the prompt reveals without a refresh.
type BeatNotifier interface {
	BeatGenerated(beat models.Beat)
}

// GenerationService drives a single beat through one generation
// attempt. Concurrency is bounded per beat, not globally: the
// is_generating flag on the beat is the in-flight marker, and the
// flag transition in BeatService.TryBeginGeneration is the only gate.
type GenerationService struct {
	workspace *WorkspaceService
	client    llm.Client
	notifier  BeatNotifier
	log       *zap.Logger
}

func NewGenerationService(workspace *WorkspaceService, client llm.Client, log *zap.Logger) *GenerationService {
	return &GenerationService{
		workspace: workspace,
		client:    client,
		log:       log,
	}
}

// SetNotifier installs the push channel. Optional; nil means no push.
func (s *GenerationService) SetNotifier(n BeatNotifier) {
	s.notifier = n
}

// Generate runs one attempt for the beat. The returned beat reflects
// the post-attempt state; a non-nil error is returned for every path
// that did not produce a prompt.
//
// An unconfigured client fails before the in-flight flag is ever set:
// the beat records the fixed guidance message and stays idle.
func (s *GenerationService) Generate(ctx context.Context, beatID string) (models.Beat, error) {
	beats := s.workspace.Beats

	beat, ok := beats.Get(beatID)
	if !ok {
		return models.Beat{}, apperr.NewNotFoundError("beat not found")
	}

	if !s.client.Configured() {
		_ = beats.UpdateField(beatID, models.BeatFieldError, llm.NotConfiguredMessage)
		beat, _ = beats.Get(beatID)
		return beat, apperr.NewConfigurationError(llm.NotConfiguredMessage)
	}

	if strings.TrimSpace(beat.Action) == "" {
		return beat, apperr.NewValidationError("beat action is empty")
	}

	beat, started, exists := beats.TryBeginGeneration(beatID)
	if !exists {
		return models.Beat{}, apperr.NewNotFoundError("beat not found")
	}
	if !started {
		return beat, apperr.NewConflictError("generation already in progress for this beat")
	}

	req := BuildGenerationRequest(
		s.workspace.Context.Get(),
		s.workspace.SelectedAssets(models.AssetKindCharacter),
		s.workspace.SelectedAssets(models.AssetKindLocation),
		beat,
	)

	s.log.Info("generating beat prompt",
		zap.String("beat_id", beatID),
		zap.Int("image_count", len(req.Images)))

	result := s.client.Generate(ctx, req)

	updated, ok := beats.CompleteGeneration(beatID, result)
	if !ok {
		// Beat deleted while the request was in flight.
		s.log.Info("beat removed during generation, result discarded",
			zap.String("beat_id", beatID))
		return models.Beat{}, apperr.NewNotFoundError("beat not found")
	}

	if s.notifier != nil {
		s.notifier.BeatGenerated(updated)
	}

	if !result.Success {
		s.log.Warn("generation failed",
			zap.String("beat_id", beatID),
			zap.String("error", result.Error))
		return updated, apperr.NewGenerationError(result.Error, nil)
	}
	return updated, nil
}
