// internal/services/generation_service_test.go
package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/apperr"
	"github.com/richiewg3/DreamWeaver/internal/llm"
	"github.com/richiewg3/DreamWeaver/internal/models"
)

// stubClient scripts generation outcomes and records requests.
type stubClient struct {
	mu         sync.Mutex
	configured bool
	result     llm.GenerationResult
	requests   []llm.GenerationRequest
	block      chan struct{}
}

func (c *stubClient) Configured() bool { return c.configured }

func (c *stubClient) Generate(ctx context.Context, req llm.GenerationRequest) llm.GenerationResult {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	block := c.block
	c.mu.Unlock()

	if block != nil {
		<-block
	}
	return c.result
}

func (c *stubClient) requestCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

type recordingNotifier struct {
	mu    sync.Mutex
	beats []models.Beat
}

func (n *recordingNotifier) BeatGenerated(beat models.Beat) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.beats = append(n.beats, beat)
}

func newTestGeneration(t *testing.T, client llm.Client) (*GenerationService, *WorkspaceService) {
	t.Helper()
	ws := newTestWorkspace(t)
	return NewGenerationService(ws, client, zap.NewNop()), ws
}

func TestGenerateSuccess(t *testing.T) {
	client := &stubClient{
		configured: true,
		result:     llm.GenerationResult{Success: true, Prompt: "a cinematic paragraph", Timestamp: time.Now()},
	}
	svc, ws := newTestGeneration(t, client)

	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)

	char, _ := ws.Characters.Add(pngBytes, "Mira")
	ws.Select(models.AssetKindCharacter, char.ID)
	ws.Context.Set("a heist at midnight")
	beat := ws.Beats.Add()
	require.NoError(t, ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "she cracks the safe"))

	got, err := svc.Generate(context.Background(), beat.ID)
	require.NoError(t, err)

	assert.Equal(t, "a cinematic paragraph", got.GeneratedPrompt)
	assert.False(t, got.IsGenerating)
	assert.Empty(t, got.Error)

	require.Equal(t, 1, client.requestCount())
	req := client.requests[0]
	assert.Contains(t, req.Text, "a heist at midnight")
	assert.Contains(t, req.Text, "she cracks the safe")
	require.Len(t, req.Images, 1, "only selected assets attach images")

	require.Len(t, notifier.beats, 1)
	assert.Equal(t, beat.ID, notifier.beats[0].ID)
}

func TestGenerateNotConfigured(t *testing.T) {
	client := &stubClient{configured: false}
	svc, ws := newTestGeneration(t, client)

	beat := ws.Beats.Add()
	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "anything")

	got, err := svc.Generate(context.Background(), beat.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsConfiguration(err))

	assert.Equal(t, llm.NotConfiguredMessage, got.Error)
	assert.False(t, got.IsGenerating, "an unconfigured client must never set the in-flight marker")
	assert.Zero(t, client.requestCount(), "no request may leave the process")
}

func TestGenerateEmptyActionRejected(t *testing.T) {
	client := &stubClient{configured: true}
	svc, ws := newTestGeneration(t, client)

	beat := ws.Beats.Add()
	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "   \n\t ")

	_, err := svc.Generate(context.Background(), beat.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Zero(t, client.requestCount())
}

func TestGenerateUnknownBeat(t *testing.T) {
	client := &stubClient{configured: true}
	svc, _ := newTestGeneration(t, client)

	_, err := svc.Generate(context.Background(), "beat_missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGenerateAtMostOneInFlight(t *testing.T) {
	client := &stubClient{
		configured: true,
		result:     llm.GenerationResult{Success: true, Prompt: "done"},
		block:      make(chan struct{}),
	}
	svc, ws := newTestGeneration(t, client)

	beat := ws.Beats.Add()
	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "a long scene")

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), beat.ID)
		firstDone <- err
	}()

	// Wait until the first attempt is holding the in-flight marker.
	require.Eventually(t, func() bool {
		b, _ := ws.Beats.Get(beat.ID)
		return b.IsGenerating
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Generate(context.Background(), beat.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	close(client.block)
	require.NoError(t, <-firstDone)

	assert.Equal(t, 1, client.requestCount(), "the conflicting attempt must not reach the client")

	got, _ := ws.Beats.Get(beat.ID)
	assert.Equal(t, "done", got.GeneratedPrompt)
}

func TestGenerateFailureRecordsError(t *testing.T) {
	client := &stubClient{
		configured: true,
		result:     llm.GenerationResult{Success: false, Error: "upstream 429"},
	}
	svc, ws := newTestGeneration(t, client)

	beat := ws.Beats.Add()
	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "a scene")
	ws.Beats.UpdateField(beat.ID, models.BeatFieldGeneratedPrompt, "previous prompt")

	got, err := svc.Generate(context.Background(), beat.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsGeneration(err))

	assert.Equal(t, "upstream 429", got.Error)
	assert.Equal(t, "previous prompt", got.GeneratedPrompt)
	assert.False(t, got.IsGenerating)
}

func TestGenerateBeatDeletedMidFlight(t *testing.T) {
	client := &stubClient{
		configured: true,
		result:     llm.GenerationResult{Success: true, Prompt: "late result"},
		block:      make(chan struct{}),
	}
	svc, ws := newTestGeneration(t, client)

	notifier := &recordingNotifier{}
	svc.SetNotifier(notifier)

	beat := ws.Beats.Add()
	ws.Beats.UpdateField(beat.ID, models.BeatFieldAction, "a scene")

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), beat.ID)
		done <- err
	}()

	require.Eventually(t, func() bool {
		b, _ := ws.Beats.Get(beat.ID)
		return b.IsGenerating
	}, time.Second, 5*time.Millisecond)

	ws.Beats.Remove(beat.ID)
	close(client.block)

	err := <-done
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Empty(t, ws.Beats.List())
	assert.Empty(t, notifier.beats, "a discarded result must not be pushed")
}
