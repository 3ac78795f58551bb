package marq_test

import (
	"testing"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/internal/assert"
)

// recordingRenderer counts the re-renders the controller forces.
type recordingRenderer struct {
	refreshed []string
}

func (r *recordingRenderer) Refresh(docID string) {
	r.refreshed = append(r.refreshed, docID)
}

func TestHighlightController_Toggle(t *testing.T) {
	renderer := &recordingRenderer{}
	hc := marq.NewHighlightController(renderer)
	pattern := mustPattern(t, "<<", ">>")

	active := hc.Toggle("notes", pattern)
	assert.True(t, active)

	gotActive, rule := hc.State("notes")
	assert.True(t, gotActive)
	assert.True(t, rule.Equal(pattern))

	active = hc.Toggle("notes", pattern)
	assert.False(t, active)

	// Toggling off leaves no residual rule behind.
	gotActive, rule = hc.State("notes")
	assert.False(t, gotActive)
	assert.Nil(t, rule)

	// Each toggle forces exactly one re-render.
	assert.Equal(t, len(renderer.refreshed), 2)
}

func TestHighlightController_ActivateIsGuarded(t *testing.T) {
	renderer := &recordingRenderer{}
	hc := marq.NewHighlightController(renderer)
	first := mustPattern(t, "<<", ">>")
	second := mustPattern(t, "[[", "]]")

	hc.Activate("notes", first)
	hc.Activate("notes", second)

	// The second activation is a no-op: the original rule stays
	// registered and no extra re-render happens.
	_, rule := hc.State("notes")
	assert.True(t, rule.Equal(first))
	assert.Equal(t, len(renderer.refreshed), 1)
}

func TestHighlightController_DeactivateInactive(t *testing.T) {
	renderer := &recordingRenderer{}
	hc := marq.NewHighlightController(renderer)

	hc.Deactivate("notes")
	assert.Equal(t, len(renderer.refreshed), 0)
}

func TestHighlightController_PerDocumentState(t *testing.T) {
	renderer := &recordingRenderer{}
	hc := marq.NewHighlightController(renderer)
	pattern := mustPattern(t, "<<", ">>")

	hc.Activate("a", pattern)

	active, _ := hc.State("a")
	assert.True(t, active)

	active, _ = hc.State("b")
	assert.False(t, active)

	hc.Deactivate("a")
	active, _ = hc.State("a")
	assert.False(t, active)
}

func TestHighlightController_InvalidateStale(t *testing.T) {
	renderer := &recordingRenderer{}
	hc := marq.NewHighlightController(renderer)
	old := mustPattern(t, "<<", ">>")
	current := mustPattern(t, "[[", "]]")

	hc.Activate("stale", old)
	hc.Activate("fresh", current)
	renderer.refreshed = nil

	hc.InvalidateStale(current)

	active, _ := hc.State("stale")
	assert.False(t, active)

	active, rule := hc.State("fresh")
	assert.True(t, active)
	assert.True(t, rule.Equal(current))

	assert.Equal(t, len(renderer.refreshed), 1)
	assert.Equal(t, renderer.refreshed[0], "stale")
}
