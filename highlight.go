package marq

import "sync"

// Renderer is the host's rendering surface. Refresh forces the host to
// recompute a document's visible styling immediately instead of waiting for
// the next redraw.
type Renderer interface {
	Refresh(docID string)
}

// HighlightState is the per-document highlight toggle. When active, Rule
// holds the pattern that was registered at activation time; deactivation
// removes exactly that rule, never one derived from a later configuration.
type HighlightState struct {
	Active bool
	Rule   *Pattern
}

// HighlightController owns the highlight state for every document. At most
// one rendering rule is registered per document at a time.
type HighlightController struct {
	mu       sync.RWMutex
	renderer Renderer
	states   map[string]*HighlightState
}

// NewHighlightController creates a controller over the given renderer.
func NewHighlightController(renderer Renderer) *HighlightController {
	return &HighlightController{
		renderer: renderer,
		states:   make(map[string]*HighlightState),
	}
}

// Activate registers pattern as the document's rendering rule and forces a
// re-render. Activating an already-active document is a no-op guard, so two
// overlapping rules can never be registered.
func (hc *HighlightController) Activate(docID string, pattern *Pattern) {
	hc.mu.Lock()
	state := hc.states[docID]
	if state != nil && state.Active {
		hc.mu.Unlock()
		return
	}
	hc.states[docID] = &HighlightState{Active: true, Rule: pattern}
	hc.mu.Unlock()

	hc.renderer.Refresh(docID)
}

// Deactivate removes the document's registered rule and forces a re-render.
// Deactivating an inactive document is a no-op.
func (hc *HighlightController) Deactivate(docID string) {
	hc.mu.Lock()
	state := hc.states[docID]
	if state == nil || !state.Active {
		hc.mu.Unlock()
		return
	}
	delete(hc.states, docID)
	hc.mu.Unlock()

	hc.renderer.Refresh(docID)
}

// Toggle flips the document's highlight state using pattern for activation,
// and returns the new active value.
func (hc *HighlightController) Toggle(docID string, pattern *Pattern) bool {
	if active, _ := hc.State(docID); active {
		hc.Deactivate(docID)
		return false
	}
	hc.Activate(docID, pattern)
	return true
}

// State returns the document's active flag and, when active, the rule
// registered at activation time.
func (hc *HighlightController) State(docID string) (bool, *Pattern) {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	state := hc.states[docID]
	if state == nil {
		return false, nil
	}
	return state.Active, state.Rule
}

// InvalidateStale deactivates every document whose registered rule no
// longer matches the pattern derived from the current configuration. Called
// after a delimiter change so no orphaned rules survive it.
func (hc *HighlightController) InvalidateStale(current *Pattern) {
	hc.mu.Lock()
	var stale []string
	for docID, state := range hc.states {
		if state.Active && !state.Rule.Equal(current) {
			delete(hc.states, docID)
			stale = append(stale, docID)
		}
	}
	hc.mu.Unlock()

	for _, docID := range stale {
		hc.renderer.Refresh(docID)
	}
}
