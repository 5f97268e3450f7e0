package engine

import (
	"sync"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// Session holds the server's current batch, its generated summary, and
// the selected summary model. A refetch replaces the batch wholesale;
// changing the model drops the held batch so a stale summary cannot be
// generated against it.
type Session struct {
	mu      sync.RWMutex
	batch   *domain.EnrichedBatch
	summary string
	modelID string
}

// NewSession creates a Session with the given initial model.
func NewSession(modelID string) *Session {
	return &Session{modelID: modelID}
}

// Batch returns the held batch, or nil when none has been fetched.
func (s *Session) Batch() *domain.EnrichedBatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch
}

// SetBatch replaces the held batch and drops any summary generated
// against the previous one.
func (s *Session) SetBatch(b *domain.EnrichedBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = b
	s.summary = ""
}

// Summary returns the last generated summary text, or "" when none
// exists for the held batch.
func (s *Session) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// SetSummary stores the generated summary text for the held batch.
func (s *Session) SetSummary(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = text
}

// Model returns the selected model id.
func (s *Session) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelID
}

// SetModel selects a model. Switching to a different model clears the
// held batch; it reports whether the batch was cleared.
func (s *Session) SetModel(modelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if modelID == s.modelID {
		return false
	}

	s.modelID = modelID
	cleared := s.batch != nil
	s.batch = nil
	s.summary = ""
	return cleared
}

// Clear drops the held batch and summary.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = nil
	s.summary = ""
}
