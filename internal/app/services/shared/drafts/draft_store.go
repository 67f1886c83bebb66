package drafts

import (
	"encounter-service/internal/app/models"
	"sync"

	"github.com/google/uuid"
)

// Store holds every open encounter draft, keyed by draft id. Drafts are
// ephemeral: nothing here survives a restart. A deleted draft is simply gone;
// an in-flight submission for it finishes against its own snapshot and its
// outcome is discarded.
type Store struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

func NewStore() *Store {
	return &Store{drafts: make(map[string]*Draft)}
}

// Open creates a new draft for the given encounter context, seeded with the
// patient's pre-existing condition ids for duplicate detection.
func (s *Store) Open(encounterContext models.EncounterContext, existingConditionIDs []string) *Draft {
	draft := newDraft(uuid.NewString(), encounterContext, existingConditionIDs)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.ID] = draft
	return draft
}

func (s *Store) Get(encounterID string) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[encounterID]
	return draft, ok
}

// Delete discards a draft on teardown, regardless of any in-flight
// submission for it.
func (s *Store) Delete(encounterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, encounterID)
}
