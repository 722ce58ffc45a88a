package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

// PendingStore holds at most one public intake submission awaiting
// reconciliation. A newer submission replaces an older one.
type PendingStore struct {
	kv repository.KVStore
	mu sync.Mutex
}

func NewPendingStore(kv repository.KVStore) *PendingStore {
	return &PendingStore{kv: kv}
}

// Put stamps the submission with a fresh ID and parks it.
func (s *PendingStore) Put(ctx context.Context, submission *model.IntakeSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	submission.ID = uuid.NewString()
	raw, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}
	if err := s.kv.Put(ctx, model.PendingSubmissionKey, raw); err != nil {
		return fmt.Errorf("failed to store submission: %w", err)
	}
	return nil
}

func (s *PendingStore) Get(ctx context.Context) (*model.IntakeSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx)
}

func (s *PendingStore) get(ctx context.Context) (*model.IntakeSubmission, error) {
	raw, err := s.kv.Get(ctx, model.PendingSubmissionKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending submission: %w", err)
	}

	var submission model.IntakeSubmission
	if err := json.Unmarshal(raw, &submission); err != nil {
		return nil, fmt.Errorf("failed to decode pending submission: %w", err)
	}
	return &submission, nil
}

// Clear removes the pending submission only while it is still the one with
// the given id; a newer submission parked in the meantime stays. It reports
// whether anything was removed.
func (s *PendingStore) Clear(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.get(ctx)
	if err != nil {
		return false, err
	}
	if current == nil || current.ID != id {
		return false, nil
	}
	if err := s.kv.Delete(ctx, model.PendingSubmissionKey); err != nil {
		return false, fmt.Errorf("failed to clear pending submission: %w", err)
	}
	return true, nil
}
