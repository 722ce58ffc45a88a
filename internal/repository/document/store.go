package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/metrics"
)

// errNoChange lets an Update callback finish without writing the document.
var errNoChange = errors.New("no change")

// Seeder provides the initial document when the store is empty.
type Seeder interface {
	Load(ctx context.Context) ([]byte, error)
}

// Store keeps the whole clinic document under a single key. Mutations are
// full read-modify-write cycles serialized by a process-local lock.
type Store struct {
	kv      repository.KVStore
	seeder  Seeder
	metrics *metrics.Metrics
	mu      sync.Mutex
}

func NewStore(kv repository.KVStore, seeder Seeder, m *metrics.Metrics) *Store {
	return &Store{kv: kv, seeder: seeder, metrics: m}
}

func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc)
}

// Update loads the document, applies fn and saves the result. Nothing is
// written when fn fails.
func (s *Store) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	return s.save(ctx, doc)
}

func (s *Store) View(ctx context.Context, fn func(doc *model.Document) error) error {
	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *Store) load(ctx context.Context) (doc *model.Document, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore("load", start, err) }()

	raw, err := s.kv.Get(ctx, model.DocumentKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return s.bootstrap(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read clinic data: %w", err)
	}
	return decode(raw)
}

// bootstrap persists the seed so later loads never fetch it again.
func (s *Store) bootstrap(ctx context.Context) (*model.Document, error) {
	if s.seeder == nil {
		return nil, fmt.Errorf("no clinic data and no seed configured")
	}
	raw, err := s.seeder.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid seed document: %w", err)
	}
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}
	log.Info().Msg("clinic data initialized from seed")
	return doc, nil
}

func (s *Store) save(ctx context.Context, doc *model.Document) (err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveStore("save", start, err) }()

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode clinic data: %w", err)
	}
	if err := s.kv.Put(ctx, model.DocumentKey, raw); err != nil {
		return fmt.Errorf("failed to write clinic data: %w", err)
	}
	return nil
}

func decode(raw []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode clinic data: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

