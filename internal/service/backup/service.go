// Package backup exports and replaces the whole clinic document.
package backup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

type Service struct {
	store repository.DocumentStore
}

func NewService(store repository.DocumentStore) *Service {
	return &Service{store: store}
}

func (s *Service) Export(ctx context.Context) (*model.Document, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export document: %w", err)
	}
	return doc, nil
}

// Import replaces the stored document. An import without an admin user
// would lock everyone out and is refused.
func (s *Service) Import(ctx context.Context, doc *model.Document) error {
	if doc == nil || doc.AdminUser.Username == "" || doc.AdminUser.Password == "" {
		return errors.BadRequest("document must contain adminUser credentials", nil)
	}
	doc.Normalize()
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to import document: %w", err)
	}
	log.Info().
		Int("clients", len(doc.Clients)).
		Int("appointments", len(doc.Appointments)).
		Msg("clinic document imported")
	return nil
}
