package treatment

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

type Service struct {
	repo repository.TreatmentRepository
}

func NewService(repo repository.TreatmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]model.TreatmentType, error) {
	treatments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.TreatmentType, error) {
	t, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("treatment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}
	return t, nil
}

func (s *Service) Save(ctx context.Context, ectx model.EditContext, req model.TreatmentRequest) (*model.TreatmentType, error) {
	if !ectx.Targets(model.EntityTreatment) {
		return nil, errors.BadRequest("edit context does not target a treatment", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.BadRequest("name is required", nil)
	}
	if req.Price <= 0 {
		return nil, errors.BadRequest("price must be greater than zero", nil)
	}

	t := &model.TreatmentType{ID: ectx.TargetID, Name: name, Price: req.Price}
	if !ectx.IsEditing() {
		if err := s.repo.Create(ctx, t); err != nil {
			return nil, fmt.Errorf("failed to create treatment: %w", err)
		}
		return t, nil
	}

	found, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to update treatment: %w", err)
	}
	if !found {
		log.Debug().Str("treatment_id", t.ID).Msg("treatment to update not found")
		return nil, nil
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete treatment: %w", err)
	}
	return nil
}
