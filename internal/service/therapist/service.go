package therapist

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

var errEmailTaken = errors.Conflict("a therapist with this email already exists")

type Service struct {
	repo repository.TherapistRepository
}

func NewService(repo repository.TherapistRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]model.TherapistView, error) {
	therapists, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	views := make([]model.TherapistView, len(therapists))
	for i, t := range therapists {
		views[i] = t.View()
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.TherapistView, error) {
	t, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("therapist", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	view := t.View()
	return &view, nil
}

// Save creates a therapist with the default password, or replaces the
// profile of the targeted one while keeping its password. Emails must be
// unique. Editing an id that no longer exists returns nil, nil.
func (s *Service) Save(ctx context.Context, ectx model.EditContext, req model.TherapistRequest) (*model.TherapistView, error) {
	if !ectx.Targets(model.EntityTherapist) {
		return nil, errors.BadRequest("edit context does not target a therapist", nil)
	}
	id := 0
	if ectx.IsEditing() {
		var ok bool
		if id, ok = ectx.IntID(); !ok {
			return nil, errors.BadRequest("invalid therapist id", nil)
		}
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return nil, errors.BadRequest("name and email are required", nil)
	}
	specialty := strings.TrimSpace(req.Specialty)

	if !ectx.IsEditing() {
		t := &model.Therapist{
			Name:      name,
			Specialty: specialty,
			Email:     email,
			Password:  model.DefaultTherapistPassword,
		}
		err := s.repo.Create(ctx, t)
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, errEmailTaken
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create therapist: %w", err)
		}
		log.Info().Int("therapist_id", t.ID).Msg("therapist created")
		view := t.View()
		return &view, nil
	}

	updated, err := s.repo.UpdateProfile(ctx, id, model.TherapistRequest{
		Name:      name,
		Specialty: specialty,
		Email:     email,
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, errEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}
	if updated == nil {
		log.Debug().Int("therapist_id", id).Msg("therapist to update not found")
		return nil, nil
	}
	view := updated.View()
	return &view, nil
}

// Delete removes the therapist. Appointments keep pointing at the old id.
func (s *Service) Delete(ctx context.Context, id int) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete therapist: %w", err)
	}
	if !found {
		log.Debug().Int("therapist_id", id).Msg("therapist to delete not found")
	}
	return nil
}
