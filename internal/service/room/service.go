package room

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
	repo repository.RoomRepository
}

func NewService(repo repository.RoomRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Room, error) {
	r, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("room", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return r, nil
}

func (s *Service) Save(ctx context.Context, ectx model.EditContext, req model.RoomRequest) (*model.Room, error) {
	if !ectx.Targets(model.EntityRoom) {
		return nil, errors.BadRequest("edit context does not target a room", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.BadRequest("name is required", nil)
	}
	if req.Capacity < 1 {
		return nil, errors.BadRequest("capacity must be at least 1", nil)
	}

	r := &model.Room{ID: ectx.TargetID, Name: name, Capacity: req.Capacity}
	if !ectx.IsEditing() {
		if err := s.repo.Create(ctx, r); err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}
		return r, nil
	}

	found, err := s.repo.Update(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	if !found {
		log.Debug().Str("room_id", r.ID).Msg("room to update not found")
		return nil, nil
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}
