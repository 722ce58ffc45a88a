package client

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/resolve"
	"github.com/jwalitptl/clinic-admin/internal/timezone"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

type Service struct {
	repo  repository.ClientRepository
	store repository.DocumentStore
	clock *timezone.Clock
}

func NewService(repo repository.ClientRepository, store repository.DocumentStore, clock *timezone.Clock) *Service {
	return &Service{repo: repo, store: store, clock: clock}
}

func (s *Service) List(ctx context.Context) ([]model.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.Client, error) {
	c, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("client", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// Save creates or replaces a client. The intake block is stamped with
// today's date on every save.
func (s *Service) Save(ctx context.Context, ectx model.EditContext, req model.ClientRequest) (*model.Client, error) {
	if !ectx.Targets(model.EntityClient) {
		return nil, errors.BadRequest("edit context does not target a client", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.BadRequest("name is required", nil)
	}

	c := &model.Client{
		Name:   name,
		Phone:  strings.TrimSpace(req.Phone),
		Email:  strings.TrimSpace(req.Email),
		Intake: req.Intake.ToIntake(s.clock.Today()),
	}

	if !ectx.IsEditing() {
		if err := s.repo.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		return c, nil
	}

	id, ok := ectx.IntID()
	if !ok {
		return nil, errors.BadRequest("invalid client id", nil)
	}
	c.ID = id
	found, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	if !found {
		log.Debug().Int("client_id", id).Msg("client to update not found")
		return nil, nil
	}
	return c, nil
}

// Delete removes the client only; its appointments and packages stay.
func (s *Service) Delete(ctx context.Context, id int) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if !found {
		log.Debug().Int("client_id", id).Msg("client to delete not found")
	}
	return nil
}

// Detail returns the client with its session history, newest first.
// Treatments and therapists that were deleted show as "Removed".
func (s *Service) Detail(ctx context.Context, id int) (*model.ClientDetail, error) {
	var detail *model.ClientDetail
	err := s.store.View(ctx, func(doc *model.Document) error {
		r := resolve.New(doc)
		c, ok := r.Client(id)
		if !ok {
			return errors.NotFound("client", nil)
		}

		history := []model.HistoryEntry{}
		for _, a := range doc.Appointments {
			if a.ClientID != id {
				continue
			}
			history = append(history, model.HistoryEntry{
				AppointmentID: a.ID,
				Date:          a.Date,
				Time:          a.Time,
				Treatment:     r.TreatmentName(a.TreatmentID, resolve.LabelRemoved),
				Therapist:     r.TherapistName(a.TherapistID, resolve.LabelRemoved),
				Status:        a.Status,
				PackageID:     a.PackageID,
			})
		}
		sort.SliceStable(history, func(i, j int) bool {
			if history[i].Date != history[j].Date {
				return history[i].Date > history[j].Date
			}
			return history[i].Time > history[j].Time
		})

		detail = &model.ClientDetail{Client: c, History: history}
		return nil
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load client history: %w", err)
	}
	return detail, nil
}
