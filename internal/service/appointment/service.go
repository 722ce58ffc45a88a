package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/resolve"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/validator"
)

type Service struct {
	repo      repository.AppointmentRepository
	store     repository.DocumentStore
	validator validator.Validator
}

func NewService(repo repository.AppointmentRepository, store repository.DocumentStore) *Service {
	return &Service{repo: repo, store: store, validator: validator.New()}
}

// List returns the agenda, latest first, with references resolved to names
// ("Not found" for dangling ones).
func (s *Service) List(ctx context.Context, filters model.AppointmentFilters) ([]model.AppointmentView, error) {
	out := []model.AppointmentView{}
	err := s.store.View(ctx, func(doc *model.Document) error {
		r := resolve.New(doc)
		for _, a := range doc.Appointments {
			if !matches(a, filters) {
				continue
			}
			out = append(out, r.Appointment(a, resolve.LabelNotFound))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func matches(a model.Appointment, f model.AppointmentFilters) bool {
	if f.ClientID > 0 && a.ClientID != f.ClientID {
		return false
	}
	if f.TherapistID > 0 && a.TherapistID != f.TherapistID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(a.Date, f.Month) {
		return false
	}
	return true
}

func (s *Service) Get(ctx context.Context, id int) (*model.AppointmentView, error) {
	var view *model.AppointmentView
	err := s.store.View(ctx, func(doc *model.Document) error {
		for _, a := range doc.Appointments {
			if a.ID == id {
				v := resolve.New(doc).Appointment(a, resolve.LabelNotFound)
				view = &v
				return nil
			}
		}
		return errors.NotFound("appointment", nil)
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return view, nil
}

// Save books or reschedules a session. References are stored as given;
// nothing checks that the client, room or package still exist.
func (s *Service) Save(ctx context.Context, ectx model.EditContext, req model.AppointmentRequest) (*model.Appointment, error) {
	if !ectx.Targets(model.EntityAppointment) {
		return nil, errors.BadRequest("edit context does not target an appointment", nil)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	a := &model.Appointment{
		ClientID:    req.ClientID,
		TherapistID: req.TherapistID,
		TreatmentID: req.TreatmentID,
		RoomID:      req.RoomID,
		Date:        req.Date,
		Time:        req.Time,
		Status:      req.Status,
		PackageID:   req.PackageID,
	}

	if !ectx.IsEditing() {
		if err := s.repo.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to create appointment: %w", err)
		}
		return a, nil
	}

	id, ok := ectx.IntID()
	if !ok {
		return nil, errors.BadRequest("invalid appointment id", nil)
	}
	a.ID = id
	found, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	if !found {
		log.Debug().Int("appointment_id", id).Msg("appointment to update not found")
		return nil, nil
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}
