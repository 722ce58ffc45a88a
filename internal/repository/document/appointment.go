package document

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type appointmentRepository struct {
	store repository.DocumentStore
}

func NewAppointmentRepository(store repository.DocumentStore) repository.AppointmentRepository {
	return &appointmentRepository{store: store}
}

func (r *appointmentRepository) List(ctx context.Context) ([]model.Appointment, error) {
	var out []model.Appointment
	err := r.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.Appointment{}, doc.Appointments...)
		return nil
	})
	return out, err
}

func (r *appointmentRepository) Get(ctx context.Context, id int) (*model.Appointment, error) {
	var found *model.Appointment
	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexOf(doc.Appointments, func(a model.Appointment) bool { return a.ID == id }); i >= 0 {
			a := doc.Appointments[i]
			found = &a
			return nil
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		ids := make([]int, len(doc.Appointments))
		for i, a := range doc.Appointments {
			ids[i] = a.ID
		}
		appointment.ID = NextIntID(ids)
		doc.Appointments = append(doc.Appointments, *appointment)
		return nil
	})
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Appointments, func(a model.Appointment) bool { return a.ID == appointment.ID })
		if i < 0 {
			return errNoChange
		}
		found = true
		doc.Appointments[i] = *appointment
		return nil
	})
	return found, err
}

func (r *appointmentRepository) Delete(ctx context.Context, id int) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		match := func(a model.Appointment) bool { return a.ID == id }
		if indexOf(doc.Appointments, match) < 0 {
			return errNoChange
		}
		found = true
		doc.Appointments = without(doc.Appointments, match)
		return nil
	})
	return found, err
}
