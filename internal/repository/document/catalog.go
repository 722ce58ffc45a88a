package document

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type treatmentRepository struct {
	store repository.DocumentStore
}

func NewTreatmentRepository(store repository.DocumentStore) repository.TreatmentRepository {
	return &treatmentRepository{store: store}
}

func (r *treatmentRepository) List(ctx context.Context) ([]model.TreatmentType, error) {
	var out []model.TreatmentType
	err := r.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.TreatmentType{}, doc.Treatments...)
		return nil
	})
	return out, err
}

func (r *treatmentRepository) Get(ctx context.Context, id string) (*model.TreatmentType, error) {
	var found *model.TreatmentType
	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexOf(doc.Treatments, func(t model.TreatmentType) bool { return t.ID == id }); i >= 0 {
			t := doc.Treatments[i]
			found = &t
			return nil
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *treatmentRepository) Create(ctx context.Context, treatment *model.TreatmentType) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		ids := make([]string, len(doc.Treatments))
		for i, t := range doc.Treatments {
			ids[i] = t.ID
		}
		treatment.ID = TreatmentID(NextPrefixedID(ids, TreatmentIDPrefix))
		doc.Treatments = append(doc.Treatments, *treatment)
		return nil
	})
}

func (r *treatmentRepository) Update(ctx context.Context, treatment *model.TreatmentType) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Treatments, func(t model.TreatmentType) bool { return t.ID == treatment.ID })
		if i < 0 {
			return errNoChange
		}
		found = true
		doc.Treatments[i] = *treatment
		return nil
	})
	return found, err
}

func (r *treatmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		match := func(t model.TreatmentType) bool { return t.ID == id }
		if indexOf(doc.Treatments, match) < 0 {
			return errNoChange
		}
		found = true
		doc.Treatments = without(doc.Treatments, match)
		return nil
	})
	return found, err
}

type roomRepository struct {
	store repository.DocumentStore
}

func NewRoomRepository(store repository.DocumentStore) repository.RoomRepository {
	return &roomRepository{store: store}
}

func (r *roomRepository) List(ctx context.Context) ([]model.Room, error) {
	var out []model.Room
	err := r.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.Room{}, doc.Rooms...)
		return nil
	})
	return out, err
}

func (r *roomRepository) Get(ctx context.Context, id string) (*model.Room, error) {
	var found *model.Room
	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexOf(doc.Rooms, func(rm model.Room) bool { return rm.ID == id }); i >= 0 {
			rm := doc.Rooms[i]
			found = &rm
			return nil
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		ids := make([]string, len(doc.Rooms))
		for i, rm := range doc.Rooms {
			ids[i] = rm.ID
		}
		room.ID = RoomID(NextPrefixedID(ids, RoomIDPrefix))
		doc.Rooms = append(doc.Rooms, *room)
		return nil
	})
}

func (r *roomRepository) Update(ctx context.Context, room *model.Room) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Rooms, func(rm model.Room) bool { return rm.ID == room.ID })
		if i < 0 {
			return errNoChange
		}
		found = true
		doc.Rooms[i] = *room
		return nil
	})
	return found, err
}

func (r *roomRepository) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		match := func(rm model.Room) bool { return rm.ID == id }
		if indexOf(doc.Rooms, match) < 0 {
			return errNoChange
		}
		found = true
		doc.Rooms = without(doc.Rooms, match)
		return nil
	})
	return found, err
}
