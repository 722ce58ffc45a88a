package document

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type therapistRepository struct {
	store repository.DocumentStore
}

func NewTherapistRepository(store repository.DocumentStore) repository.TherapistRepository {
	return &therapistRepository{store: store}
}

func (r *therapistRepository) List(ctx context.Context) ([]model.Therapist, error) {
	var out []model.Therapist
	err := r.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.Therapist{}, doc.Therapists...)
		return nil
	})
	return out, err
}

func (r *therapistRepository) Get(ctx context.Context, id int) (*model.Therapist, error) {
	var found *model.Therapist
	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexOf(doc.Therapists, func(t model.Therapist) bool { return t.ID == id }); i >= 0 {
			t := doc.Therapists[i]
			found = &t
			return nil
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *therapistRepository) Create(ctx context.Context, therapist *model.Therapist) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		if emailTaken(doc.Therapists, therapist.Email, 0) {
			return repository.ErrEmailTaken
		}
		ids := make([]int, len(doc.Therapists))
		for i, t := range doc.Therapists {
			ids[i] = t.ID
		}
		therapist.ID = NextIntID(ids)
		doc.Therapists = append(doc.Therapists, *therapist)
		return nil
	})
}

func (r *therapistRepository) UpdateProfile(ctx context.Context, id int, profile model.TherapistRequest) (*model.Therapist, error) {
	var updated *model.Therapist
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Therapists, func(t model.Therapist) bool { return t.ID == id })
		if i < 0 {
			return errNoChange
		}
		if emailTaken(doc.Therapists, profile.Email, id) {
			return repository.ErrEmailTaken
		}
		t := &doc.Therapists[i]
		t.Name = profile.Name
		t.Specialty = profile.Specialty
		t.Email = profile.Email
		saved := *t
		updated = &saved
		return nil
	})
	return updated, err
}

func (r *therapistRepository) Delete(ctx context.Context, id int) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		match := func(t model.Therapist) bool { return t.ID == id }
		if indexOf(doc.Therapists, match) < 0 {
			return errNoChange
		}
		found = true
		doc.Therapists = without(doc.Therapists, match)
		return nil
	})
	return found, err
}

func (r *therapistRepository) FindByCredentials(ctx context.Context, email, password string) (*model.Therapist, error) {
	var found *model.Therapist
	err := r.store.View(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Therapists, func(t model.Therapist) bool {
			return t.Email == email && t.Password == password
		})
		if i < 0 {
			return repository.ErrNotFound
		}
		t := doc.Therapists[i]
		found = &t
		return nil
	})
	return found, err
}

func (r *therapistRepository) SetPassword(ctx context.Context, email, password string) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Therapists, func(t model.Therapist) bool { return t.Email == email })
		if i < 0 {
			return errNoChange
		}
		found = true
		doc.Therapists[i].Password = password
		return nil
	})
	return found, err
}

func emailTaken(therapists []model.Therapist, email string, excludeID int) bool {
	return indexOf(therapists, func(t model.Therapist) bool {
		return t.Email == email && t.ID != excludeID
	}) >= 0
}
