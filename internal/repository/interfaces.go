package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/clinic-admin/internal/model"
)

var (
	// ErrKeyNotFound is returned by KVStore.Get for an absent key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNotFound is returned by repository Get methods on a missing id.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when a therapist save would duplicate an email.
	ErrEmailTaken = errors.New("email already in use")
)

// All repository interfaces in one file
type (
	// KVStore is the persistence port. Every backend stores opaque values under
	// string keys.
	KVStore interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Put(ctx context.Context, key string, value []byte) error
		Delete(ctx context.Context, key string) error
		Ping(ctx context.Context) error
		Close() error
	}

	// DocumentStore loads and saves the whole clinic document.
	DocumentStore interface {
		Load(ctx context.Context) (*model.Document, error)
		Save(ctx context.Context, doc *model.Document) error
		Update(ctx context.Context, fn func(doc *model.Document) error) error
		View(ctx context.Context, fn func(doc *model.Document) error) error
	}

	PendingSubmissionStore interface {
		Put(ctx context.Context, submission *model.IntakeSubmission) error
		// Get returns nil, nil when nothing is pending.
		Get(ctx context.Context) (*model.IntakeSubmission, error)
		// Clear removes the pending submission if its ID still matches.
		Clear(ctx context.Context, id string) (bool, error)
	}

	// Update and Delete report whether the id existed; a miss is not an error.

	TherapistRepository interface {
		List(ctx context.Context) ([]model.Therapist, error)
		Get(ctx context.Context, id int) (*model.Therapist, error)
		// Create and UpdateProfile check email uniqueness in the same
		// document update that writes, returning ErrEmailTaken on a clash.
		Create(ctx context.Context, therapist *model.Therapist) error
		// UpdateProfile changes name, specialty and email only; the stored
		// password is untouched. A missing id returns nil, nil.
		UpdateProfile(ctx context.Context, id int, profile model.TherapistRequest) (*model.Therapist, error)
		Delete(ctx context.Context, id int) (bool, error)
		FindByCredentials(ctx context.Context, email, password string) (*model.Therapist, error)
		SetPassword(ctx context.Context, email, password string) (bool, error)
	}

	ClientRepository interface {
		List(ctx context.Context) ([]model.Client, error)
		Get(ctx context.Context, id int) (*model.Client, error)
		Create(ctx context.Context, client *model.Client) error
		Update(ctx context.Context, client *model.Client) (bool, error)
		Delete(ctx context.Context, id int) (bool, error)
	}

	TreatmentRepository interface {
		List(ctx context.Context) ([]model.TreatmentType, error)
		Get(ctx context.Context, id string) (*model.TreatmentType, error)
		Create(ctx context.Context, treatment *model.TreatmentType) error
		Update(ctx context.Context, treatment *model.TreatmentType) (bool, error)
		Delete(ctx context.Context, id string) (bool, error)
	}

	RoomRepository interface {
		List(ctx context.Context) ([]model.Room, error)
		Get(ctx context.Context, id string) (*model.Room, error)
		Create(ctx context.Context, room *model.Room) error
		Update(ctx context.Context, room *model.Room) (bool, error)
		Delete(ctx context.Context, id string) (bool, error)
	}

	ExpenseRepository interface {
		List(ctx context.Context) ([]model.Expense, error)
		Get(ctx context.Context, id int) (*model.Expense, error)
		Create(ctx context.Context, expense *model.Expense) error
		Update(ctx context.Context, expense *model.Expense) (bool, error)
		Delete(ctx context.Context, id int) (bool, error)
	}

	PackageRepository interface {
		List(ctx context.Context) ([]model.Package, error)
		Get(ctx context.Context, id int) (*model.Package, error)
		Create(ctx context.Context, pkg *model.Package) error
		Update(ctx context.Context, pkg *model.Package) (bool, error)
		Delete(ctx context.Context, id int) (bool, error)
	}

	AppointmentRepository interface {
		List(ctx context.Context) ([]model.Appointment, error)
		Get(ctx context.Context, id int) (*model.Appointment, error)
		Create(ctx context.Context, appointment *model.Appointment) error
		Update(ctx context.Context, appointment *model.Appointment) (bool, error)
		Delete(ctx context.Context, id int) (bool, error)
	}

	CompanyRepository interface {
		Get(ctx context.Context) (*model.CompanyConfig, error)
		Save(ctx context.Context, cfg *model.CompanyConfig) error
	}

	AdminRepository interface {
		Get(ctx context.Context) (*model.AdminUser, error)
		SetPassword(ctx context.Context, password string) error
	}
)
