package document

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type companyRepository struct {
	store repository.DocumentStore
}

func NewCompanyRepository(store repository.DocumentStore) repository.CompanyRepository {
	return &companyRepository{store: store}
}

// Get returns the stored branding, or empty branding with the default
// header color when none was ever saved.
func (r *companyRepository) Get(ctx context.Context) (*model.CompanyConfig, error) {
	cfg := &model.CompanyConfig{HeaderColor: model.DefaultHeaderColor}
	err := r.store.View(ctx, func(doc *model.Document) error {
		if doc.Company != nil {
			*cfg = *doc.Company
		}
		return nil
	})
	return cfg, err
}

func (r *companyRepository) Save(ctx context.Context, cfg *model.CompanyConfig) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		c := *cfg
		doc.Company = &c
		return nil
	})
}

type adminRepository struct {
	store repository.DocumentStore
}

func NewAdminRepository(store repository.DocumentStore) repository.AdminRepository {
	return &adminRepository{store: store}
}

func (r *adminRepository) Get(ctx context.Context) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.store.View(ctx, func(doc *model.Document) error {
		admin = doc.AdminUser
		return nil
	})
	return &admin, err
}

func (r *adminRepository) SetPassword(ctx context.Context, password string) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.AdminUser.Password = password
		return nil
	})
}
