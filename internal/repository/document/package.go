package document

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type packageRepository struct {
	store repository.DocumentStore
}

func NewPackageRepository(store repository.DocumentStore) repository.PackageRepository {
	return &packageRepository{store: store}
}

func (r *packageRepository) List(ctx context.Context) ([]model.Package, error) {
	var out []model.Package
	err := r.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.Package{}, doc.Packages...)
		return nil
	})
	return out, err
}

func (r *packageRepository) Get(ctx context.Context, id int) (*model.Package, error) {
	var found *model.Package
	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexOf(doc.Packages, func(p model.Package) bool { return p.ID == id }); i >= 0 {
			p := doc.Packages[i]
			found = &p
			return nil
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *packageRepository) Create(ctx context.Context, pkg *model.Package) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		ids := make([]int, len(doc.Packages))
		for i, p := range doc.Packages {
			ids[i] = p.ID
		}
		pkg.ID = NextIntID(ids)
		doc.Packages = append(doc.Packages, *pkg)
		return nil
	})
}

func (r *packageRepository) Update(ctx context.Context, pkg *model.Package) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Packages, func(p model.Package) bool { return p.ID == pkg.ID })
		if i < 0 {
			return errNoChange
		}
		found = true
		doc.Packages[i] = *pkg
		return nil
	})
	return found, err
}

func (r *packageRepository) Delete(ctx context.Context, id int) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		match := func(p model.Package) bool { return p.ID == id }
		if indexOf(doc.Packages, match) < 0 {
			return errNoChange
		}
		found = true
		doc.Packages = without(doc.Packages, match)
		return nil
	})
	return found, err
}
