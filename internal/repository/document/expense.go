package document

import (
	"context"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type expenseRepository struct {
	store repository.DocumentStore
}

func NewExpenseRepository(store repository.DocumentStore) repository.ExpenseRepository {
	return &expenseRepository{store: store}
}

func (r *expenseRepository) List(ctx context.Context) ([]model.Expense, error) {
	var out []model.Expense
	err := r.store.View(ctx, func(doc *model.Document) error {
		out = append([]model.Expense{}, doc.Expenses...)
		return nil
	})
	return out, err
}

func (r *expenseRepository) Get(ctx context.Context, id int) (*model.Expense, error) {
	var found *model.Expense
	err := r.store.View(ctx, func(doc *model.Document) error {
		if i := indexOf(doc.Expenses, func(e model.Expense) bool { return e.ID == id }); i >= 0 {
			e := doc.Expenses[i]
			found = &e
			return nil
		}
		return repository.ErrNotFound
	})
	return found, err
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		ids := make([]int, len(doc.Expenses))
		for i, e := range doc.Expenses {
			ids[i] = e.ID
		}
		expense.ID = NextIntID(ids)
		doc.Expenses = append(doc.Expenses, *expense)
		return nil
	})
}

func (r *expenseRepository) Update(ctx context.Context, expense *model.Expense) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Expenses, func(e model.Expense) bool { return e.ID == expense.ID })
		if i < 0 {
			return errNoChange
		}
		found = true
		doc.Expenses[i] = *expense
		return nil
	})
	return found, err
}

func (r *expenseRepository) Delete(ctx context.Context, id int) (bool, error) {
	found := false
	err := r.store.Update(ctx, func(doc *model.Document) error {
		match := func(e model.Expense) bool { return e.ID == id }
		if indexOf(doc.Expenses, match) < 0 {
			return errNoChange
		}
		found = true
		doc.Expenses = without(doc.Expenses, match)
		return nil
	})
	return found, err
}
