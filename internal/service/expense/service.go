package expense

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/validator"
)

type Service struct {
	repo      repository.ExpenseRepository
	validator validator.Validator
}

func NewService(repo repository.ExpenseRepository) *Service {
	return &Service{repo: repo, validator: validator.New()}
}

// List returns the expenses newest first, optionally only those of month
// (YYYY-MM).
func (s *Service) List(ctx context.Context, month string) ([]model.Expense, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if month == "" || strings.HasPrefix(e.Date, month) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int) (*model.Expense, error) {
	e, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errors.NotFound("expense", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (s *Service) Save(ctx context.Context, ectx model.EditContext, req model.ExpenseRequest) (*model.Expense, error) {
	if !ectx.Targets(model.EntityExpense) {
		return nil, errors.BadRequest("edit context does not target an expense", nil)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, errors.BadRequest("category is required", nil)
	}
	if req.Amount <= 0 {
		return nil, errors.BadRequest("amount must be greater than zero", nil)
	}

	e := &model.Expense{
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Date:        req.Date,
	}
	if !ectx.IsEditing() {
		if err := s.repo.Create(ctx, e); err != nil {
			return nil, fmt.Errorf("failed to create expense: %w", err)
		}
		return e, nil
	}

	id, ok := ectx.IntID()
	if !ok {
		return nil, errors.BadRequest("invalid expense id", nil)
	}
	e.ID = id
	found, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	if !found {
		log.Debug().Int("expense_id", id).Msg("expense to update not found")
		return nil, nil
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
