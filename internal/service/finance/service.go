package finance

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/timezone"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type Service struct {
	store repository.DocumentStore
	clock *timezone.Clock
}

func NewService(store repository.DocumentStore, clock *timezone.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// MonthlyBalance computes the balance of month (YYYY-MM); an empty month
// means the current clinic-local month.
func (s *Service) MonthlyBalance(ctx context.Context, month string) (*Balance, error) {
	if month == "" {
		month = s.clock.CurrentMonth()
	}
	if !monthPattern.MatchString(month) {
		return nil, errors.BadRequest("month must be YYYY-MM", nil)
	}

	var b Balance
	err := s.store.View(ctx, func(doc *model.Document) error {
		b = Compute(month, Ledger{
			Appointments: doc.Appointments,
			Treatments:   doc.Treatments,
			Packages:     doc.Packages,
			Expenses:     doc.Expenses,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	return &b, nil
}
