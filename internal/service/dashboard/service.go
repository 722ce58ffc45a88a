package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/finance"
	"github.com/jwalitptl/clinic-admin/internal/service/resolve"
	"github.com/jwalitptl/clinic-admin/internal/timezone"
)

const nextAppointmentsLimit = 5

// PendingProcessor merges a parked public intake form, if there is one.
type PendingProcessor interface {
	ProcessPending(ctx context.Context) (*model.ReconcileResult, error)
}

type Summary struct {
	ActiveClients    int                     `json:"active_clients"`
	UpcomingSessions int                     `json:"upcoming_sessions"`
	Balance          finance.Balance         `json:"balance"`
	Next             []model.AppointmentView `json:"next_appointments"`
	Intake           *model.ReconcileResult  `json:"intake,omitempty"`
	IntakeError      string                  `json:"intake_error,omitempty"`
}

type Service struct {
	store  repository.DocumentStore
	intake PendingProcessor
	clock  *timezone.Clock
}

func NewService(store repository.DocumentStore, intake PendingProcessor, clock *timezone.Clock) *Service {
	return &Service{store: store, intake: intake, clock: clock}
}

// Summary merges any pending intake form first, so the figures include it.
// A failed merge is reported in the summary instead of failing the page.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	out := &Summary{Next: []model.AppointmentView{}}

	if s.intake != nil {
		result, err := s.intake.ProcessPending(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to process pending intake form")
			out.IntakeError = "pending intake form could not be processed"
		}
		out.Intake = result
	}

	now := s.clock.Now()
	y, m, d := now.Date()
	endOfTomorrow := time.Date(y, m, d+1, 23, 59, 59, 999999999, s.clock.Location())
	month := s.clock.CurrentMonth()

	err := s.store.View(ctx, func(doc *model.Document) error {
		out.ActiveClients = len(doc.Clients)
		out.Balance = finance.Compute(month, finance.Ledger{
			Appointments: doc.Appointments,
			Treatments:   doc.Treatments,
			Packages:     doc.Packages,
			Expenses:     doc.Expenses,
		})

		type timed struct {
			at time.Time
			a  model.Appointment
		}
		var future []timed
		for _, a := range doc.Appointments {
			if a.Status == model.AppointmentStatusCancelled {
				continue
			}
			at, err := s.clock.ParseLocal(a.Date, a.Time)
			if err != nil || at.Before(now) {
				continue
			}
			if !at.After(endOfTomorrow) {
				out.UpcomingSessions++
			}
			future = append(future, timed{at: at, a: a})
		}
		sort.SliceStable(future, func(i, j int) bool { return future[i].at.Before(future[j].at) })

		r := resolve.New(doc)
		for i := 0; i < len(future) && i < nextAppointmentsLimit; i++ {
			out.Next = append(out.Next, r.Appointment(future[i].a, resolve.LabelUnavailable))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return out, nil
}
