package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/email"
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/repository/document"
	"github.com/jwalitptl/clinic-admin/internal/timezone"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/messaging"
	"github.com/jwalitptl/clinic-admin/pkg/metrics"
)

// Service moves public intake forms into the client list. A submission is
// parked under the pending key first and merged later by ProcessPending.
type Service struct {
	store    repository.DocumentStore
	pending  repository.PendingSubmissionStore
	broker   messaging.Broker
	channel  string
	notifier email.Notifier
	clock    *timezone.Clock
	metrics  *metrics.Metrics
}

type Options struct {
	Broker   messaging.Broker
	Channel  string
	Notifier email.Notifier
	Metrics  *metrics.Metrics
}

func NewService(store repository.DocumentStore, pending repository.PendingSubmissionStore, clock *timezone.Clock, opts Options) *Service {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = email.LogNotifier{}
	}
	return &Service{
		store:    store,
		pending:  pending,
		broker:   opts.Broker,
		channel:  opts.Channel,
		notifier: notifier,
		clock:    clock,
		metrics:  opts.Metrics,
	}
}

// Submit validates and parks a public form. A later submission replaces an
// earlier one that has not been processed yet.
func (s *Service) Submit(ctx context.Context, submission *model.IntakeSubmission) error {
	if submission == nil || strings.TrimSpace(submission.Email) == "" {
		return errors.BadRequest("email is required", nil)
	}

	if err := s.pending.Put(ctx, submission); err != nil {
		return fmt.Errorf("failed to submit intake form: %w", err)
	}
	s.metrics.IntakeSubmitted()

	if s.broker != nil {
		event := model.IntakeEvent{
			Type:        model.IntakeSubmittedEvent,
			Email:       submission.Email,
			SubmittedAt: s.clock.Now(),
		}
		// The poll loop picks the form up anyway.
		if err := s.broker.Publish(ctx, s.channel, event); err != nil {
			log.Warn().Err(err).Str("channel", s.channel).Msg("failed to publish intake event")
		}
	}
	return nil
}

// Reconcile merges a submission into the clients: the client with the same
// email (ignoring case) gets name, phone, email and intake replaced; without
// a match a new client is appended.
func (s *Service) Reconcile(ctx context.Context, submission *model.IntakeSubmission) (*model.ReconcileResult, error) {
	today := s.clock.Today()
	result := &model.ReconcileResult{Name: submission.Name, Email: submission.Email}

	err := s.store.Update(ctx, func(doc *model.Document) error {
		for i := range doc.Clients {
			c := &doc.Clients[i]
			if !strings.EqualFold(c.Email, submission.Email) {
				continue
			}
			c.Name = submission.Name
			c.Phone = submission.Phone
			c.Email = submission.Email
			c.Intake = submission.Intake(today)
			result.ClientID = c.ID
			return nil
		}

		client := model.Client{
			ID:     document.NextClientID(doc.Clients),
			Name:   submission.Name,
			Phone:  submission.Phone,
			Email:  submission.Email,
			Intake: submission.Intake(today),
		}
		doc.Clients = append(doc.Clients, client)
		result.ClientID = client.ID
		result.Created = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile intake form: %w", err)
	}

	s.metrics.IntakeMerged(result.Created)
	return result, nil
}

// ProcessPending reconciles the parked submission, if any, and clears it.
// A submission parked while the merge runs is left for the next call.
// It returns nil, nil when nothing is pending.
func (s *Service) ProcessPending(ctx context.Context) (*model.ReconcileResult, error) {
	submission, err := s.pending.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending intake form: %w", err)
	}
	if submission == nil {
		return nil, nil
	}

	result, err := s.Reconcile(ctx, submission)
	if err != nil {
		return nil, err
	}
	cleared, err := s.pending.Clear(ctx, submission.ID)
	if err != nil {
		return nil, err
	}
	if !cleared {
		log.Debug().Str("submission_id", submission.ID).Msg("newer intake form parked while reconciling")
	}

	log.Info().
		Int("client_id", result.ClientID).
		Bool("created", result.Created).
		Msg("intake form reconciled")

	if err := s.notifier.IntakeReceived(ctx, result); err != nil {
		log.Warn().Err(err).Int("client_id", result.ClientID).Msg("intake notification failed")
	}
	return result, nil
}
