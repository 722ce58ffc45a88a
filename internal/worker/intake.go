package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/pkg/logger"
	"github.com/jwalitptl/clinic-admin/pkg/messaging"
	"github.com/jwalitptl/clinic-admin/pkg/metrics"
)

// PendingProcessor merges the parked intake form, if any.
type PendingProcessor interface {
	ProcessPending(ctx context.Context) (*model.ReconcileResult, error)
}

type IntakeWorkerConfig struct {
	PollInterval time.Duration
	Channel      string
}

// IntakeWorker reconciles pending intake forms on a ticker and, when a
// broker is set, as soon as an intake event arrives.
type IntakeWorker struct {
	processor PendingProcessor
	broker    messaging.MessageBroker
	config    IntakeWorkerConfig
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	wake      chan struct{}
}

func NewIntakeWorker(processor PendingProcessor, broker messaging.MessageBroker, config IntakeWorkerConfig, m *metrics.Metrics) *IntakeWorker {
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	return &IntakeWorker{
		processor: processor,
		broker:    broker,
		config:    config,
		metrics:   m,
		logger:    logger.Component("intake_worker"),
		wake:      make(chan struct{}, 1),
	}
}

// Start blocks until ctx is cancelled.
func (w *IntakeWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	if w.broker != nil && w.config.Channel != "" {
		if err := w.broker.Subscribe(ctx, w.config.Channel, w.onEvent); err != nil {
			w.logger.Warn().Err(err).Str("channel", w.config.Channel).Msg("intake subscription failed, polling only")
		}
	}

	w.logger.Info().Dur("interval", w.config.PollInterval).Msg("starting intake worker")

	// Pick up anything submitted while the worker was down.
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("shutting down intake worker")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		case <-w.wake:
			w.RunOnce(ctx)
		}
	}
}

func (w *IntakeWorker) onEvent(payload []byte) error {
	var evt model.IntakeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("failed to decode intake event: %w", err)
	}
	if evt.Type != model.IntakeSubmittedEvent {
		return nil
	}
	select {
	case w.wake <- struct{}{}:
	default:
	}
	return nil
}

// RunOnce processes the pending form and reports whether one was merged.
func (w *IntakeWorker) RunOnce(ctx context.Context) bool {
	result, err := w.processor.ProcessPending(ctx)
	w.metrics.WorkerRun(err)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to process pending intake")
		return false
	}
	if result == nil {
		return false
	}
	w.logger.Info().
		Int("client_id", result.ClientID).
		Bool("created", result.Created).
		Msg("intake merged")
	return true
}
