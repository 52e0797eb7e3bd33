// Package events drains transaction events off the hot path: handlers enqueue,
// the worker validates and publishes. Publishing never affects ledger outcomes.
package events

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/AgentTarik/banco-api/telemetry"
)

// Publisher sends one keyed message to the event bus.
type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// SchemaValidator checks an event payload against the published contract.
type SchemaValidator interface {
	Validate(doc any) error
}

type Worker struct {
	log       *zap.Logger
	publisher Publisher // nil when Kafka is not configured; events are only logged
	validator SchemaValidator
	ch        chan TransactionRecorded
}

func NewWorker(log *zap.Logger, publisher Publisher, validator SchemaValidator, queueSize int) *Worker {
	return &Worker{
		log:       log,
		publisher: publisher,
		validator: validator,
		ch:        make(chan TransactionRecorded, queueSize),
	}
}

func (w *Worker) Enqueue(e TransactionRecorded) {
	select {
	case w.ch <- e:
		telemetry.SetWorkerQueueCurrent(len(w.ch))
	default:
		// queue full — drop, the ledger is the source of truth anyway
		telemetry.IncEventsFailed("dropped")
		w.log.Warn("event queue full; dropping event", zap.String("event_id", e.EventID))
	}
}

func (w *Worker) Run(ctx context.Context) {
	w.log.Info("event worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("event worker stopped")
			return
		case e := <-w.ch:
			telemetry.SetWorkerQueueCurrent(len(w.ch))
			w.process(ctx, e)
		}
	}
}

func (w *Worker) process(ctx context.Context, e TransactionRecorded) {
	if w.validator != nil {
		if err := w.validator.Validate(e); err != nil {
			telemetry.IncEventsFailed("schema")
			w.log.Error("event failed schema validation", zap.String("event_id", e.EventID), zap.Error(err))
			return
		}
	}
	if w.publisher == nil {
		w.log.Info("transaction recorded",
			zap.String("event_id", e.EventID),
			zap.String("kind", e.Kind),
			zap.Int64("customer_id", e.CustomerID),
			zap.String("amount", e.Amount),
		)
		return
	}
	key := strconv.FormatInt(e.CustomerID, 10)
	if err := w.publisher.Publish(ctx, key, e); err != nil {
		telemetry.IncEventsFailed("kafka")
		w.log.Error("failed to publish event", zap.String("event_id", e.EventID), zap.Error(err))
		return
	}
	telemetry.IncEventsPublished()
	w.log.Info("event published", zap.String("event_id", e.EventID), zap.String("kind", e.Kind))
}
