package settlement

import (
	// Go Internal Packages
	"context"
	"fmt"
	"sync"
	"time"

	// Local Packages
	models "remit-api/models"

	// External Packages
	"go.uber.org/zap"
)

const settleTimeout = 10 * time.Second

type TxRepository interface {
	FindByID(ctx context.Context, txID string) (models.Transaction, error)
	Update(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}

type Notifier interface {
	Notify(ctx context.Context, url string, payload models.WebhookPayload)
}

type Publisher interface {
	Publish(ctx context.Context, event models.TxEvent)
}

// Engine drives a transaction through pending -> processing ->
// completed. Accept performs the first transition synchronously; the
// final one runs on a timer after the configured delay, standing in
// for a real payment network round trip. Updates replace the whole
// record, so a concurrent reconciliation and the deferred step race
// last-write-wins; that is a documented property of this mock, not a
// bug to lock away.
type Engine struct {
	repo     TxRepository
	notifier Notifier
	events   Publisher
	logger   *zap.Logger
	delay    time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
	closed bool
}

func NewEngine(repo TxRepository, notifier Notifier, events Publisher, logger *zap.Logger, delay time.Duration) *Engine {
	return &Engine{
		repo:     repo,
		notifier: notifier,
		events:   events,
		logger:   logger,
		delay:    delay,
		timers:   make(map[string]*time.Timer),
	}
}

// Accept moves the transaction into processing, persists it, and
// schedules the deferred settlement decision. The caller always
// observes the processing status on return; the record is never left
// silently pending with settlement queued behind it. If the processing
// update cannot be persisted the record is marked failed best-effort
// and the error is returned.
func (e *Engine) Accept(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	tx.Status = models.StatusProcessing
	tx.UpdatedAt = time.Now().UTC()

	updated, err := e.repo.Update(ctx, tx)
	if err != nil {
		e.logger.Error("cannot move transaction to processing",
			zap.String("transaction_id", tx.TxID), zap.Error(err))
		e.markFailed(ctx, tx)
		return models.Transaction{}, fmt.Errorf("accept transaction %s: %w", tx.TxID, err)
	}

	e.events.Publish(ctx, models.EventFor(models.EventTxProcessing, updated))
	e.schedule(updated.TxID)

	e.logger.Info("transaction accepted for settlement",
		zap.String("transaction_id", updated.TxID),
		zap.String("channel", string(updated.Channel)),
		zap.Duration("delay", e.delay))
	return updated, nil
}

// schedule arms the deferred settlement step. After Shutdown no new
// work is armed; the transaction stays in processing, discoverable for
// reconciliation.
func (e *Engine) schedule(txID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		e.logger.Warn("engine closed, settlement not scheduled", zap.String("transaction_id", txID))
		return
	}

	e.wg.Add(1)
	e.timers[txID] = time.AfterFunc(e.delay, func() {
		defer e.wg.Done()

		e.mu.Lock()
		delete(e.timers, txID)
		closed := e.closed
		e.mu.Unlock()
		if closed {
			e.logger.Warn("settlement abandoned on shutdown", zap.String("transaction_id", txID))
			return
		}

		e.settle(txID)
	})
}

// settle is the deferred decision. This mock always succeeds once a
// transaction is processing; there is no payment network to say
// otherwise. It re-reads the record first so a reconciliation that ran
// during the delay is carried into the final write.
func (e *Engine) settle(txID string) {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	tx, err := e.repo.FindByID(ctx, txID)
	if err != nil {
		e.logger.Error("settlement lookup failed", zap.String("transaction_id", txID), zap.Error(err))
		return
	}

	tx.Status = models.StatusCompleted
	tx.UpdatedAt = time.Now().UTC()

	updated, err := e.repo.Update(ctx, tx)
	if err != nil {
		// Known gap: the record stays in processing. It remains
		// discoverable and reconciliation can still finish it.
		e.logger.Error("settlement persist failed, record left in processing",
			zap.String("transaction_id", txID), zap.Error(err))
		return
	}

	e.events.Publish(ctx, models.EventFor(models.EventTxCompleted, updated))
	e.logger.Info("transaction settled", zap.String("transaction_id", updated.TxID))

	// Only after the completed state is durable does the callback
	// fire, and only when a target was supplied.
	if updated.WebhookURL != "" {
		e.notifier.Notify(ctx, updated.WebhookURL, models.WebhookPayload{
			TransactionID: updated.TxID,
			Status:        updated.Status,
			Amount:        updated.Amount,
			Timestamp:     updated.UpdatedAt,
		})
	}
}

// markFailed is best-effort; the caller already has the real error.
func (e *Engine) markFailed(ctx context.Context, tx models.Transaction) {
	tx.Status = models.StatusFailed
	tx.UpdatedAt = time.Now().UTC()
	if _, err := e.repo.Update(ctx, tx); err != nil {
		e.logger.Error("cannot mark transaction failed",
			zap.String("transaction_id", tx.TxID), zap.Error(err))
		return
	}
	e.events.Publish(ctx, models.EventFor(models.EventTxFailed, tx))
}

// Shutdown stops accepting deferred work, cancels timers that have not
// fired, and waits for in-flight settlement steps until ctx expires.
// Cancelled transactions stay in processing with no partial writes.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	e.closed = true
	for txID, timer := range e.timers {
		if timer.Stop() {
			// The callback will never run; release its slot.
			e.wg.Done()
			delete(e.timers, txID)
			e.logger.Warn("pending settlement cancelled", zap.String("transaction_id", txID))
		}
	}
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
