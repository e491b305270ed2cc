package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/FelixBrandt/ShopFox/app/models"
	"github.com/FelixBrandt/ShopFox/internal/pkg/cache"
	"github.com/FelixBrandt/ShopFox/internal/pkg/gateway"
)

// GatewayClient resolves the authoritative state of one payment.
type GatewayClient interface {
	Retrieve(ctx context.Context, externalReference string) (*gateway.ProviderPayment, error)
}

// Service drives one reconciliation run: lock, stale scan, per-payment
// resolution and transaction, best-effort side effects, aggregated result.
type Service struct {
	repo      Repository
	gateway   GatewayClient
	lock      Locker
	publisher Publisher
	opts      Options

	invalidateCache func(keys ...string) error
	recordStat      func(field string, delta int64)
	now             func() time.Time
}

// NewService creates a reconciliation service from injected collaborators.
func NewService(repo Repository, gw GatewayClient, lock Locker, publisher Publisher, opts Options) *Service {
	return &Service{
		repo:            repo,
		gateway:         gw,
		lock:            lock,
		publisher:       publisher,
		opts:            opts,
		invalidateCache: cache.Delete,
		recordStat:      recordRunStat,
		now:             time.Now,
	}
}

// recordRunStat bumps a cumulative run counter in Redis.
func recordRunStat(field string, delta int64) {
	if delta == 0 {
		return
	}
	if err := cache.GetClient().HIncrBy(context.Background(), statsKey, field, delta).Err(); err != nil {
		log.Errorf("[Reconcile] Failed to update run stats (%s): %v", field, err)
	}
}

// Run executes one reconciliation run. It never returns an error: everything
// that can go wrong is logged and reflected in the Result counters, and the
// lock is always released once acquired.
func (s *Service) Run(ctx context.Context) Result {
	var result Result
	runID := uuid.New().String()

	acquired, err := s.lock.Acquire(ctx)
	if err != nil {
		log.Errorf("[Reconcile] Run %s: lock acquire failed: %v", runID, err)
		return result
	}
	if !acquired {
		log.Infof("[Reconcile] Run %s: another instance is already running, skipping", runID)
		return result
	}
	defer s.lock.Release(ctx)

	olderThan := s.now().Add(-s.opts.StaleAfter)
	batch, err := s.repo.FindStalePayments(ctx, olderThan, s.opts.BatchSize)
	if err != nil {
		log.Errorf("[Reconcile] Run %s: stale payment scan failed: %v", runID, err)
		return result
	}
	result.Processed = len(batch)
	if len(batch) == 0 {
		log.Infof("[Reconcile] Run %s: no stale payments found", runID)
		return result
	}

	log.Infof("[Reconcile] Run %s: processing %d stale payments", runID, len(batch))
	for i := range batch {
		payment := batch[i]
		reconciled, err := s.processPayment(ctx, payment, runID)
		switch {
		case errors.Is(err, ErrAlreadyReconciled):
			result.Skipped++
			log.Infof("[Reconcile] Run %s: payment %d already reconciled by another actor", runID, payment.ID)
		case err != nil:
			result.Failed++
			log.Errorf("[Reconcile] Run %s: payment %d (%s) failed: %v",
				runID, payment.ID, externalReference(&payment), err)
		case reconciled:
			result.Reconciled++
		default:
			result.Skipped++
		}
	}

	s.recordStat("runs", 1)
	s.recordStat("reconciled", int64(result.Reconciled))
	s.recordStat("failed", int64(result.Failed))
	s.recordStat("skipped", int64(result.Skipped))

	log.Infof("[Reconcile] Run %s finished: processed=%d reconciled=%d failed=%d skipped=%d",
		runID, result.Processed, result.Reconciled, result.Failed, result.Skipped)
	return result
}

// processPayment wraps reconcilePayment so that a panic from one payment is
// converted into a per-item error instead of aborting the batch.
func (s *Service) processPayment(ctx context.Context, payment models.Payment, runID string) (reconciled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			reconciled = false
			err = fmt.Errorf("panic while reconciling payment %d: %v", payment.ID, r)
		}
	}()
	return s.reconcilePayment(ctx, payment, runID)
}

// reconcilePayment resolves the gateway state of one payment and, if it
// drifted, applies the correction atomically to the payment and its order.
// Returns false with nil error when the payment is already in sync.
func (s *Service) reconcilePayment(ctx context.Context, payment models.Payment, runID string) (bool, error) {
	// Terminal payments never move again; the scan should not return them.
	if models.IsTerminalPaymentStatus(payment.Status) {
		return false, nil
	}
	if !payment.HasExternalReference() {
		return false, fmt.Errorf("payment %d has no external reference", payment.ID)
	}
	ref := *payment.ExternalReference

	provider, err := s.gateway.Retrieve(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("gateway lookup: %w", err)
	}
	newStatus, err := gateway.MapStatus(provider.Status)
	if err != nil {
		return false, err
	}

	// Already in sync: pure read, no writes, no side effects.
	if newStatus == payment.Status {
		return false, nil
	}

	txCtx, cancel := context.WithTimeout(ctx, s.opts.TxTimeout)
	defer cancel()

	err = s.repo.WithTransaction(txCtx, func(tx Repository) error {
		updated, err := tx.UpdatePaymentStatusIfCurrent(txCtx, payment.ID, payment.Status, newStatus)
		if err != nil {
			return err
		}
		if !updated {
			return ErrAlreadyReconciled
		}
		if orderStatus := models.OrderStatusForPayment(newStatus); orderStatus != "" {
			if err := tx.UpdateOrderStatus(txCtx, payment.OrderID, orderStatus); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.afterCommit(ctx, payment, payment.Status, newStatus, runID)
	return true, nil
}

// afterCommit runs the best-effort side effects of a committed reconciliation:
// cache invalidation and event publication. Failures are logged only; the
// durable state change already happened.
func (s *Service) afterCommit(ctx context.Context, payment models.Payment, previousStatus, newStatus, runID string) {
	ref := externalReference(&payment)

	keys := []string{
		fmt.Sprintf("payment:%d", payment.ID),
		fmt.Sprintf("payment:ext:%s", ref),
		fmt.Sprintf("order:%d", payment.OrderID),
		fmt.Sprintf("order:%d:status", payment.OrderID),
	}
	if err := s.invalidateCache(keys...); err != nil {
		log.Errorf("[Reconcile] Cache invalidation for payment %d failed: %v", payment.ID, err)
	}

	event := PaymentReconciledEvent{
		RunID:             runID,
		PaymentID:         payment.ID,
		OrderID:           payment.OrderID,
		ExternalReference: ref,
		PreviousStatus:    previousStatus,
		NewStatus:         newStatus,
		ReconciledAt:      s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Errorf("[Reconcile] Event publish for payment %d failed: %v", payment.ID, err)
	}
}

func externalReference(p *models.Payment) string {
	if p.ExternalReference == nil {
		return ""
	}
	return *p.ExternalReference
}
